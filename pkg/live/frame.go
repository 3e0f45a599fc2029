package live

// WireOp is one container mutation as it travels to the client.
type WireOp struct {
	// Op is the mutation kind: "insert", "remove", "move", or "update".
	Op string `json:"op"`

	// ID identifies the target node handle.
	ID string `json:"id"`

	// HTML carries markup for insert and update; empty otherwise.
	HTML string `json:"html,omitempty"`

	// Index is the target position for insert and move.
	Index int `json:"index,omitempty"`
}

// Frame is one WebSocket message: the operations of a single flush (or of
// a single eager mount), applied atomically by the client.
type Frame struct {
	Seq int      `json:"seq"`
	Ops []WireOp `json:"ops"`
}

const (
	opInsert = "insert"
	opRemove = "remove"
	opMove   = "move"
	opUpdate = "update"
)
