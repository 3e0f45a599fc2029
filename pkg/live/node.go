package live

import (
	"strconv"
	"sync/atomic"
)

// nodeCounter feeds node handle IDs. Globally unique so frames from
// sequential sessions on one page never collide.
var nodeCounter atomic.Uint64

// Node is a remote node handle: an identifier the client resolves to a
// DOM element plus the markup to materialize it with. Identity is the ID;
// HTML is only payload and is replaced wholesale on update.
type Node struct {
	ID   string
	HTML string
}

// NewNode allocates a handle for the given markup.
func NewNode(html string) *Node {
	return &Node{
		ID:   "n" + strconv.FormatUint(nodeCounter.Add(1), 36),
		HTML: html,
	}
}
