package live

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/revio-dev/revio/pkg/rdom"
	"github.com/revio-dev/revio/pkg/reactive"
)

// SessionConfig tunes a live session's connection handling.
type SessionConfig struct {
	// WriteTimeout bounds a single frame write (default: 10s).
	WriteTimeout time.Duration

	// ReadTimeout bounds the wait for a client message; the ping loop
	// keeps the deadline fed on idle connections (default: 60s).
	ReadTimeout time.Duration

	// PingInterval is the keepalive ping cadence (default: 30s).
	PingInterval time.Duration
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  60 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session ID generation failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// Session is one connected client. It is an rdom.Container whose mutations
// are encoded as WireOps and shipped over the connection, and a
// reactive.Observer that batches every flush's operations into a single
// frame. Mutations outside a flush send immediately unless wrapped in
// Batch, which the server does for the eager mount pass.
//
// All container and observer methods must run on the session's goroutine:
// the runtime driving them is single-threaded. Close and Done are safe
// from any goroutine.
type Session struct {
	id     string
	conn   *websocket.Conn
	config *SessionConfig
	logger *slog.Logger
	rt     *reactive.Runtime

	buf     []WireOp
	inFlush bool
	seq     int

	writeMu sync.Mutex
	closed  atomic.Bool
	done    chan struct{}
}

func newSession(conn *websocket.Conn, config *SessionConfig, logger *slog.Logger) *Session {
	id := generateSessionID()
	return &Session{
		id:     id,
		conn:   conn,
		config: config,
		logger: logger.With("session", id),
		done:   make(chan struct{}),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Runtime returns the session's reactive runtime.
func (s *Session) Runtime() *reactive.Runtime {
	return s.rt
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// IsClosed reports whether the session has ended.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Close tears the session down: the connection is closed and Done fires.
// Idempotent.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.conn.Close()
	close(s.done)
}

func handle(n rdom.Node) *Node {
	h, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("live: container received %T, want *live.Node", n))
	}
	return h
}

// InsertAt implements rdom.Container.
func (s *Session) InsertAt(n rdom.Node, index int) {
	h := handle(n)
	s.push(WireOp{Op: opInsert, ID: h.ID, HTML: h.HTML, Index: index})
}

// Remove implements rdom.Container.
func (s *Session) Remove(n rdom.Node) {
	s.push(WireOp{Op: opRemove, ID: handle(n).ID})
}

// Move implements rdom.Container.
func (s *Session) Move(n rdom.Node, index int) {
	s.push(WireOp{Op: opMove, ID: handle(n).ID, Index: index})
}

// Update implements rdom.Container.
func (s *Session) Update(n rdom.Node, content rdom.Node) {
	h, c := handle(n), handle(content)
	h.HTML = c.HTML
	s.push(WireOp{Op: opUpdate, ID: h.ID, HTML: c.HTML})
}

func (s *Session) push(op WireOp) {
	s.buf = append(s.buf, op)
	if !s.inFlush {
		s.sendBuffered()
	}
}

// Batch buffers the container mutations fn performs into a single frame.
// The server wraps the mount pass in one so an initial render of many
// items still ships as one message. No-op nesting inside a flush.
func (s *Session) Batch(fn func()) {
	if s.inFlush {
		fn()
		return
	}
	s.inFlush = true
	fn()
	s.inFlush = false
	s.sendBuffered()
}

// FlushStart implements reactive.Observer.
func (s *Session) FlushStart() {
	s.inFlush = true
}

// EffectRun implements reactive.Observer.
func (s *Session) EffectRun() {}

// FlushEnd implements reactive.Observer.
func (s *Session) FlushEnd(runs int) {
	s.inFlush = false
	s.sendBuffered()
}

func (s *Session) sendBuffered() {
	if len(s.buf) == 0 || s.IsClosed() {
		s.buf = s.buf[:0]
		return
	}
	s.seq++
	frame := Frame{Seq: s.seq, Ops: s.buf}
	s.buf = nil

	data, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return
	}
	if err := s.write(websocket.TextMessage, data); err != nil {
		s.logger.Error("frame write error", "error", err)
		s.Close()
	}
}

func (s *Session) write(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(messageType, data)
}

// readLoop consumes client messages until the connection drops. Incoming
// text messages are handed to onEvent; everything else only feeds the read
// deadline.
func (s *Session) readLoop(onEvent func(s *Session, msg []byte)) {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		msgType, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}
		if msgType == websocket.TextMessage && onEvent != nil {
			onEvent(s, msg)
		}
	}
}

// pingLoop keeps idle connections alive until the session ends.
func (s *Session) pingLoop() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				s.logger.Error("ping write error", "error", err)
				s.Close()
				return
			}
		}
	}
}
