package live

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/revio-dev/revio/pkg/reactive"
)

// MountFunc builds a session's reactive graph: create cells, bind lists
// and swaps against the session, wire event state. It runs once per
// connection, inside the session runtime's root scope.
type MountFunc func(rt *reactive.Runtime, sess *Session)

// EventFunc receives a client text message. It runs on the session's
// goroutine; cell writes it performs are flushed when it returns.
type EventFunc func(sess *Session, msg []byte)

// ServerConfig configures the live server.
type ServerConfig struct {
	// SessionConfig applies to every accepted session
	// (default: DefaultSessionConfig()).
	SessionConfig *SessionConfig

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the upgrade request's origin. Nil uses the
	// gorilla default same-origin check.
	CheckOrigin func(r *http.Request) bool

	// Logger receives connection lifecycle and error logs
	// (default: slog.Default()).
	Logger *slog.Logger

	// OnEvent handles client messages; nil discards them.
	OnEvent EventFunc
}

// Server upgrades HTTP connections into live sessions. Each session gets
// its own runtime observed by the session itself, so every flush ships one
// frame. The server is an http.Handler routing the WebSocket endpoint at
// /live and Prometheus scrapes at /metrics.
type Server struct {
	config   *ServerConfig
	mount    MountFunc
	upgrader websocket.Upgrader
	router   chi.Router
	logger   *slog.Logger
}

// NewServer creates a live server. config may be nil for defaults.
func NewServer(mount MountFunc, config *ServerConfig) *Server {
	if config == nil {
		config = &ServerConfig{}
	}
	if config.SessionConfig == nil {
		config.SessionConfig = DefaultSessionConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Server{
		config: config,
		mount:  mount,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: config.Logger,
	}

	r := chi.NewRouter()
	r.Get("/live", s.serveWS)
	r.Handle("/metrics", promhttp.Handler())
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// serveWS upgrades the connection and runs the session to completion on
// the request goroutine. The runtime is single-threaded: mount, event
// handling, and flushes all happen here, with only keepalive pings on a
// side goroutine.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, s.config.SessionConfig, s.logger)
	sess.rt = reactive.NewRuntime(reactive.WithObserver(sess))
	sess.logger.Info("session started", "remote", conn.RemoteAddr())

	if s.mount != nil {
		sess.Batch(func() {
			s.mount(sess.rt, sess)
		})
	}

	go sess.pingLoop()
	sess.readLoop(func(sess *Session, msg []byte) {
		if s.config.OnEvent != nil {
			s.config.OnEvent(sess, msg)
			sess.rt.FlushSync()
		}
	})
	sess.logger.Info("session ended")
}
