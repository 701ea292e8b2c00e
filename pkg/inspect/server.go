package inspect

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/pkg/oplog"
	"github.com/vango-dev/vtree/pkg/render"
)

//go:embed index.html
var indexHTML []byte

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":7070".
	Addr string

	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger defaults to slog.Default().With("component", "inspect").
	Logger *slog.Logger

	// Buffer is the op channel buffer of each websocket client.
	Buffer int

	// WriteTimeout bounds each websocket write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
	ShutdownTimeout time.Duration

	// CheckOrigin validates websocket origins. Nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool
}

// Server is the inspector HTTP server.
type Server struct {
	config   Config
	source   Source
	logger   *slog.Logger
	router   chi.Router
	upgrader websocket.Upgrader
}

// Frame is a websocket message.
type Frame struct {
	// Type is "hello" for the first frame, "op" afterwards.
	Type string     `json:"type"`
	Op   *oplog.Op  `json:"op,omitempty"`
	Ops  []oplog.Op `json:"ops,omitempty"`
}

// New creates a Server showing source.
func New(config Config, source Source) *Server {
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.Logger == nil {
		config.Logger = slog.Default().With("component", "inspect")
	}
	if config.Buffer <= 0 {
		config.Buffer = 256
	}
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 5 * time.Second
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		config: config,
		source: source,
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ops", s.handleOps)
	r.Get("/ws", s.handleWS)
	return r
}

// Handler returns the inspector's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("inspector listening", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
		s.logger.Info("inspector stopped")
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		body        string
		err         error
		contentType = "text/html; charset=utf-8"
	)
	switch r.URL.Query().Get("format") {
	case "", "html":
		body, err = s.source.HTML(ctx)
	case "outline":
		body, err = s.source.Outline(ctx)
		contentType = "text/plain; charset=utf-8"
	default:
		http.Error(w, "unknown format", http.StatusBadRequest)
		return
	}
	if err != nil {
		s.logger.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(body))
}

func (s *Server) handleOps(w http.ResponseWriter, r *http.Request) {
	ops := s.source.Ops()
	if ops == nil {
		ops = []oplog.Op{}
	}
	writeJSON(w, http.StatusOK, ops)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ops, cancel := s.source.Subscribe(s.config.Buffer)
	defer cancel()

	// The read loop only notices the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if err := s.writeFrame(conn, Frame{Type: "hello", Ops: s.source.Ops()}); err != nil {
		return
	}
	s.logger.Debug("websocket client connected", "remote", r.RemoteAddr)

	for {
		select {
		case op, ok := <-ops:
			if !ok {
				return
			}
			if err := s.writeFrame(conn, Frame{Type: "op", Op: &op}); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second),
			)
			return
		}
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f Frame) error {
	conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return conn.WriteJSON(f)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func plainOutline() render.OutlineStyles {
	s := lipgloss.NewStyle()
	return render.OutlineStyles{Branch: s, Tag: s, Attr: s, Text: s, Comment: s}
}
