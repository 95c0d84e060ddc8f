package preview

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/engine"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/render"
)

// Config configures the preview server.
type Config struct {
	// Addr is the listen address (default: "localhost:7070").
	Addr string

	// Title is the page title (default: "vtree preview").
	Title string

	// Logger receives request and lifecycle logs (default: slog.Default()).
	Logger *slog.Logger

	// Gatherer serves /metrics (default: prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer

	// Backlog is how many pending snapshots may queue before new ones are
	// dropped (default: 64).
	Backlog int
}

// Server pushes snapshots of a memory host to browsers.
type Server struct {
	config   Config
	engine   *engine.Engine
	mem      *host.Memory
	hub      *Hub
	renderer *render.Renderer
	logger   *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

// New creates a preview server for the tree eng commits into mem.
func New(eng *engine.Engine, mem *host.Memory, config Config) *Server {
	if config.Addr == "" {
		config.Addr = "localhost:7070"
	}
	if config.Title == "" {
		config.Title = "vtree preview"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.Backlog <= 0 {
		config.Backlog = 64
	}
	logger := config.Logger.With("component", "preview")
	return &Server{
		config:   config,
		engine:   eng,
		mem:      mem,
		hub:      NewHub(logger),
		renderer: render.NewRenderer(render.RendererConfig{SkipRoot: true}),
		logger:   logger,
	}
}

// Hub returns the server's WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Attach subscribes to engine commits. Each commit is rendered while the
// engine lock is held and broadcast from a separate goroutine, so slow
// clients never stall a cycle. The subscription ends when ctx is done or the
// returned function is called.
func (s *Server) Attach(ctx context.Context) (detach func()) {
	ctx, cancel := context.WithCancel(ctx)
	queue := make(chan Message, s.config.Backlog)

	stop := s.engine.Observe(func(c engine.Commit) {
		msg := Message{Type: MessageSnapshot, Seq: c.Seq}
		if c.Err != nil {
			msg.Type = MessageError
			msg.Error = c.Err.Error()
		} else {
			msg.HTML = s.snapshot()
		}
		select {
		case queue <- msg:
		default:
			s.logger.Warn("preview backlog full, snapshot dropped", "seq", c.Seq)
		}
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-queue:
				s.hub.Broadcast(msg)
			}
		}
	}()

	return func() {
		stop()
		cancel()
	}
}

// snapshot renders the host tree. Callers hold the engine lock.
func (s *Server) snapshot() string {
	out, err := s.renderer.RenderToString(s.mem.Root())
	if err != nil {
		s.logger.Error("render snapshot", "error", err)
	}
	return out
}

// currentHTML renders the host tree without racing a cycle.
func (s *Server) currentHTML() string {
	var out string
	s.engine.View(func() { out = s.snapshot() })
	return out
}

// Handler returns the HTTP handler serving the preview routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleIndex)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{
		Title: s.config.Title,
		Body:  template.HTML(s.currentHTML()),
	})
	if err != nil {
		s.logger.Error("write preview page", "error", err)
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.currentHTML()))
}

// Start serves until ctx is done or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return vterrors.New("VT060").WithDetail(err.Error()).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	s.logger.Info("preview server running", "url", fmt.Sprintf("http://%s", ln.Addr()))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return vterrors.New("VT060").WithDetail(err.Error()).Wrap(err)
		}
		return nil
	}
}

// Stop shuts the server down and disconnects all clients.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	s.hub.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// requestLogger logs each request at debug level.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
