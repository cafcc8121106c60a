package live

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/crispy/pkg/render"
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/view"
	"go.opentelemetry.io/otel/trace"
)

// DefaultExitTimeout is the default Config.ExitTimeout. It leaves room for
// a page's own leave frame, sent once the exit transition has run.
const DefaultExitTimeout = time.Second

// Server is the live host for one toaster.
type Server struct {
	toaster  *toast.Toaster
	config   Config
	router   chi.Router
	upgrader websocket.Upgrader
	renderer *render.Renderer
	tracer   trace.Tracer
	logger   *slog.Logger
	exiter   *view.Exiter

	closeOnce sync.Once

	mu    sync.Mutex
	conns map[*conn]struct{}
}

// Config configures a Server.
type Config struct {
	// Title is the page title.
	Title string

	// Logger receives connection and lifecycle logs (default: slog.Default()).
	Logger *slog.Logger

	// MetricsPath is where Gatherer is served (default: /metrics).
	MetricsPath string

	// Gatherer enables the metrics endpoint when set.
	Gatherer prometheus.Gatherer

	// TracerName enables request and frame tracing when set.
	TracerName string

	// CheckOrigin validates websocket origins. Nil accepts same-origin
	// requests only.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration

	// ReadTimeout is the websocket read deadline, reset by every frame
	// and pong (default: 60s).
	ReadTimeout time.Duration

	// ExitTimeout is how long a dismissed toast may wait for a page's
	// leave frame before the server removes it itself (default: 1s).
	ExitTimeout time.Duration
}

// Option configures a Server.
type Option func(*Config)

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics serves g at path.
func WithMetrics(path string, g prometheus.Gatherer) Option {
	return func(c *Config) {
		if path != "" {
			c.MetricsPath = path
		}
		c.Gatherer = g
	}
}

// WithTracing enables tracing with the named tracer from the global
// tracer provider.
func WithTracing(tracerName string) Option {
	return func(c *Config) {
		if tracerName == "" {
			tracerName = DefaultTracerName
		}
		c.TracerName = tracerName
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(c *Config) {
		c.CheckOrigin = fn
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = d
	}
}

// WithExitTimeout sets how long dismissed toasts wait for a leave frame.
func WithExitTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ExitTimeout = d
	}
}

// WithReadTimeout sets the websocket read deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = d
	}
}

func defaultConfig() Config {
	return Config{
		Title:           "crispy",
		Logger:          slog.Default(),
		MetricsPath:     "/metrics",
		ShutdownTimeout: 5 * time.Second,
		ReadTimeout:     60 * time.Second,
		ExitTimeout:     DefaultExitTimeout,
	}
}

// New creates a live host for t. The caller keeps ownership of t; call
// Close (or let Serve return) to detach from it.
func New(t *toast.Toaster, opts ...Option) *Server {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	s := &Server{
		toaster:  t,
		config:   config,
		renderer: render.NewRenderer(render.RendererConfig{}),
		tracer:   noopTracer(),
		logger:   config.Logger.With("component", "live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		conns: make(map[*conn]struct{}),
	}
	if config.TracerName != "" {
		s.tracer = globalTracer(config.TracerName)
	}
	// Removes dismissed toasts that no page reports as gone, for example
	// ones raised through the API while nobody is connected.
	s.exiter = view.NewExiter(t, view.WithExitDelay(config.ExitTimeout))
	s.router = s.routes()
	return s
}

// Close stops removing dismissed toasts and closes every websocket
// connection. It is idempotent.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		s.exiter.Stop()
		s.closeConns()
	})
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// The websocket is traced per frame rather than per request.
	r.Get("/ws", s.handleWebSocket)

	r.Group(func(r chi.Router) {
		if s.config.TracerName != "" {
			r.Use(Tracing(s.tracer))
		}
		r.Get("/", s.handlePage)
		r.Route("/api/toasts", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Post("/{id}/dismiss", s.handleDismiss)
		})
		if s.config.Gatherer != nil {
			r.Method(http.MethodGet, s.config.MetricsPath,
				promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
		}
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Toaster returns the served toaster.
func (s *Server) Toaster() *toast.Toaster {
	return s.toaster
}

// Connections returns the number of open websocket connections.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and closes all websocket connections.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.Close()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) track(c *conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c *conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

func (s *Server) closeConns() {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}
