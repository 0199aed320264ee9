package debugserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/SlimeOS/internal/domain/app"
	"github.com/GriffinCanCode/SlimeOS/internal/drivers/framebuffer"
	"github.com/GriffinCanCode/SlimeOS/internal/drivers/keymatrix"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/SlimeOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/SlimeOS/internal/kernel"
)

const shutdownTimeout = 5 * time.Second

// Kernel is the read-only view of the scheduler the server reports on.
type Kernel interface {
	State() kernel.State
	Current() (appID, instanceID string, ok bool)
	Memory() app.MemoryInfo
}

// Device exposes the simulator's panel and key matrix.
type Device interface {
	Framebuffer() *framebuffer.Display
	Keys() *keymatrix.Matrix
}

// Deps holds what the server reads from. Device, Ring and Gatherer are
// optional; their routes answer 503 when missing.
type Deps struct {
	Kernel   Kernel
	Device   Device
	Ring     *logging.Ring
	Metrics  *monitoring.Metrics
	Gatherer prometheus.Gatherer
}

// Config holds server settings.
type Config struct {
	Addr           string
	StreamInterval time.Duration
	CORS           CORSConfig
	RateLimit      RateLimitConfig
}

// DefaultConfig returns a config listening on addr.
func DefaultConfig(addr string) Config {
	return Config{
		Addr:           addr,
		StreamInterval: 100 * time.Millisecond,
		CORS:           DefaultCORSConfig(),
		RateLimit:      DefaultRateLimitConfig(),
	}
}

// Server is the simulator's debug HTTP surface.
type Server struct {
	router  *gin.Engine
	deps    Deps
	cfg     Config
	logger  *zap.Logger
	closing chan struct{}
}

// New builds the router. Nothing listens until Run.
func New(cfg Config, deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		deps:    deps,
		cfg:     cfg,
		logger:  logger.Named("debugserver"),
		closing: make(chan struct{}),
	}
	if s.cfg.StreamInterval <= 0 {
		s.cfg.StreamInterval = DefaultConfig("").StreamInterval
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Metrics != nil {
		router.Use(monitoring.Middleware(deps.Metrics))
	}
	router.Use(CORS(cfg.CORS))

	router.GET("/healthz", s.health)
	router.GET("/status", s.status)
	router.GET("/screen.png", s.screen)
	router.GET("/screen/stream", s.stream)
	router.GET("/logs", s.logs)
	router.DELETE("/logs", s.clearLogs)

	keys := router.Group("/keys")
	keys.Use(RateLimit(cfg.RateLimit))
	keys.POST("/:name", s.key)

	if deps.Gatherer != nil {
		metricsHandler := promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{DisableCompression: true})
		router.GET("/metrics", gin.WrapH(gzhttp.GzipHandler(metricsHandler)))
	}
	if deps.Metrics != nil {
		router.GET("/metrics/json", s.metricsJSON)
	}

	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting debug server", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down debug server")
	close(s.closing)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
