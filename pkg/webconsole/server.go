package webconsole

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/astrobooklet/astroctl/pkg/audit"
	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/astrobooklet/astroctl/pkg/logging"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server is the console HTTP server. One gateway client and one audit
// recorder serve all requests.
type Server struct {
	cfg *Config
	gw  *gateway.Client
	rec *audit.Recorder
	log *slog.Logger

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithGatewayClient replaces the gateway client, mainly for tests.
func WithGatewayClient(gw *gateway.Client) Option {
	return func(s *Server) {
		s.gw = gw
	}
}

// New creates the console server for the given configuration.
func New(cfg *Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.gw == nil {
		s.gw = gateway.New(gateway.Config{
			BaseURL: cfg.BaseURL,
			Token:   cfg.Token,
		}, gateway.WithLogger(s.log), gateway.WithUserAgent("astroctl-console"))
	}

	rec, err := newRecorder(cfg)
	if err != nil {
		return nil, fmt.Errorf("audit trail: %w", err)
	}
	s.rec = rec

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(recovery(s.log), requestLogger(s.log))
	s.registerRoutes(engine)

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	return s, nil
}

// newRecorder builds the action trail for the console. Without an audit log
// path the trail is a no-op.
func newRecorder(cfg *Config) (*audit.Recorder, error) {
	if cfg.AuditLog == "" {
		return audit.NewRecorder(nil, nil, audit.OriginWeb), nil
	}
	auditCfg := &audit.AuditConfig{
		Enabled:    true,
		Level:      audit.LevelInfo,
		OutputFile: cfg.AuditLog,
	}
	logger, err := audit.NewLogger(auditCfg)
	if err != nil {
		return nil, err
	}
	return audit.NewRecorder(logger, auditCfg, audit.OriginWeb), nil
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("console listening", "addr", s.cfg.Listen, "backend", s.cfg.BaseURL)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("console server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		s.log.Info("shutting down console")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Error("shutdown failed", "error", err)
		}
		if err := s.rec.Close(); err != nil {
			s.log.Error("closing audit trail failed", "error", err)
		}
		return nil
	})

	return g.Wait()
}
