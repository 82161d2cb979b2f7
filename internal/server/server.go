// Package server exposes evaluation, classification, catalog validation and
// combined reports over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-governance-controls/internal/config"
	"ai-governance-controls/internal/evaluate"
	"ai-governance-controls/internal/metrics"
	"ai-governance-controls/internal/model"
	"ai-governance-controls/internal/report"
	"ai-governance-controls/internal/risk"
)

const requestIDHeader = "X-Request-ID"

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithMaxBodyBytes caps request bodies; 0 leaves them unbounded.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

// WithReportOptions forwards options to the report builder.
func WithReportOptions(opts ...report.Option) Option {
	return func(s *Server) { s.reportOpts = append(s.reportOpts, opts...) }
}

// Server is stateless between requests. Every handler evaluates against the
// catalog it was built with.
type Server struct {
	controls   []model.Control
	evaluator  *evaluate.Evaluator
	classifier *risk.Classifier
	reports    *report.Builder
	reportOpts []report.Option
	metrics    *metrics.Recorder
	logger     *slog.Logger
	version    string
	maxBody    int64
}

func New(controls []model.Control, e *evaluate.Evaluator, c *risk.Classifier, rec *metrics.Recorder, opts ...Option) *Server {
	s := &Server{
		controls:   controls,
		evaluator:  e,
		classifier: c,
		metrics:    rec,
		logger:     slog.Default().With("component", "server"),
		version:    "dev",
	}
	for _, o := range opts {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewRecorder()
	}
	s.reports = report.NewBuilder(e, c, s.reportOpts...)
	return s
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.observe(), s.limitBody())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))

	v1 := r.Group("/v1")
	v1.POST("/evaluate", s.handleEvaluate)
	v1.POST("/classify", s.handleClassify)
	v1.POST("/validate", s.handleValidate)
	v1.POST("/report", s.handleReport)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Router(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr, "controls", len(s.controls))
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

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(route, c.Writer.Status())
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.maxBody > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
		}
		c.Next()
	}
}

func (s *Server) log(c *gin.Context) *slog.Logger {
	return s.logger.With("request_id", c.GetString("request_id"), "path", c.FullPath())
}
