// Package server is a reference implementation of the interview REST backend
// the console talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/interviewdesk/internal/logger"
	"github.com/julianstephens/interviewdesk/internal/storage"
	"github.com/julianstephens/interviewdesk/internal/utils"
)

// Options configures a Server.
type Options struct {
	// Metrics exposes /metrics and records request metrics.
	Metrics bool
	// Now returns the current day for the preset ranges. Nil means
	// utils.Today.
	Now func() time.Time
}

// Server serves the interview API over a storage provider.
type Server struct {
	store     storage.Provider
	validator *validator.Validate
	metrics   *metrics
	now       func() time.Time
}

// New builds a server. The store must already be initialized.
func New(store storage.Provider, opts Options) *Server {
	s := &Server{
		store:     store,
		validator: newValidator(),
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = utils.Today
	}
	if opts.Metrics {
		s.metrics = newMetrics()
	}
	return s
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	if s.metrics != nil {
		r.Use(s.metrics.middleware())
		r.GET("/metrics", s.metrics.handler())
	}

	api := r.Group("/api")
	{
		api.GET("/interview/date/", s.listByDate)
		api.GET("/interview/date-range", s.listByRange)
		api.GET("/interview/month", s.listByMonth)
		api.GET("/interview/week/", s.listPreset("week"))
		api.GET("/interview/work-week/", s.listPreset("work-week"))
		api.GET("/interview/month/", s.listPreset("month"))

		api.POST("/interview/schedule/", s.create)
		api.GET("/interview/:id/", s.get)
		api.PATCH("/interview/:id/", s.patch)
		api.DELETE("/interview/:id/", s.delete)
	}
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", addr, "store", s.store.Describe())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
