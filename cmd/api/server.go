package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-backend/pkg/container"
	"library-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	container *container.Container
	http      *http.Server
}

func NewServer(c *container.Container) *Server {
	return &Server{
		container: c,
		http: &http.Server{
			Addr:         ":" + c.Config.App.Port,
			Handler:      NewRouter(c),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Serve blocks until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Serve() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("🌐 HTTP server listening", map[string]interface{}{"addr": s.http.Addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("🛑 Shutting down", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("✅ Server stopped cleanly", nil)
	return nil
}
