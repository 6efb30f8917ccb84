package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/handler"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"golang.org/x/sync/errgroup"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
		return
	}
	s.logger.Info().Msg("server Shutdown gracefully")
}

func (s *server) Shutdown() {
	if err := s.httpServer.shutdown(context.Background()); err != nil {
		s.logger.Err(err).Msg("HTTP server Shutdown")
	}
}

// run serves until ctx is done or the listener fails, then shuts the server
// down.
func (s *server) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.httpServer.serve)
	g.Go(func() error {
		<-gctx.Done()
		return s.httpServer.shutdown(context.WithoutCancel(gctx))
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
