package client

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/workers"
	"github.com/MKhiriev/go-notes-sync/models"
)

type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	out      io.Writer

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, workers *workers.Workers, out io.Writer, logger *logger.Logger) *App {
	return &App{
		services: services,
		workers:  workers,
		out:      out,
		logger:   logger,
	}
}

// Run prints the progress of every pass while it runs. Without workers it
// performs a single pass and reports its failure; otherwise it keeps the
// periodic sync going until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	events, unsubscribe := a.services.SyncJob.Subscribe()
	var printer sync.WaitGroup
	printer.Add(1)
	go func() {
		defer printer.Done()
		a.print(events)
	}()
	defer func() {
		unsubscribe()
		printer.Wait()
	}()

	result, err := a.syncOnce(ctx)
	if err != nil {
		return err
	}

	if a.workers.Len() == 0 {
		if result.State != models.SyncStateSuccess {
			return fmt.Errorf("sync ended in %s: %w", result.State, result.Err)
		}
		return nil
	}

	a.workers.Run(ctx)
	<-ctx.Done()
	a.workers.Stop()

	a.logger.Info().Msg("client stopped")
	return nil
}

func (a *App) syncOnce(ctx context.Context) (models.SyncResult, error) {
	run, err := a.services.SyncJob.Start(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("start sync: %w", err)
	}

	result := run.Wait()
	a.logger.Info().
		Str("state", result.State.String()).
		Int("conflicts", len(result.Summary.Conflicts)).
		Msg("sync pass finished")

	return result, nil
}

// print renders events until the subscription is closed. A summary follows
// every terminal event.
func (a *App) print(events <-chan models.SyncProgress) {
	for event := range events {
		fmt.Fprintln(a.out, renderProgress(event))
		if !event.State.IsTerminal() {
			continue
		}
		if result, ok := a.services.SyncJob.LastResult(); ok && result.State == event.State {
			fmt.Fprintln(a.out, renderSummary(result))
		}
	}
}
