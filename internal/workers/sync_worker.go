package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

// syncWorker runs the sync job on a fixed interval.
type syncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration

	logger *logger.Logger
}

func newSyncWorker(job service.ClientSyncJob, cfg config.ClientWorkers, logger *logger.Logger) *syncWorker {
	return &syncWorker{
		job:      job,
		interval: cfg.SyncInterval,
		logger:   logger,
	}
}

func (s *syncWorker) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("starting periodic sync")
	s.job.StartPeriodic(ctx, s.interval)
}

func (s *syncWorker) Stop() {
	s.job.Stop()
	s.logger.Info().Msg("periodic sync stopped")
}
