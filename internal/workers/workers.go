package workers

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the client workers. A zero sync interval leaves the
// periodic sync out, the client then runs a single pass on its own.
func NewWorkers(services *service.ClientServices, cfg config.ClientWorkers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.SyncInterval > 0 {
		w.workers = append(w.workers, newSyncWorker(services.SyncJob, cfg, logger))
	}
	return w
}

// Len reports how many workers were configured.
func (w *Workers) Len() int {
	return len(w.workers)
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
