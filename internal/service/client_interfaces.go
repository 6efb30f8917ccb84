package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-notes-sync/models"
)

// ProgressObserver receives the human readable progress of a pass. It is
// called on the goroutine running the pass and must not block.
type ProgressObserver func(models.SyncProgress)

// ClientSyncService defines the contract of the sync orchestrator: one full
// reconciliation of the local notes store with the remote task lists.
type ClientSyncService interface {
	// Sync runs a single pass through LOGIN, FETCH_REMOTE_LISTS, WALK_LOCAL,
	// RECONCILE and COMMIT and always returns a result carrying exactly one
	// terminal state.
	//
	// Cancelling ctx is cooperative: it is checked between units of work,
	// network calls already issued are allowed to finish, and the pass ends
	// in CANCELLED without advancing the last sync time.
	Sync(ctx context.Context, observer ProgressObserver) models.SyncResult
}

// ClientExportService renders the local notes as plain text for a backup
// outside the application.
type ClientExportService interface {
	ExportText(ctx context.Context, w io.Writer) error
}

// ClientSyncJob defines the handle the composition root uses to drive the
// orchestrator in the background. At most one pass runs at a time.
type ClientSyncJob interface {
	// Start launches a pass on a background goroutine and returns a handle
	// to wait for its result. It returns ErrSyncInProgress while another
	// pass is running.
	Start(ctx context.Context) (*SyncRun, error)

	// Cancel asks the running pass, if any, to stop after the current unit
	// of work.
	Cancel()

	// IsSyncing reports whether a pass is running.
	IsSyncing() bool

	// Progress returns the latest progress message, or an empty string when
	// no pass ever ran.
	Progress() string

	// Subscribe registers a progress observer. Every pass delivers its
	// terminal event last. The returned function removes the subscription
	// and closes the channel.
	Subscribe() (<-chan models.SyncProgress, func())

	// LastResult returns the result of the most recent finished pass.
	LastResult() (models.SyncResult, bool)

	// StartPeriodic launches a goroutine running a pass every interval,
	// defaulting to 5 minutes if interval is zero or negative. A tick that
	// finds a pass still running is skipped. Any previously running periodic
	// job is stopped before the new one begins.
	StartPeriodic(ctx context.Context, interval time.Duration)

	// Stop cancels the periodic goroutine and the running pass and blocks
	// until both have exited.
	Stop()
}
