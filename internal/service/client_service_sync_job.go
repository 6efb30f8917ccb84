package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

const (
	defaultSyncInterval = 5 * time.Minute
	progressBuffer      = 32
)

// SyncRun is the handle of one pass started by [ClientSyncJob.Start].
type SyncRun struct {
	done   chan struct{}
	result models.SyncResult
}

// Done is closed when the pass has finished.
func (r *SyncRun) Done() <-chan struct{} { return r.done }

// Wait blocks until the pass has finished and returns its result.
func (r *SyncRun) Wait() models.SyncResult {
	<-r.done
	return r.result
}

type clientSyncJob struct {
	syncService ClientSyncService
	logger      *logger.Logger

	syncing atomic.Bool

	mu         sync.Mutex
	cancelRun  context.CancelFunc
	progress   string
	lastResult *models.SyncResult
	subs       map[int]chan models.SyncProgress
	nextSubID  int
	runs       sync.WaitGroup

	periodicCancel context.CancelFunc
	periodic       sync.WaitGroup
}

// NewClientSyncJob creates a job driving syncService. The job is idle until
// Start or StartPeriodic is called.
func NewClientSyncJob(syncService ClientSyncService, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		syncService: syncService,
		logger:      logger,
		subs:        make(map[int]chan models.SyncProgress),
	}
}

// Start implements ClientSyncJob.
func (j *clientSyncJob) Start(ctx context.Context) (*SyncRun, error) {
	if !j.syncing.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}

	runCtx, cancel := context.WithCancel(ctx)
	run := &SyncRun{done: make(chan struct{})}

	j.mu.Lock()
	j.cancelRun = cancel
	j.runs.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.runs.Done()
		defer close(run.done)
		defer cancel()

		// the terminal event is held back until the result is recorded, so
		// a subscriber seeing it can read LastResult
		var terminal *models.SyncProgress
		result := j.syncService.Sync(runCtx, func(event models.SyncProgress) {
			if event.State.IsTerminal() {
				terminal = &event
				return
			}
			j.publish(event)
		})
		if terminal == nil || terminal.State != result.State {
			terminal = &models.SyncProgress{State: result.State, Message: result.State.Message()}
		}

		j.mu.Lock()
		j.cancelRun = nil
		j.lastResult = &result
		j.mu.Unlock()

		run.result = result
		// a subscriber may start the next pass as soon as it sees the
		// terminal event
		j.syncing.Store(false)

		j.publish(*terminal)
	}()

	return run, nil
}

// Cancel implements ClientSyncJob.
func (j *clientSyncJob) Cancel() {
	j.mu.Lock()
	cancel := j.cancelRun
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (j *clientSyncJob) IsSyncing() bool {
	return j.syncing.Load()
}

func (j *clientSyncJob) Progress() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress
}

func (j *clientSyncJob) LastResult() (models.SyncResult, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.lastResult == nil {
		return models.SyncResult{}, false
	}
	return *j.lastResult, true
}

// Subscribe implements ClientSyncJob. Progress events are dropped for a
// subscriber whose buffer is full; terminal events never are.
func (j *clientSyncJob) Subscribe() (<-chan models.SyncProgress, func()) {
	j.mu.Lock()
	defer j.mu.Unlock()

	id := j.nextSubID
	j.nextSubID++
	ch := make(chan models.SyncProgress, progressBuffer)
	j.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			j.mu.Lock()
			defer j.mu.Unlock()
			delete(j.subs, id)
			close(ch)
		})
	}
}

func (j *clientSyncJob) publish(event models.SyncProgress) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.progress = event.Message
	for _, ch := range j.subs {
		if event.State.IsTerminal() {
			// make room for the one event a subscriber must not miss
			for len(ch) == cap(ch) {
				select {
				case <-ch:
				default:
				}
			}
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// StartPeriodic implements ClientSyncJob.
func (j *clientSyncJob) StartPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.stopPeriodic()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.periodicCancel = cancel
	j.periodic.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.periodic.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				run, err := j.Start(jobCtx)
				if err != nil {
					j.logger.Debug().Err(err).Msg("skipping periodic sync tick")
					continue
				}
				select {
				case <-run.Done():
				case <-jobCtx.Done():
					return
				}
			}
		}
	}()
}

// Stop implements ClientSyncJob. Safe to call when nothing is running.
func (j *clientSyncJob) Stop() {
	j.stopPeriodic()
	j.Cancel()
	j.runs.Wait()
}

func (j *clientSyncJob) stopPeriodic() {
	j.mu.Lock()
	cancel := j.periodicCancel
	j.periodicCancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.periodic.Wait()
}
