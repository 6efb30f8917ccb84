// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWorker appends "run:<id>" and "stop:<id>" to a shared log.
type recordingWorker struct {
	id  string
	log *[]string
}

func (r *recordingWorker) Run(ctx context.Context) { *r.log = append(*r.log, "run:"+r.id) }
func (r *recordingWorker) Stop()                   { *r.log = append(*r.log, "stop:"+r.id) }

// fakeSyncJob records the periodic calls of the sync worker.
type fakeSyncJob struct {
	service.ClientSyncJob

	interval time.Duration
	started  int
	stopped  int
}

func (f *fakeSyncJob) StartPeriodic(ctx context.Context, interval time.Duration) {
	f.started++
	f.interval = interval
}

func (f *fakeSyncJob) Stop() { f.stopped++ }

func (f *fakeSyncJob) LastResult() (models.SyncResult, bool) { return models.SyncResult{}, false }

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var log []string
	ws := &Workers{workers: []Worker{
		&recordingWorker{id: "1", log: &log},
		&recordingWorker{id: "2", log: &log},
	}}

	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"run:1", "run:2", "stop:2", "stop:1"}, log)
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{}

	// не должно паниковать
	ws.Run(context.Background())
	ws.Stop()
	assert.Zero(t, ws.Len())
}

func TestNewWorkers_ZeroIntervalHasNoSyncWorker(t *testing.T) {
	job := &fakeSyncJob{}
	services := &service.ClientServices{SyncJob: job}

	ws := NewWorkers(services, config.ClientWorkers{}, logger.Nop())

	assert.Zero(t, ws.Len())
	ws.Run(context.Background())
	assert.Zero(t, job.started)
}

func TestNewWorkers_PeriodicSync(t *testing.T) {
	// Arrange
	job := &fakeSyncJob{}
	services := &service.ClientServices{SyncJob: job}
	ws := NewWorkers(services, config.ClientWorkers{SyncInterval: time.Minute}, logger.Nop())
	require.Equal(t, 1, ws.Len())

	// Act
	ws.Run(context.Background())
	ws.Stop()

	// Assert
	assert.Equal(t, 1, job.started)
	assert.Equal(t, time.Minute, job.interval)
	assert.Equal(t, 1, job.stopped)
}
