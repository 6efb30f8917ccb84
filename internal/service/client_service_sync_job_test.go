// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySyncService считает вызовы Sync и позволяет управлять поведением прохода.
type spySyncService struct {
	calls  atomic.Int64
	events []models.SyncProgress

	// block держит проход до отмены контекста
	block bool
	// release держит проход до закрытия канала
	release chan struct{}
}

func (s *spySyncService) Sync(ctx context.Context, observer ProgressObserver) models.SyncResult {
	s.calls.Add(1)

	for _, e := range s.events {
		observer(e)
	}

	state := models.SyncStateSuccess
	switch {
	case s.block:
		<-ctx.Done()
		state = models.SyncStateCancelled
	case s.release != nil:
		select {
		case <-s.release:
		case <-ctx.Done():
			state = models.SyncStateCancelled
		}
	}

	observer(models.SyncProgress{State: state, Message: state.Message()})
	return models.SyncResult{State: state, Summary: models.NewSyncSummary()}
}

func newTestJob(spy ClientSyncService) *clientSyncJob {
	return NewClientSyncJob(spy, logger.Nop()).(*clientSyncJob)
}

// ── NewClientSyncJob ─────────────────────────────────────────────────────────

func TestNewClientSyncJob_ReturnsInterface(t *testing.T) {
	job := NewClientSyncJob(&spySyncService{}, logger.Nop())
	require.NotNil(t, job)

	var _ ClientSyncJob = job
	assert.False(t, job.IsSyncing())

	_, ok := job.LastResult()
	assert.False(t, ok, "до первого прохода результата нет")
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestClientSyncJob_Start_RunsOnePass(t *testing.T) {
	spy := &spySyncService{}
	job := newTestJob(spy)

	run, err := job.Start(context.Background())
	require.NoError(t, err)

	result := run.Wait()
	assert.Equal(t, models.SyncStateSuccess, result.State)
	assert.Equal(t, int64(1), spy.calls.Load())
	assert.False(t, job.IsSyncing())

	last, ok := job.LastResult()
	require.True(t, ok)
	assert.Equal(t, models.SyncStateSuccess, last.State)
	assert.Equal(t, models.SyncStateSuccess.Message(), job.Progress())
}

func TestClientSyncJob_Start_RejectsConcurrentPass(t *testing.T) {
	spy := &spySyncService{release: make(chan struct{})}
	job := newTestJob(spy)

	run, err := job.Start(context.Background())
	require.NoError(t, err)
	assert.True(t, job.IsSyncing())

	// второй запуск во время прохода отклоняется
	second, err := job.Start(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)
	assert.Nil(t, second)

	close(spy.release)
	run.Wait()

	// после завершения можно запускать снова
	run, err = job.Start(context.Background())
	require.NoError(t, err)
	run.Wait()
	assert.Equal(t, int64(2), spy.calls.Load())
}

func TestClientSyncJob_Start_AllowedOnTerminalEvent(t *testing.T) {
	job := newTestJob(&spySyncService{})
	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	// Arrange
	run, err := job.Start(context.Background())
	require.NoError(t, err)

	// Act: дожидаемся финального события и сразу запускаем следующий проход
	var terminal models.SyncProgress
	require.Eventually(t, func() bool {
		select {
		case e := <-events:
			terminal = e
			return e.State.IsTerminal()
		default:
			return false
		}
	}, time.Second, time.Millisecond)
	next, err := job.Start(context.Background())

	// Assert
	require.NoError(t, err, "the finished pass must not block the next one")
	assert.Equal(t, models.SyncStateSuccess, terminal.State)
	run.Wait()
	next.Wait()
}

// ── Cancel ───────────────────────────────────────────────────────────────────

func TestClientSyncJob_Cancel_EndsPassAsCancelled(t *testing.T) {
	spy := &spySyncService{block: true}
	job := newTestJob(spy)

	run, err := job.Start(context.Background())
	require.NoError(t, err)

	job.Cancel()

	select {
	case <-run.Done():
	case <-time.After(time.Second):
		t.Fatal("проход не завершился после Cancel")
	}
	assert.Equal(t, models.SyncStateCancelled, run.Wait().State)
	assert.False(t, job.IsSyncing())
}

func TestClientSyncJob_Cancel_WhenIdle_NoPanic(t *testing.T) {
	job := newTestJob(&spySyncService{})
	assert.NotPanics(t, func() { job.Cancel() })
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestClientSyncJob_Subscribe_ReceivesProgressAndTerminal(t *testing.T) {
	spy := &spySyncService{events: []models.SyncProgress{
		{State: models.SyncStateLogin, Message: "Logging in"},
		{State: models.SyncStateReconcile, Message: "Synchronizing notes"},
	}}
	job := newTestJob(spy)

	events, unsubscribe := job.Subscribe()
	defer unsubscribe()

	run, err := job.Start(context.Background())
	require.NoError(t, err)
	run.Wait()

	var got []models.SyncState
	for len(events) > 0 {
		got = append(got, (<-events).State)
	}
	assert.Equal(t, []models.SyncState{
		models.SyncStateLogin,
		models.SyncStateReconcile,
		models.SyncStateSuccess,
	}, got)
}

func TestClientSyncJob_Subscribe_TerminalSurvivesFullBuffer(t *testing.T) {
	// больше событий, чем помещается в буфер подписчика
	events := make([]models.SyncProgress, progressBuffer*2)
	for i := range events {
		events[i] = models.SyncProgress{State: models.SyncStateReconcile, Message: "step"}
	}
	job := newTestJob(&spySyncService{events: events})

	ch, unsubscribe := job.Subscribe()
	defer unsubscribe()

	run, err := job.Start(context.Background())
	require.NoError(t, err)
	run.Wait()

	var last models.SyncProgress
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, models.SyncStateSuccess, last.State, "терминальное событие не должно теряться")
}

func TestClientSyncJob_Unsubscribe_ClosesChannel(t *testing.T) {
	job := newTestJob(&spySyncService{})

	ch, unsubscribe := job.Subscribe()
	unsubscribe()
	assert.NotPanics(t, unsubscribe, "повторная отписка безопасна")

	_, open := <-ch
	assert.False(t, open)

	// публикация после отписки не паникует
	run, err := job.Start(context.Background())
	require.NoError(t, err)
	run.Wait()
}

// ── StartPeriodic / Stop ─────────────────────────────────────────────────────

func TestClientSyncJob_StartPeriodic_RunsOnTicks(t *testing.T) {
	spy := &spySyncService{}
	job := newTestJob(spy)

	// Интервал 10ms, за 55ms должно быть несколько проходов
	job.StartPeriodic(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(2), "Sync должен быть вызван несколько раз, вызвано: %d", got)
}

func TestClientSyncJob_Stop_StopsTicker(t *testing.T) {
	spy := &spySyncService{}
	job := newTestJob(spy)

	job.StartPeriodic(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "после Stop новых вызовов быть не должно")
}

func TestClientSyncJob_StartPeriodic_DefaultInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		spy := &spySyncService{}
		job := newTestJob(spy)

		// interval <= 0 → дефолт 5 минут, за 20ms вызовов быть не должно
		job.StartPeriodic(context.Background(), interval)
		time.Sleep(20 * time.Millisecond)
		job.Stop()

		assert.Equal(t, int64(0), spy.calls.Load())
	}
}

func TestClientSyncJob_Stop_CancelsRunningPass(t *testing.T) {
	spy := &spySyncService{block: true}
	job := newTestJob(spy)

	run, err := job.Start(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop завис при активном проходе")
	}
	assert.Equal(t, models.SyncStateCancelled, run.Wait().State)
}

func TestClientSyncJob_DoubleStop_NoPanic(t *testing.T) {
	job := newTestJob(&spySyncService{})

	assert.NotPanics(t, func() { job.Stop() })

	job.StartPeriodic(context.Background(), 10*time.Millisecond)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}
