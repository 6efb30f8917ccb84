package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncState(t *testing.T) {
	tests := []struct {
		state    SyncState
		name     string
		terminal bool
	}{
		{SyncStateIdle, "idle", false},
		{SyncStateLogin, "login", false},
		{SyncStateFetchRemoteLists, "fetch_remote_lists", false},
		{SyncStateWalkLocal, "walk_local", false},
		{SyncStateReconcile, "reconcile", false},
		{SyncStateCommit, "commit", false},
		{SyncStateSuccess, "success", true},
		{SyncStateNetworkError, "network_error", true},
		{SyncStateInternalError, "internal_error", true},
		{SyncStateCancelled, "cancelled", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.state.String())
			assert.Equal(t, tt.terminal, tt.state.IsTerminal())
		})
	}

	assert.Equal(t, "unknown", SyncState(99).String())
}

func TestSyncState_Message(t *testing.T) {
	assert.Equal(t, "Sync finished successfully", SyncStateSuccess.Message())
	assert.Contains(t, SyncStateNetworkError.Message(), "network error")
	assert.Equal(t, "Sync failed: internal error", SyncStateInternalError.Message())
	assert.Equal(t, "Sync cancelled", SyncStateCancelled.Message())
	assert.Equal(t, "Sync in progress", SyncStateReconcile.Message())
}

func TestSyncSummary_Count(t *testing.T) {
	var zero SyncSummary
	zero.Count(SyncActionAddLocal)
	assert.Equal(t, 1, zero.Actions[SyncActionAddLocal])

	s := NewSyncSummary()
	s.Count(SyncActionUpdateRemote)
	s.Count(SyncActionUpdateRemote)
	s.Count(SyncActionDeleteLocal)

	assert.Equal(t, map[SyncAction]int{
		SyncActionUpdateRemote: 2,
		SyncActionDeleteLocal:  1,
	}, s.Actions)
}

func TestNoteRowHelpers(t *testing.T) {
	assert.True(t, NoteRow{ParentID: TrashFolderID}.IsTrashed())
	assert.False(t, NoteRow{ParentID: RootFolderID}.IsTrashed())
	assert.True(t, NoteRow{Type: NoteTypeFolder}.IsFolder())
	assert.True(t, NoteRow{Type: NoteTypeSystem}.IsFolder())
	assert.False(t, NoteRow{Type: NoteTypeNote}.IsFolder())
}

func TestNoteContent_TextData(t *testing.T) {
	_, ok := NoteContent{}.TextData()
	assert.False(t, ok)

	d, ok := NoteContent{Data: []DataInfo{
		{MimeType: MimeTypeCallNote, Content: "call"},
		{MimeType: MimeTypeTextNote, Content: "text"},
	}}.TextData()
	assert.True(t, ok)
	assert.Equal(t, "text", d.Content)
}
