package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAction_WithoutRemoteNode(t *testing.T) {
	tests := []struct {
		name string
		row  NoteRow
		want SyncAction
	}{
		{"new local edit", NoteRow{ID: 1, LocalModified: true}, SyncActionAddRemote},
		{"never synced and untouched", NoteRow{ID: 1}, SyncActionNone},
		{"removed remotely", NoteRow{ID: 1, GTaskID: "t-1", SyncID: 10}, SyncActionDeleteLocal},
		{"removed remotely with local edit", NoteRow{ID: 1, GTaskID: "t-1", LocalModified: true}, SyncActionDeleteLocal},
		{"removed on both sides", NoteRow{ID: 1, GTaskID: "t-1", ParentID: TrashFolderID}, SyncActionNone},
		{"trashed before the first sync", NoteRow{ID: 1, ParentID: TrashFolderID, LocalModified: true}, SyncActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAction(tt.row, nil))
		})
	}
}

func TestClassifyAction_Task(t *testing.T) {
	const gid = "t-1"

	newNode := func(t *testing.T, lastModified int64, metaNoteID int64, withMeta bool) *Task {
		task := syncedTask(t, gid, "buy milk", lastModified)
		if withMeta {
			task.SetMetaInfo(MetaInfo{GID: gid, Note: NoteInfo{ID: metaNoteID}})
		}
		return task
	}

	tests := []struct {
		name     string
		row      NoteRow
		remoteAt int64
		metaID   int64
		noMeta   bool
		want     SyncAction
	}{
		{
			name:     "unchanged on both sides",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100},
			remoteAt: 100, metaID: 5,
			want: SyncActionNone,
		},
		{
			name:     "changed remotely",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100},
			remoteAt: 150, metaID: 5,
			want: SyncActionUpdateLocal,
		},
		{
			name:     "changed locally",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100, LocalModified: true},
			remoteAt: 100, metaID: 5,
			want: SyncActionUpdateRemote,
		},
		{
			name:     "changed on both sides",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100, LocalModified: true},
			remoteAt: 150, metaID: 5,
			want: SyncActionUpdateConflict,
		},
		{
			name:     "trashed locally",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100, ParentID: TrashFolderID, LocalModified: true},
			remoteAt: 150, metaID: 5,
			want: SyncActionDeleteRemote,
		},
		{
			name:     "local row paired with another gid",
			row:      NoteRow{ID: 5, GTaskID: "t-other", SyncID: 100, LocalModified: true},
			remoteAt: 100, metaID: 5,
			want: SyncActionError,
		},
		{
			name:     "sentinel missing",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100},
			remoteAt: 100, noMeta: true,
			want: SyncActionUpdateRemote,
		},
		{
			name:     "sentinel points to another row",
			row:      NoteRow{ID: 5, GTaskID: gid, SyncID: 100, LocalModified: true},
			remoteAt: 100, metaID: 9,
			want: SyncActionUpdateLocal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := newNode(t, tt.remoteAt, tt.metaID, !tt.noMeta)
			assert.Equal(t, tt.want, ClassifyAction(tt.row, node))
		})
	}
}

func TestClassifyAction_NodeWithoutGID(t *testing.T) {
	list := NewNamedTaskList(RemoteName("work"))

	got := ClassifyAction(NoteRow{ID: 12, Type: NoteTypeFolder}, list)

	assert.Equal(t, SyncActionAddRemote, got)

	// в корзине несозданный узел никуда не отправляется
	trashed := NoteRow{ID: 7, ParentID: TrashFolderID, LocalModified: true}
	assert.Equal(t, SyncActionNone, ClassifyAction(trashed, NewTask()))
}

func TestClassifyAction_TaskList(t *testing.T) {
	list := syncedList(t, "l-1", "work")
	require.Equal(t, int64(10), list.LastModified())

	assert.Equal(t, SyncActionNone, ClassifyAction(NoteRow{ID: 12, GTaskID: "l-1", SyncID: 10}, list))
	assert.Equal(t, SyncActionUpdateLocal, ClassifyAction(NoteRow{ID: 12, GTaskID: "l-1", SyncID: 5}, list))
	assert.Equal(t, SyncActionUpdateRemote, ClassifyAction(NoteRow{ID: 12, GTaskID: "l-1", SyncID: 10, LocalModified: true}, list))
	assert.Equal(t, SyncActionUpdateConflict, ClassifyAction(NoteRow{ID: 12, GTaskID: "l-1", SyncID: 5, LocalModified: true}, list))
	assert.Equal(t, SyncActionError, ClassifyAction(NoteRow{ID: 12, GTaskID: "l-2", SyncID: 10, LocalModified: true}, list))
}

func TestSyncAction_String(t *testing.T) {
	assert.Equal(t, "none", SyncActionNone.String())
	assert.Equal(t, "update_conflict", SyncActionUpdateConflict.String())
	assert.Equal(t, "error", SyncActionError.String())
	assert.Equal(t, "unknown", SyncAction(42).String())
	assert.Equal(t, "unknown", SyncAction(-1).String())
}
