package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildSelectNotesQuery_NoFilter(t *testing.T) {
	query, args, err := buildSelectNotesQuery(NoteFilter{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "select")
	require.Contains(t, q, "from note")
	require.NotContains(t, q, "where")
	require.Contains(t, q, "order by _id")
	require.Empty(t, args)

	for _, c := range noteColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildSelectNotesQuery(t *testing.T) {
	tests := []struct {
		name       string
		filter     NoteFilter
		wantParts  []string
		wantArgs   []any
		absentPart string
	}{
		{
			name:      "by ids",
			filter:    NoteFilter{IDs: []int64{1, 2}},
			wantParts: []string{"_id IN (?,?)"},
			wantArgs:  []any{int64(1), int64(2)},
		},
		{
			name:      "exclude parents",
			filter:    NoteFilter{ExcludeParentIDs: []int64{models.TrashFolderID}},
			wantParts: []string{"parent_id NOT IN (?)"},
			wantArgs:  []any{models.TrashFolderID},
		},
		{
			name:      "types are sent as ints",
			filter:    NoteFilter{Types: []models.NoteType{models.NoteTypeFolder, models.NoteTypeSystem}},
			wantParts: []string{"type IN (?,?)"},
			wantArgs:  []any{1, 2},
		},
		{
			name:      "synced rows",
			filter:    NoteFilter{Synced: Ptr(true)},
			wantParts: []string{"gtask_id <> ?"},
			wantArgs:  []any{""},
		},
		{
			name:      "never synced rows",
			filter:    NoteFilter{Synced: Ptr(false)},
			wantParts: []string{"gtask_id = ?"},
			wantArgs:  []any{""},
		},
		{
			name:      "locally modified",
			filter:    NoteFilter{LocalModified: Ptr(true)},
			wantParts: []string{"local_modified = ?"},
			wantArgs:  []any{true},
		},
		{
			name: "filters are combined with AND",
			filter: NoteFilter{
				ParentIDs:  []int64{5},
				ExcludeIDs: []int64{7},
			},
			wantParts: []string{"_id NOT IN (?)", " AND ", "parent_id IN (?)"},
			wantArgs:  []any{int64(7), int64(5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectNotesQuery(tt.filter)
			require.NoError(t, err)

			for _, part := range tt.wantParts {
				assert.Contains(t, query, part)
			}
			assert.Equal(t, tt.wantArgs, args)
			assert.NotContains(t, query, "$1", "sqlite uses ? placeholders")
		})
	}
}

func Test_buildUpdateNoteQuery_IncrementsVersion(t *testing.T) {
	query, args, err := buildUpdateNoteQuery(10, Fields{NoteColumnSnippet: "hello"}, nil)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE note SET")
	assert.Contains(t, query, "snippet = ?")
	assert.Contains(t, query, "version = version + 1")
	assert.Contains(t, query, "WHERE _id = ?")
	assert.NotContains(t, query, "version = ?")
	assert.Equal(t, []any{"hello", int64(10)}, args)
}

func Test_buildUpdateNoteQuery_VersionGuard(t *testing.T) {
	query, args, err := buildUpdateNoteQuery(10, Fields{NoteColumnSnippet: "hello"}, Ptr(int64(3)))
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE _id = ? AND version = ?")
	assert.Equal(t, []any{"hello", int64(10), int64(3)}, args)
}

func Test_buildUpdateNoteQuery_RejectsFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		wantErr error
	}{
		{name: "empty", fields: Fields{}, wantErr: ErrEmptyFields},
		{name: "version is not writable", fields: Fields{NoteColumnVersion: 5}, wantErr: ErrUnknownColumn},
		{name: "id is not writable", fields: Fields{NoteColumnID: 5}, wantErr: ErrUnknownColumn},
		{name: "unknown column", fields: Fields{"title": "x"}, wantErr: ErrUnknownColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := buildUpdateNoteQuery(1, tt.fields, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func Test_buildInsertNoteQuery(t *testing.T) {
	query, args, err := buildInsertNoteQuery(Fields{
		NoteColumnParentID: int64(0),
		NoteColumnType:     0,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO note")
	assert.Contains(t, query, "parent_id")
	assert.Contains(t, query, "VALUES (?,?)")
	assert.Len(t, args, 2)
}

func Test_buildInsertDataQuery_AddsOwner(t *testing.T) {
	query, args, err := buildInsertDataQuery(42, Fields{DataColumnContent: "text"})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO data")
	assert.Contains(t, query, "note_id")
	assert.Contains(t, args, int64(42))
	assert.Contains(t, args, "text")
}

func Test_buildUpdateDataQuery_GuardOnNoteVersion(t *testing.T) {
	query, args, err := buildUpdateDataQuery(8, Fields{DataColumnContent: "new"}, Ptr(int64(4)))
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE data SET content = ?")
	assert.Contains(t, query, "note_id IN (SELECT _id FROM note WHERE version = ?)")
	assert.Equal(t, []any{"new", int64(8), int64(4)}, args)
}

func Test_buildUpdateDataQuery_NoGuard(t *testing.T) {
	query, _, err := buildUpdateDataQuery(8, Fields{DataColumnContent: "new"}, nil)
	require.NoError(t, err)

	assert.NotContains(t, query, "SELECT")
}

func Test_buildSetSyncStateQuery_Upsert(t *testing.T) {
	query, args, err := buildSetSyncStateQuery(syncStateKeyLastSyncTime, "100")
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO sync_state (key,value) VALUES (?,?)")
	assert.Contains(t, query, "ON CONFLICT (key) DO UPDATE")
	assert.Equal(t, []any{"last_sync_time", "100"}, args)
}

func Test_buildClearSyncMarksQuery(t *testing.T) {
	query, args, err := buildClearSyncMarksQuery()
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE note SET gtask_id = ?, sync_id = ?, local_modified = ?")
	assert.NotContains(t, query, "WHERE")
	assert.Equal(t, []any{"", 0, true}, args)
}
