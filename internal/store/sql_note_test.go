package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientStorages(t *testing.T) *ClientStorages {
	t.Helper()

	cfg := config.ClientStorage{DB: config.ClientDB{DSN: filepath.Join(t.TempDir(), "notes.db")}}
	storages, err := NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages
}

func textNote(parentID int64, text string) models.NoteContent {
	return models.NoteContent{
		Note: models.NoteInfo{ParentID: parentID, Type: models.NoteTypeNote, WidgetType: -1},
		Data: []models.DataInfo{{MimeType: models.MimeTypeTextNote, Content: text}},
	}
}

func createNote(t *testing.T, s *ClientStorages, parentID int64, text string) *SQLNote {
	t.Helper()
	ctx := context.Background()

	note := NewSQLNote(s.NoteStores())
	require.NoError(t, note.SetContent(ctx, textNote(parentID, text)))
	require.NoError(t, note.Commit(ctx, false))
	return note
}

func TestSQLNote_CreateAndReload(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()

	// Arrange / Act
	note := createNote(t, s, models.RootFolderID, "buy milk")

	// Assert
	assert.False(t, note.IsCreate())
	assert.Greater(t, note.ID(), int64(0))
	assert.Empty(t, note.Diff())

	content, err := note.Content()
	require.NoError(t, err)
	require.Len(t, content.Data, 1)
	assert.Equal(t, "buy milk", content.Data[0].Content)
	assert.NotZero(t, content.Data[0].ID)
	// snippet is maintained by the data trigger
	assert.Equal(t, "buy milk", content.Note.Snippet)

	loaded, err := LoadSQLNote(ctx, s.NoteStores(), note.ID())
	require.NoError(t, err)
	assert.Equal(t, note.Row(), loaded.Row())
}

func TestSQLNote_ContentBeforeCommit(t *testing.T) {
	s := newTestClientStorages(t)

	note := NewSQLNote(s.NoteStores())
	_, err := note.Content()
	assert.ErrorIs(t, err, ErrContentNotCommitted)
}

func TestSQLNote_LoadMissing(t *testing.T) {
	s := newTestClientStorages(t)

	_, err := LoadSQLNote(context.Background(), s.NoteStores(), 4242)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestSQLNote_UpdateWritesOnlyDiff(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()
	note := createNote(t, s, models.RootFolderID, "buy milk")
	before := note.Version()

	content, err := note.Content()
	require.NoError(t, err)

	// same content: nothing to write
	require.NoError(t, note.SetContent(ctx, content))
	assert.Empty(t, note.Diff())

	content.Data[0].Content = "buy bread"
	require.NoError(t, note.SetContent(ctx, content))
	note.SetGTaskID("gid-1")
	note.SetSyncID(1000)
	note.ResetLocalModified()
	assert.Contains(t, note.Diff(), NoteColumnGTaskID)

	require.NoError(t, note.Commit(ctx, true))

	row := note.Row()
	assert.Equal(t, "gid-1", row.GTaskID)
	assert.Equal(t, int64(1000), row.SyncID)
	assert.False(t, row.LocalModified)
	assert.Equal(t, "buy bread", row.Snippet)
	assert.Equal(t, before+1, row.Version, "every note update bumps the version")
}

func TestSQLNote_LostWriteIsDropped(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()
	created := createNote(t, s, models.RootFolderID, "draft")

	// синк загрузил заметку
	syncing, err := LoadSQLNote(ctx, s.NoteStores(), created.ID())
	require.NoError(t, err)

	// пользователь успел отредактировать её
	editor, err := LoadSQLNote(ctx, s.NoteStores(), created.ID())
	require.NoError(t, err)
	userContent, err := editor.Content()
	require.NoError(t, err)
	userContent.Data[0].Content = "user edit"
	userContent.Note.ModifiedDate += 1000
	require.NoError(t, editor.SetContent(ctx, userContent))
	require.NoError(t, editor.Commit(ctx, false))

	// синк пытается записать удалённую версию с проверкой версии
	remote, err := syncing.Content()
	require.NoError(t, err)
	remote.Data[0].Content = "remote text"
	require.NoError(t, syncing.SetContent(ctx, remote))
	syncing.SetGTaskID("gid-9")
	require.NoError(t, syncing.Commit(ctx, true))

	// Assert: the user's edit survived and nothing from the sync landed
	final, err := LoadSQLNote(ctx, s.NoteStores(), created.ID())
	require.NoError(t, err)
	got, err := final.Content()
	require.NoError(t, err)
	assert.Equal(t, "user edit", got.Data[0].Content)
	assert.Empty(t, final.Row().GTaskID)
}

func TestSQLNote_FolderTakesOnlyName(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()

	folder := NewSQLNote(s.NoteStores())
	require.NoError(t, folder.SetContent(ctx, models.NoteContent{
		Note: models.NoteInfo{Type: models.NoteTypeFolder, Snippet: "Work", AlertDate: 99},
	}))
	require.NoError(t, folder.Commit(ctx, false))

	content, err := folder.Content()
	require.NoError(t, err)
	assert.Equal(t, models.NoteTypeFolder, content.Note.Type)
	assert.Equal(t, "Work", content.Note.Snippet)
	assert.Zero(t, folder.Row().AlertDate)
	assert.Empty(t, content.Data)
}

func TestSQLNote_SystemFolderIsNotRewritten(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()

	root, err := LoadSQLNote(ctx, s.NoteStores(), models.RootFolderID)
	require.NoError(t, err)

	require.NoError(t, root.SetContent(ctx, models.NoteContent{
		Note: models.NoteInfo{ID: models.RootFolderID, Type: models.NoteTypeSystem, Snippet: "renamed"},
	}))
	assert.Empty(t, root.Diff())
}

func TestSQLNote_MoveToFolderUpdatesCounts(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()

	folder := NewSQLNote(s.NoteStores())
	require.NoError(t, folder.SetContent(ctx, models.NoteContent{Note: models.NoteInfo{Type: models.NoteTypeFolder, Snippet: "Work"}}))
	require.NoError(t, folder.Commit(ctx, false))

	note := createNote(t, s, models.RootFolderID, "meeting")
	note.SetParentID(folder.ID())
	require.NoError(t, note.Commit(ctx, true))

	reloaded, err := s.Notes.Get(ctx, folder.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.NotesCount)
}

func TestSQLNote_AddsDataToExistingNote(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()
	note := createNote(t, s, models.RootFolderID, "call me")

	content, err := note.Content()
	require.NoError(t, err)
	content.Data = append(content.Data, models.DataInfo{MimeType: models.MimeTypeCallNote, Data3: "+100500"})
	require.NoError(t, note.SetContent(ctx, content))
	require.NoError(t, note.Commit(ctx, true))

	rows, err := s.Data.Query(ctx, DataFilter{NoteIDs: []int64{note.ID()}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "+100500", rows[1].Data3)
}

// ── SQLData ──

func TestSQLData_NewHasFullDiff(t *testing.T) {
	d := NewSQLData(nil)

	assert.True(t, d.IsCreate())
	assert.Len(t, d.Diff(), 5)

	_, err := d.Content()
	assert.ErrorIs(t, err, ErrContentNotCommitted)
}

func TestSQLData_SetContentTracksChanges(t *testing.T) {
	d := LoadSQLData(nil, models.DataRow{ID: 3, NoteID: 1, MimeType: models.MimeTypeTextNote, Content: "a"})

	d.SetContent(models.DataInfo{MimeType: models.MimeTypeTextNote, Content: "a"})
	assert.Empty(t, d.Diff())

	d.SetContent(models.DataInfo{Content: "b", Data1: 4})
	assert.Equal(t, Fields{DataColumnContent: "b", DataColumnData1: int64(4)}, d.Diff())
	assert.Equal(t, models.MimeTypeTextNote, d.MimeType(), "an empty mime type means a text note")
}

func TestSQLData_CommitUpdateGuarded(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()
	note := createNote(t, s, models.RootFolderID, "v1")

	rows, err := s.Data.Query(ctx, DataFilter{NoteIDs: []int64{note.ID()}})
	require.NoError(t, err)
	d := LoadSQLData(s.Data, rows[0])

	d.SetContent(models.DataInfo{Content: "stale"})
	require.NoError(t, d.Commit(ctx, note.ID(), true, note.Version()+10))
	assert.Empty(t, d.Diff(), "an abandoned diff is cleared")

	rows, err = s.Data.Query(ctx, DataFilter{IDs: []int64{d.ID()}})
	require.NoError(t, err)
	assert.Equal(t, "v1", rows[0].Content)

	d.SetContent(models.DataInfo{Content: "fresh"})
	require.NoError(t, d.Commit(ctx, note.ID(), true, note.Version()))

	rows, err = s.Data.Query(ctx, DataFilter{IDs: []int64{d.ID()}})
	require.NoError(t, err)
	assert.Equal(t, "fresh", rows[0].Content)
}

func TestSQLData_CreateRoundTrip(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()
	note := createNote(t, s, models.CallRecordFolderID, "call")

	input := models.DataInfo{
		MimeType: models.MimeTypeCallNote,
		Content:  "missed call",
		Data1:    1700000000000,
		Data2:    42,
		Data3:    "+7 900 000 00 00",
	}

	// Arrange
	d := NewSQLData(s.Data)
	d.SetContent(input)

	// Act
	require.NoError(t, d.Commit(ctx, note.ID(), false, 0))

	// Assert
	assert.False(t, d.IsCreate())
	require.NotZero(t, d.ID())

	got, err := d.Content()
	require.NoError(t, err)
	input.ID = d.ID()
	assert.Equal(t, input, got)

	rows, err := s.Data.Query(ctx, DataFilter{IDs: []int64{d.ID()}})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// повторная загрузка из базы даёт те же пять полей
	reloaded, err := LoadSQLData(s.Data, rows[0]).Content()
	require.NoError(t, err)
	assert.Equal(t, input, reloaded)
}

func TestSQLNote_MarkLocalModified(t *testing.T) {
	s := newTestClientStorages(t)
	ctx := context.Background()

	note := NewSQLNote(s.NoteStores())
	require.NoError(t, note.SetContent(ctx, textNote(models.RootFolderID, "todo")))
	note.MarkLocalModified()
	require.NoError(t, note.Commit(ctx, false))
	assert.True(t, note.Row().LocalModified)

	note.ResetLocalModified()
	require.NoError(t, note.Commit(ctx, true))
	assert.False(t, note.Row().LocalModified)
}
