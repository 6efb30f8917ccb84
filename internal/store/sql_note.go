package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// NoteStores bundles the repositories a [SQLNote] writes through.
type NoteStores struct {
	Notes NoteRepository
	Data  DataRepository
	Batch BatchApplier
}

// SQLNote is the proxy of one note row and, for notes of type NOTE, of its
// data rows. Like [SQLData] it tracks a diff and writes only changed fields.
type SQLNote struct {
	stores NoteStores

	isCreate bool
	row      models.NoteRow
	data     []*SQLData
	diff     Fields
}

// NewSQLNote returns a proxy of a note that does not exist yet.
func NewSQLNote(stores NoteStores) *SQLNote {
	now := time.Now().UnixMilli()
	return &SQLNote{
		stores:   stores,
		isCreate: true,
		row: models.NoteRow{
			ID:           models.InvalidID,
			ParentID:     models.RootFolderID,
			CreatedDate:  now,
			ModifiedDate: now,
			Type:         models.NoteTypeNote,
			WidgetType:   -1,
		},
		diff: Fields{},
	}
}

// LoadSQLNote reads the note id and its data rows. It returns
// [ErrNoteNotFound] when the row is gone.
func LoadSQLNote(ctx context.Context, stores NoteStores, id int64) (*SQLNote, error) {
	n := &SQLNote{stores: stores, diff: Fields{}}
	if err := n.load(ctx, id); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *SQLNote) load(ctx context.Context, id int64) error {
	row, err := n.stores.Notes.Get(ctx, id)
	if err != nil {
		return err
	}

	n.row = row
	n.data = nil
	if row.Type == models.NoteTypeNote {
		rows, err := n.stores.Data.Query(ctx, DataFilter{NoteIDs: []int64{id}})
		if err != nil {
			return fmt.Errorf("load data of note %d: %w", id, err)
		}
		for _, r := range rows {
			n.data = append(n.data, LoadSQLData(n.stores.Data, r))
		}
	}
	n.isCreate = false
	return nil
}

func (n *SQLNote) ID() int64 { return n.row.ID }

func (n *SQLNote) ParentID() int64 { return n.row.ParentID }

func (n *SQLNote) Snippet() string { return n.row.Snippet }

func (n *SQLNote) Version() int64 { return n.row.Version }

func (n *SQLNote) IsCreate() bool { return n.isCreate }

// Row returns the note row as last loaded or set.
func (n *SQLNote) Row() models.NoteRow { return n.row }

// IsNoteType reports whether the proxy wraps a note rather than a folder.
func (n *SQLNote) IsNoteType() bool { return n.row.Type == models.NoteTypeNote }

// Diff returns a copy of the pending note fields.
func (n *SQLNote) Diff() Fields {
	diff := make(Fields, len(n.diff))
	for k, v := range n.diff {
		diff[k] = v
	}
	return diff
}

// SetContent loads local JSON. System folders are never rewritten; folders
// only take their name and type; notes take every column and their data
// rows, matched by id and then by mime type.
func (n *SQLNote) SetContent(ctx context.Context, content models.NoteContent) error {
	info := content.Note

	switch info.Type {
	case models.NoteTypeSystem:
		logger.FromContext(ctx).Warn().
			Str("func", "SQLNote.SetContent").
			Int64("note_id", n.row.ID).
			Msg("cannot set system folder")
		return nil

	case models.NoteTypeFolder:
		n.set(NoteColumnSnippet, n.row.Snippet != info.Snippet, info.Snippet)
		n.row.Snippet = info.Snippet
		n.set(NoteColumnType, n.row.Type != info.Type, int(info.Type))
		n.row.Type = info.Type
		return nil

	case models.NoteTypeNote:
	default:
		return fmt.Errorf("%w: unknown note type %d", models.ErrInvalidLocalContent, info.Type)
	}

	n.set(NoteColumnAlertDate, n.row.AlertDate != info.AlertDate, info.AlertDate)
	n.row.AlertDate = info.AlertDate
	n.set(NoteColumnBgColorID, n.row.BgColorID != info.BgColorID, info.BgColorID)
	n.row.BgColorID = info.BgColorID

	createdDate := info.CreatedDate
	if createdDate == 0 {
		createdDate = n.row.CreatedDate
	}
	n.set(NoteColumnCreatedDate, n.row.CreatedDate != createdDate, createdDate)
	n.row.CreatedDate = createdDate

	n.set(NoteColumnHasAttachment, n.row.HasAttachment != info.HasAttachment, info.HasAttachment)
	n.row.HasAttachment = info.HasAttachment

	modifiedDate := info.ModifiedDate
	if modifiedDate == 0 {
		modifiedDate = n.row.ModifiedDate
	}
	n.set(NoteColumnModifiedDate, n.row.ModifiedDate != modifiedDate, modifiedDate)
	n.row.ModifiedDate = modifiedDate

	n.set(NoteColumnParentID, n.row.ParentID != info.ParentID, info.ParentID)
	n.row.ParentID = info.ParentID
	n.set(NoteColumnSnippet, n.row.Snippet != info.Snippet, info.Snippet)
	n.row.Snippet = info.Snippet
	n.set(NoteColumnType, n.row.Type != info.Type, int(info.Type))
	n.row.Type = info.Type
	n.set(NoteColumnWidgetID, n.row.WidgetID != info.WidgetID, info.WidgetID)
	n.row.WidgetID = info.WidgetID
	n.set(NoteColumnWidgetType, n.row.WidgetType != info.WidgetType, info.WidgetType)
	n.row.WidgetType = info.WidgetType
	n.set(NoteColumnOriginParentID, n.row.OriginParentID != info.OriginParentID, info.OriginParentID)
	n.row.OriginParentID = info.OriginParentID

	for _, d := range content.Data {
		n.dataFor(d).SetContent(d)
	}
	return nil
}

// dataFor finds the proxy a data entry belongs to, creating one if needed.
func (n *SQLNote) dataFor(info models.DataInfo) *SQLData {
	if info.ID != 0 {
		for _, d := range n.data {
			if d.ID() == info.ID {
				return d
			}
		}
	}

	mimeType := info.MimeType
	if mimeType == "" {
		mimeType = models.MimeTypeTextNote
	}
	for _, d := range n.data {
		if d.MimeType() == mimeType {
			return d
		}
	}

	d := NewSQLData(n.stores.Data)
	n.data = append(n.data, d)
	return d
}

// Content renders the note as local JSON. It fails for a note that was
// never committed.
func (n *SQLNote) Content() (models.NoteContent, error) {
	if n.isCreate {
		return models.NoteContent{}, ErrContentNotCommitted
	}

	content := models.NoteContent{
		Note: models.NoteInfo{
			ID:             n.row.ID,
			ParentID:       n.row.ParentID,
			AlertDate:      n.row.AlertDate,
			BgColorID:      n.row.BgColorID,
			CreatedDate:    n.row.CreatedDate,
			HasAttachment:  n.row.HasAttachment,
			ModifiedDate:   n.row.ModifiedDate,
			NotesCount:     n.row.NotesCount,
			Snippet:        n.row.Snippet,
			Type:           n.row.Type,
			WidgetID:       n.row.WidgetID,
			WidgetType:     n.row.WidgetType,
			OriginParentID: n.row.OriginParentID,
		},
	}

	if n.row.Type != models.NoteTypeNote {
		content.Note = models.NoteInfo{ID: n.row.ID, Type: n.row.Type, Snippet: n.row.Snippet}
		return content, nil
	}

	for _, d := range n.data {
		info, err := d.Content()
		if err != nil {
			return models.NoteContent{}, err
		}
		content.Data = append(content.Data, info)
	}
	return content, nil
}

func (n *SQLNote) SetGTaskID(gid string) {
	n.set(NoteColumnGTaskID, n.row.GTaskID != gid, gid)
	n.row.GTaskID = gid
}

func (n *SQLNote) SetSyncID(syncID int64) {
	n.set(NoteColumnSyncID, n.row.SyncID != syncID, syncID)
	n.row.SyncID = syncID
}

func (n *SQLNote) SetParentID(id int64) {
	n.set(NoteColumnParentID, n.row.ParentID != id, id)
	n.row.ParentID = id
}

// ResetLocalModified marks the row as in sync with the remote side.
func (n *SQLNote) ResetLocalModified() {
	n.set(NoteColumnLocalModified, n.row.LocalModified, false)
	n.row.LocalModified = false
}

// MarkLocalModified flags a local edit that the next sync has to push.
func (n *SQLNote) MarkLocalModified() {
	now := time.Now().UnixMilli()
	n.set(NoteColumnLocalModified, !n.row.LocalModified, true)
	n.row.LocalModified = true
	n.set(NoteColumnModifiedDate, n.row.ModifiedDate != now, now)
	n.row.ModifiedDate = now
}

func (n *SQLNote) set(column string, changed bool, value any) {
	if n.isCreate || changed {
		n.diff[column] = value
	}
}

// Commit writes the pending changes and reloads the row.
//
// A new note is inserted first and its data rows after it. An existing
// note is written in one batch: data rows first, guarded by the version
// captured at load time when validateVersion is set, then the note row
// itself under the same guard. A guarded write that matches nothing is
// logged and abandoned.
func (n *SQLNote) Commit(ctx context.Context, validateVersion bool) error {
	if n.isCreate {
		return n.commitCreate(ctx)
	}
	return n.commitUpdate(ctx, validateVersion)
}

func (n *SQLNote) commitCreate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	fields := n.Diff()
	fields[NoteColumnType] = int(n.row.Type)
	fields[NoteColumnParentID] = n.row.ParentID

	id, err := n.stores.Notes.Insert(ctx, fields)
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}

	if n.row.Type == models.NoteTypeNote {
		for _, d := range n.data {
			if err := d.Commit(ctx, id, false, 0); err != nil {
				_, delErr := n.stores.Notes.Delete(ctx, id)
				if delErr != nil {
					log.Err(delErr).
						Str("func", "SQLNote.commitCreate").
						Int64("note_id", id).
						Msg("failed to remove half created note")
				}
				return errors.Join(err, delErr)
			}
		}
	}

	n.diff = Fields{}
	return n.load(ctx, id)
}

func (n *SQLNote) commitUpdate(ctx context.Context, validateVersion bool) error {
	log := logger.FromContext(ctx)

	version := n.row.Version
	var ops []Operation
	var pending []*SQLData

	if n.row.Type == models.NoteTypeNote {
		for _, d := range n.data {
			if d.IsCreate() {
				pending = append(pending, d)
				continue
			}
			if op, ok := d.updateOperation(validateVersion, version); ok {
				ops = append(ops, op)
			}
		}
	}

	if len(n.diff) > 0 {
		op := Operation{
			Entity: EntityNote,
			Type:   OperationUpdate,
			ID:     n.row.ID,
			Fields: n.Diff(),
		}
		if validateVersion {
			op.Version = &version
		}
		ops = append(ops, op)
	}

	if len(ops) > 0 {
		results, err := n.stores.Batch.BatchApply(ctx, ops)
		if err != nil {
			return fmt.Errorf("update note %d: %w", n.row.ID, err)
		}
		for i, res := range results {
			if res.Affected == 0 {
				log.Warn().
					Str("func", "SQLNote.Commit").
					Int64("note_id", n.row.ID).
					Str("entity", ops[i].Entity.String()).
					Int64("id", ops[i].ID).
					Msg("there is no update, maybe the note was edited while syncing")
			}
		}
	}

	// data rows added to an existing note
	for _, d := range pending {
		if err := d.Commit(ctx, n.row.ID, false, 0); err != nil {
			return err
		}
	}

	n.diff = Fields{}
	return n.load(ctx, n.row.ID)
}
