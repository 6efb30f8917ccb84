package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// SQLData is the proxy of one data row. It remembers which of the five
// content fields changed since the row was loaded and writes only those.
//
// A proxy built by [NewSQLData] is in create state: its diff holds every
// content field and the first Commit inserts the row.
type SQLData struct {
	repo DataRepository

	isCreate bool
	id       int64
	mimeType string
	content  string
	data1    int64
	data2    int64
	data3    string

	diff Fields
}

// NewSQLData returns a proxy for a data row that does not exist yet.
func NewSQLData(repo DataRepository) *SQLData {
	d := &SQLData{
		repo:     repo,
		isCreate: true,
		id:       models.InvalidID,
		mimeType: models.MimeTypeTextNote,
	}
	d.diff = d.fullDiff()
	return d
}

// LoadSQLData wraps an existing data row.
func LoadSQLData(repo DataRepository, row models.DataRow) *SQLData {
	return &SQLData{
		repo:     repo,
		id:       row.ID,
		mimeType: row.MimeType,
		content:  row.Content,
		data1:    row.Data1,
		data2:    row.Data2,
		data3:    row.Data3,
		diff:     Fields{},
	}
}

func (d *SQLData) ID() int64 { return d.id }

func (d *SQLData) MimeType() string { return d.mimeType }

func (d *SQLData) IsCreate() bool { return d.isCreate }

// Diff returns a copy of the pending field set.
func (d *SQLData) Diff() Fields {
	diff := make(Fields, len(d.diff))
	for k, v := range d.diff {
		diff[k] = v
	}
	return diff
}

// SetContent loads the local JSON of a data row. Fields equal to the
// current values are not queued unless the row is still being created.
// The id of info is ignored: ids are assigned by the store.
func (d *SQLData) SetContent(info models.DataInfo) {
	mimeType := info.MimeType
	if mimeType == "" {
		mimeType = models.MimeTypeTextNote
	}

	if d.isCreate || d.mimeType != mimeType {
		d.diff[DataColumnMimeType] = mimeType
	}
	d.mimeType = mimeType

	if d.isCreate || d.content != info.Content {
		d.diff[DataColumnContent] = info.Content
	}
	d.content = info.Content

	if d.isCreate || d.data1 != info.Data1 {
		d.diff[DataColumnData1] = info.Data1
	}
	d.data1 = info.Data1

	if d.isCreate || d.data2 != info.Data2 {
		d.diff[DataColumnData2] = info.Data2
	}
	d.data2 = info.Data2

	if d.isCreate || d.data3 != info.Data3 {
		d.diff[DataColumnData3] = info.Data3
	}
	d.data3 = info.Data3
}

// Content renders the row as local JSON. It fails for a row that was never
// committed.
func (d *SQLData) Content() (models.DataInfo, error) {
	if d.isCreate {
		return models.DataInfo{}, ErrContentNotCommitted
	}

	return models.DataInfo{
		ID:       d.id,
		MimeType: d.mimeType,
		Content:  d.content,
		Data1:    d.data1,
		Data2:    d.data2,
		Data3:    d.data3,
	}, nil
}

// Commit writes the pending diff. A new row is inserted under noteID. An
// existing row is updated; with validateVersion the update only applies
// while the owning note still has version.
//
// A guarded update that touches no row means the note was edited while the
// sync was running. The diff is abandoned and only a warning is logged.
func (d *SQLData) Commit(ctx context.Context, noteID int64, validateVersion bool, version int64) error {
	log := logger.FromContext(ctx)

	if d.isCreate {
		id, err := d.repo.Insert(ctx, noteID, d.diff)
		if err != nil {
			return fmt.Errorf("create data of note %d: %w", noteID, err)
		}
		d.id = id
	} else if len(d.diff) > 0 {
		var guard *int64
		if validateVersion {
			guard = &version
		}

		affected, err := d.repo.Update(ctx, d.id, d.diff, guard)
		if err != nil {
			return fmt.Errorf("update data %d: %w", d.id, err)
		}
		if affected == 0 {
			log.Warn().
				Str("func", "SQLData.Commit").
				Int64("data_id", d.id).
				Int64("note_id", noteID).
				Msg("there is no update, maybe the note was edited while syncing")
		}
	}

	d.diff = Fields{}
	d.isCreate = false
	return nil
}

// updateOperation returns the guarded batch update of the pending diff.
func (d *SQLData) updateOperation(validateVersion bool, version int64) (Operation, bool) {
	if d.isCreate || len(d.diff) == 0 {
		return Operation{}, false
	}

	op := Operation{
		Entity: EntityData,
		Type:   OperationUpdate,
		ID:     d.id,
		Fields: d.Diff(),
	}
	if validateVersion {
		op.Version = &version
	}
	return op, true
}

func (d *SQLData) fullDiff() Fields {
	return Fields{
		DataColumnMimeType: d.mimeType,
		DataColumnContent:  d.content,
		DataColumnData1:    d.data1,
		DataColumnData2:    d.data2,
		DataColumnData3:    d.data3,
	}
}
