package store

import "github.com/MKhiriev/go-notes-sync/models"

// Fields is a column to value map used by inserts and updates. Keys are
// checked against the columns of the target table.
type Fields map[string]any

// Note table columns.
const (
	NoteColumnID             = "_id"
	NoteColumnParentID       = "parent_id"
	NoteColumnAlertDate      = "alert_date"
	NoteColumnBgColorID      = "bg_color_id"
	NoteColumnCreatedDate    = "created_date"
	NoteColumnHasAttachment  = "has_attachment"
	NoteColumnModifiedDate   = "modified_date"
	NoteColumnNotesCount     = "notes_count"
	NoteColumnSnippet        = "snippet"
	NoteColumnType           = "type"
	NoteColumnWidgetID       = "widget_id"
	NoteColumnWidgetType     = "widget_type"
	NoteColumnSyncID         = "sync_id"
	NoteColumnLocalModified  = "local_modified"
	NoteColumnOriginParentID = "origin_parent_id"
	NoteColumnGTaskID        = "gtask_id"
	NoteColumnVersion        = "version"
)

// Data table columns.
const (
	DataColumnID           = "_id"
	DataColumnMimeType     = "mime_type"
	DataColumnNoteID       = "note_id"
	DataColumnCreatedDate  = "created_date"
	DataColumnModifiedDate = "modified_date"
	DataColumnContent      = "content"
	DataColumnData1        = "data1"
	DataColumnData2        = "data2"
	DataColumnData3        = "data3"
	DataColumnData4        = "data4"
	DataColumnData5        = "data5"
)

var noteColumns = []string{
	NoteColumnID, NoteColumnParentID, NoteColumnAlertDate, NoteColumnBgColorID,
	NoteColumnCreatedDate, NoteColumnHasAttachment, NoteColumnModifiedDate,
	NoteColumnNotesCount, NoteColumnSnippet, NoteColumnType, NoteColumnWidgetID,
	NoteColumnWidgetType, NoteColumnSyncID, NoteColumnLocalModified,
	NoteColumnOriginParentID, NoteColumnGTaskID, NoteColumnVersion,
}

var dataColumns = []string{
	DataColumnID, DataColumnMimeType, DataColumnNoteID, DataColumnCreatedDate,
	DataColumnModifiedDate, DataColumnContent, DataColumnData1, DataColumnData2,
	DataColumnData3,
}

// writableNoteColumns excludes _id and version: ids come from the database
// and versions are only ever incremented by Update.
var writableNoteColumns = columnSet(noteColumns[1 : len(noteColumns)-1]...)

var writableDataColumns = columnSet(
	DataColumnMimeType, DataColumnNoteID, DataColumnCreatedDate, DataColumnModifiedDate,
	DataColumnContent, DataColumnData1, DataColumnData2, DataColumnData3,
	DataColumnData4, DataColumnData5,
)

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// NoteFilter selects note rows. Empty slices and nil pointers do not filter.
type NoteFilter struct {
	IDs              []int64
	ParentIDs        []int64
	ExcludeParentIDs []int64
	Types            []models.NoteType
	ExcludeIDs       []int64
	// Synced keeps rows with (true) or without (false) a gid.
	Synced *bool
	// LocalModified keeps rows with the given local_modified flag.
	LocalModified *bool
}

// DataFilter selects data rows.
type DataFilter struct {
	IDs       []int64
	NoteIDs   []int64
	MimeTypes []string
}

// EntityKind names the table an [Operation] targets.
type EntityKind int

const (
	EntityNote EntityKind = iota
	EntityData
)

func (k EntityKind) String() string {
	if k == EntityData {
		return "data"
	}
	return "note"
}

// OperationType is the kind of write of an [Operation].
type OperationType int

const (
	OperationInsert OperationType = iota
	OperationUpdate
	OperationDelete
)

// Operation is one write of a batch.
type Operation struct {
	Entity EntityKind
	Type   OperationType

	// ID addresses the row for updates and deletes.
	ID int64

	// NoteID is the owner of an inserted data row.
	NoteID int64

	Fields Fields

	// Version guards an update: for notes it is compared with the row
	// version, for data with the version of the owning note.
	Version *int64
}

// OperationResult is the outcome of one operation of a batch.
type OperationResult struct {
	// ID is the id of an inserted row.
	ID int64
	// Affected is the number of rows touched.
	Affected int64
}

// Ptr returns a pointer to v. It keeps optional filter and version arguments
// readable at call sites.
func Ptr[T any](v T) *T {
	return &v
}
