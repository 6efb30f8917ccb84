// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// NoteType is the kind of a row of the local note table.
type NoteType int

const (
	// NoteTypeNote is a regular note whose text lives in the data table.
	NoteTypeNote NoteType = 0

	// NoteTypeFolder is a user created folder.
	NoteTypeFolder NoteType = 1

	// NoteTypeSystem marks the predefined folders (root, temporary,
	// call-record and trash). System folders are never deleted.
	NoteTypeSystem NoteType = 2
)

// Identifiers of the system folders created by the initial migration.
const (
	RootFolderID       int64 = 0
	TempFolderID       int64 = -1
	CallRecordFolderID int64 = -2
	TrashFolderID      int64 = -3
)

// Mime types stored in data.mime_type.
const (
	MimeTypeTextNote = "vnd.android.cursor.item/text_note"
	MimeTypeCallNote = "vnd.android.cursor.item/call_note"
)

// InvalidID is the identifier of a row that has not been inserted yet.
const InvalidID int64 = -99999

// NoteRow is one row of the local note table.
type NoteRow struct {
	ID             int64
	ParentID       int64
	AlertDate      int64
	BgColorID      int
	CreatedDate    int64
	HasAttachment  bool
	ModifiedDate   int64
	NotesCount     int
	Snippet        string
	Type           NoteType
	WidgetID       int64
	WidgetType     int
	SyncID         int64
	LocalModified  bool
	OriginParentID int64
	GTaskID        string
	Version        int64
}

// IsTrashed reports whether the row currently sits in the trash folder.
func (r NoteRow) IsTrashed() bool {
	return r.ParentID == TrashFolderID
}

// IsFolder reports whether the row is a user or system folder.
func (r NoteRow) IsFolder() bool {
	return r.Type == NoteTypeFolder || r.Type == NoteTypeSystem
}

// DataRow is one row of the local data table. Every text note owns at least
// one data row holding its content.
type DataRow struct {
	ID           int64
	NoteID       int64
	MimeType     string
	CreatedDate  int64
	ModifiedDate int64
	Content      string
	Data1        int64
	Data2        int64
	Data3        string
}

// NoteInfo is the local JSON shape of a note or folder row.
type NoteInfo struct {
	ID             int64    `json:"id,omitempty"`
	ParentID       int64    `json:"parent_id"`
	AlertDate      int64    `json:"alert_date"`
	BgColorID      int      `json:"bg_color_id"`
	CreatedDate    int64    `json:"created_date"`
	HasAttachment  bool     `json:"has_attachment"`
	ModifiedDate   int64    `json:"modified_date"`
	NotesCount     int      `json:"notes_count"`
	Snippet        string   `json:"snippet"`
	Type           NoteType `json:"type"`
	WidgetID       int64    `json:"widget_id"`
	WidgetType     int      `json:"widget_type"`
	OriginParentID int64    `json:"origin_parent_id"`
}

// DataInfo is the local JSON shape of a data row. The five content fields
// MimeType, Content, Data1, Data2 and Data3 are the ones tracked by SQLData.
type DataInfo struct {
	ID       int64  `json:"id,omitempty"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
	Data1    int64  `json:"data1"`
	Data2    int64  `json:"data2"`
	Data3    string `json:"data3"`
}

// NoteContent is the local JSON of a note: the note row and its data rows.
type NoteContent struct {
	Note NoteInfo   `json:"note"`
	Data []DataInfo `json:"data,omitempty"`
}

// TextData returns the first text data entry and whether one exists.
func (c NoteContent) TextData() (DataInfo, bool) {
	for _, d := range c.Data {
		if d.MimeType == MimeTypeTextNote || d.MimeType == "" {
			return d, true
		}
	}
	return DataInfo{}, false
}

// MetaInfo is the JSON payload kept in the notes of a MetaData sentinel. It
// remembers which local row a remote entity was last synchronised with.
type MetaInfo struct {
	GID  string     `json:"meta_gid"`
	Note NoteInfo   `json:"meta_note"`
	Data []DataInfo `json:"meta_data,omitempty"`
}

// Content returns the local JSON recorded in the sentinel.
func (m MetaInfo) Content() NoteContent {
	return NoteContent{Note: m.Note, Data: m.Data}
}
