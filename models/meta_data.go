package models

import (
	"encoding/json"
	"fmt"
)

// MetaData is the sentinel task that remembers, for one synchronised entity,
// the local row it was last paired with. All sentinels live in the list
// named [FolderPrefix]+[FolderMeta] and carry [MetaNoteName] as their name.
//
// A sentinel is rebuilt from the remote payload only; it never round-trips
// through the local store.
type MetaData struct {
	taskCore
	relatedGID string
	info       MetaInfo
}

// NewMetaData returns an empty sentinel.
func NewMetaData() *MetaData {
	return &MetaData{}
}

// SetMeta records info as the sentinel payload of the entity gid.
func (m *MetaData) SetMeta(gid string, info MetaInfo) error {
	info.GID = gid
	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal meta info of %s: %w", gid, err)
	}

	m.notes = string(payload)
	m.name = MetaNoteName
	m.relatedGID = gid
	m.info = info
	m.source = SourceLocal
	return nil
}

// RelatedGID returns the gid of the entity the sentinel describes, or an
// empty string when the payload could not be read.
func (m *MetaData) RelatedGID() string { return m.relatedGID }

// Info returns the decoded sentinel payload.
func (m *MetaData) Info() MetaInfo { return m.info }

func (m *MetaData) ApplyRemote(entity RemoteEntity) error {
	if err := m.taskCore.ApplyRemote(entity); err != nil {
		return err
	}

	m.relatedGID = ""
	m.info = MetaInfo{}

	var info MetaInfo
	if m.notes == "" || json.Unmarshal([]byte(m.notes), &info) != nil {
		return nil
	}
	m.relatedGID = info.GID
	m.info = info
	return nil
}
