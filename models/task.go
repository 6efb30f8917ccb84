package models

import (
	"fmt"
	"slices"
	"strings"
)

// taskCore holds what every task-shaped node shares: the remote schema and
// the position inside a parent list.
type taskCore struct {
	nodeBase
	notes     string
	completed bool
	parent    *TaskList
}

func (t *taskCore) core() *taskCore { return t }

func (t *taskCore) Notes() string { return t.notes }

func (t *taskCore) Completed() bool { return t.completed }

func (t *taskCore) Parent() *TaskList { return t.parent }

func (t *taskCore) CreateAction(actionID int) (Action, error) {
	if t.parent == nil {
		return Action{}, ErrNoParent
	}
	if t.parent.GID() == "" {
		return Action{}, fmt.Errorf("%w: %q", ErrParentNotSynced, t.parent.Name())
	}

	action := Action{
		ActionID:   actionID,
		ActionType: ActionTypeCreate,
		Index:      t.parent.indexOf(t),
		EntityDelta: &EntityDelta{
			Name:       t.name,
			EntityType: EntityTypeTask,
			Notes:      t.notes,
		},
		ParentID:       t.parent.GID(),
		DestParentType: EntityTypeGroup,
		ListID:         t.parent.GID(),
	}
	if prior := t.parent.priorOf(t); prior != nil {
		action.PriorSiblingID = prior.GID()
	}

	return action, nil
}

func (t *taskCore) UpdateAction(actionID int) (Action, error) {
	if t.gid == "" {
		return Action{}, ErrNotCreatedRemotely
	}

	return Action{
		ActionID:   actionID,
		ActionType: ActionTypeUpdate,
		ID:         t.gid,
		EntityDelta: &EntityDelta{
			Name:    t.name,
			Notes:   t.notes,
			Deleted: t.deleted,
		},
	}, nil
}

func (t *taskCore) ApplyRemote(entity RemoteEntity) error {
	if entity.Type != "" && entity.Type != EntityTypeTask {
		return fmt.Errorf("%w: task %s has type %s", ErrMalformedRemoteEntity, entity.ID, entity.Type)
	}
	if err := t.applyRemote(entity); err != nil {
		return err
	}
	t.notes = entity.Notes
	t.completed = entity.Completed
	return nil
}

// Task mirrors one local note as a remote task. The note text is the task
// name; the task notes field stays free for the user of the remote service.
type Task struct {
	taskCore
	metaInfo *MetaInfo
}

// NewTask returns an empty task that has never been synchronised.
func NewTask() *Task {
	return &Task{}
}

// SetMetaInfo attaches the local JSON recorded by the task's sentinel.
func (t *Task) SetMetaInfo(info MetaInfo) {
	info.Data = slices.Clone(info.Data)
	t.metaInfo = &info
}

// MetaInfo returns the attached sentinel payload, if any.
func (t *Task) MetaInfo() (MetaInfo, bool) {
	if t.metaInfo == nil {
		return MetaInfo{}, false
	}
	return *t.metaInfo, true
}

// IsWorthSaving reports whether a remote task carries anything worth
// creating a local note for.
func (t *Task) IsWorthSaving() bool {
	return t.metaInfo != nil ||
		strings.TrimSpace(t.name) != "" ||
		strings.TrimSpace(t.notes) != ""
}

func (t *Task) ApplyLocal(content NoteContent) error {
	if content.Note.Type != NoteTypeNote {
		return fmt.Errorf("%w: note type %d is not a task", ErrInvalidLocalContent, content.Note.Type)
	}
	text, ok := content.TextData()
	if !ok {
		return fmt.Errorf("%w: note %d has no text data", ErrInvalidLocalContent, content.Note.ID)
	}

	t.name = text.Content
	t.source = SourceLocal
	return nil
}

func (t *Task) LocalContent() (NoteContent, error) {
	if t.metaInfo == nil {
		// created on the remote side, nothing recorded locally yet
		if t.name == "" {
			return NoteContent{}, fmt.Errorf("%w: task %s has an empty name", ErrInvalidLocalContent, t.gid)
		}
		return NoteContent{
			Note: NoteInfo{Type: NoteTypeNote, Snippet: t.name},
			Data: []DataInfo{{MimeType: MimeTypeTextNote, Content: t.name}},
		}, nil
	}

	content := t.metaInfo.Content()
	content.Data = slices.Clone(content.Data)
	content.Note.Type = NoteTypeNote
	// the data trigger runs before the note row is written, the snippet
	// must already carry the text the data row gets
	content.Note.Snippet = t.name

	replaced := false
	for i := range content.Data {
		if content.Data[i].MimeType == MimeTypeTextNote || content.Data[i].MimeType == "" {
			content.Data[i].MimeType = MimeTypeTextNote
			content.Data[i].Content = t.name
			replaced = true
			break
		}
	}
	if !replaced {
		content.Data = append(content.Data, DataInfo{MimeType: MimeTypeTextNote, Content: t.name})
	}

	return content, nil
}

func (t *Task) ClassifyAction(row NoteRow) SyncAction {
	if t.metaInfo == nil {
		// the sentinel is missing, push the local copy to recreate it
		return SyncActionUpdateRemote
	}
	if t.metaInfo.Note.ID == 0 || t.metaInfo.Note.ID != row.ID {
		// the sentinel belongs to another row, trust the remote side
		return SyncActionUpdateLocal
	}

	if !row.LocalModified {
		if remoteChanged(row, t.lastModified) {
			return SyncActionUpdateLocal
		}
		return SyncActionNone
	}

	if row.GTaskID != t.gid {
		return SyncActionError
	}
	if remoteChanged(row, t.lastModified) {
		return SyncActionUpdateConflict
	}
	return SyncActionUpdateRemote
}
