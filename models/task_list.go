package models

import (
	"fmt"
	"slices"
	"strings"
)

// TaskList mirrors a local folder as a remote list. The metadata list holding
// all sentinels is a TaskList as well.
type TaskList struct {
	nodeBase
	index    int
	children []ListItem
}

// NewTaskList returns an empty list that has never been synchronised.
func NewTaskList() *TaskList {
	return &TaskList{}
}

// NewNamedTaskList returns an unsynchronised list with the given remote name.
func NewNamedTaskList(name string) *TaskList {
	return &TaskList{nodeBase: nodeBase{name: name, source: SourceLocal}}
}

func (l *TaskList) Index() int { return l.index }

func (l *TaskList) SetIndex(index int) { l.index = index }

func (l *TaskList) CreateAction(actionID int) (Action, error) {
	return Action{
		ActionID:   actionID,
		ActionType: ActionTypeCreate,
		Index:      l.index,
		EntityDelta: &EntityDelta{
			Name:       l.name,
			EntityType: EntityTypeGroup,
		},
	}, nil
}

func (l *TaskList) UpdateAction(actionID int) (Action, error) {
	if l.gid == "" {
		return Action{}, ErrNotCreatedRemotely
	}

	return Action{
		ActionID:   actionID,
		ActionType: ActionTypeUpdate,
		ID:         l.gid,
		EntityDelta: &EntityDelta{
			Name:    l.name,
			Deleted: l.deleted,
		},
	}, nil
}

func (l *TaskList) ApplyRemote(entity RemoteEntity) error {
	if entity.Type != "" && entity.Type != EntityTypeGroup {
		return fmt.Errorf("%w: list %s has type %s", ErrMalformedRemoteEntity, entity.ID, entity.Type)
	}
	return l.applyRemote(entity)
}

func (l *TaskList) ApplyLocal(content NoteContent) error {
	switch {
	case content.Note.Type == NoteTypeSystem && content.Note.ID == RootFolderID:
		l.name = RemoteName(FolderDefault)
	case content.Note.Type == NoteTypeSystem && content.Note.ID == CallRecordFolderID:
		l.name = RemoteName(FolderCallNote)
	case content.Note.Type == NoteTypeFolder && IsReservedFolderName(content.Note.Snippet):
		return fmt.Errorf("%w: folder %d uses the reserved name %q", ErrInvalidLocalContent, content.Note.ID, content.Note.Snippet)
	case content.Note.Type == NoteTypeFolder:
		l.name = RemoteName(content.Note.Snippet)
	default:
		return fmt.Errorf("%w: note %d is not a synchronised folder", ErrInvalidLocalContent, content.Note.ID)
	}

	l.source = SourceLocal
	return nil
}

func (l *TaskList) LocalContent() (NoteContent, error) {
	if !strings.HasPrefix(l.name, FolderPrefix) {
		return NoteContent{}, fmt.Errorf("%w: list %q is not owned by the application", ErrInvalidLocalContent, l.name)
	}

	switch folder := strings.TrimPrefix(l.name, FolderPrefix); folder {
	case FolderDefault:
		return NoteContent{Note: NoteInfo{ID: RootFolderID, Type: NoteTypeSystem}}, nil
	case FolderCallNote:
		return NoteContent{Note: NoteInfo{ID: CallRecordFolderID, Type: NoteTypeSystem}}, nil
	default:
		return NoteContent{Note: NoteInfo{Type: NoteTypeFolder, Snippet: folder}}, nil
	}
}

// ClassifyAction compares the list with its folder row. A folder changed on
// both sides is reported as a conflict like any task.
func (l *TaskList) ClassifyAction(row NoteRow) SyncAction {
	if !row.LocalModified {
		if remoteChanged(row, l.lastModified) {
			return SyncActionUpdateLocal
		}
		return SyncActionNone
	}

	if row.GTaskID != l.gid {
		return SyncActionError
	}
	if remoteChanged(row, l.lastModified) {
		return SyncActionUpdateConflict
	}
	return SyncActionUpdateRemote
}

// AddChild appends item to the list. It returns false when the item is
// already a child.
func (l *TaskList) AddChild(item ListItem) bool {
	return l.AddChildAt(item, len(l.children))
}

// AddChildAt inserts item at index.
func (l *TaskList) AddChildAt(item ListItem, index int) bool {
	if item == nil || index < 0 || index > len(l.children) || l.indexOf(item.core()) >= 0 {
		return false
	}

	l.children = slices.Insert(l.children, index, item)
	item.core().parent = l
	return true
}

// RemoveChild detaches item from the list.
func (l *TaskList) RemoveChild(item ListItem) bool {
	if item == nil {
		return false
	}
	i := l.indexOf(item.core())
	if i < 0 {
		return false
	}

	l.children = slices.Delete(l.children, i, i+1)
	item.core().parent = nil
	return true
}

// MoveChild moves an existing child to index.
func (l *TaskList) MoveChild(item ListItem, index int) bool {
	if item == nil || index < 0 || index >= len(l.children) {
		return false
	}
	i := l.indexOf(item.core())
	if i < 0 {
		return false
	}
	if i == index {
		return true
	}

	l.children = slices.Delete(l.children, i, i+1)
	l.children = slices.Insert(l.children, index, item)
	return true
}

// ChildIndex returns the position of item or -1.
func (l *TaskList) ChildIndex(item ListItem) int {
	if item == nil {
		return -1
	}
	return l.indexOf(item.core())
}

// ChildByGID finds a child by its remote identifier.
func (l *TaskList) ChildByGID(gid string) ListItem {
	for _, c := range l.children {
		if c.GID() == gid {
			return c
		}
	}
	return nil
}

// ChildByIndex returns the child at index or nil.
func (l *TaskList) ChildByIndex(index int) ListItem {
	if index < 0 || index >= len(l.children) {
		return nil
	}
	return l.children[index]
}

// PriorSibling returns the child placed right before item.
func (l *TaskList) PriorSibling(item ListItem) ListItem {
	if item == nil {
		return nil
	}
	return l.priorOf(item.core())
}

// Children returns a copy of the child slice.
func (l *TaskList) Children() []ListItem {
	return slices.Clone(l.children)
}

func (l *TaskList) ChildCount() int { return len(l.children) }

func (l *TaskList) indexOf(c *taskCore) int {
	return slices.IndexFunc(l.children, func(item ListItem) bool {
		return item.core() == c
	})
}

func (l *TaskList) priorOf(c *taskCore) ListItem {
	i := l.indexOf(c)
	if i <= 0 {
		return nil
	}
	return l.children[i-1]
}
