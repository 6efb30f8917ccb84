package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// taskTree is the task space of one account.
type taskTree struct {
	lists    []string
	entities map[string]models.RemoteEntity
	// tasks maps a list id to the ordered ids of its tasks
	tasks map[string][]string
}

func newTaskTree() *taskTree {
	return &taskTree{
		entities: make(map[string]models.RemoteEntity),
		tasks:    make(map[string][]string),
	}
}

// taskRepository is the in-memory [TaskRepository] of the reference task
// service.
type taskRepository struct {
	mu     sync.RWMutex
	trees  map[int64]*taskTree
	logger *logger.Logger
}

// NewTaskRepository constructs an empty [TaskRepository].
func NewTaskRepository(logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		trees:  make(map[int64]*taskTree),
		logger: logger,
	}
}

func (r *taskRepository) tree(userID int64) *taskTree {
	t, ok := r.trees[userID]
	if !ok {
		t = newTaskTree()
		r.trees[userID] = t
	}
	return t
}

func (r *taskRepository) Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trees[userID]
	if !ok {
		return []models.RemoteEntity{}, nil
	}

	lists := make([]models.RemoteEntity, 0, len(t.lists))
	for _, id := range t.lists {
		lists = append(lists, t.entities[id])
	}
	return lists, nil
}

func (r *taskRepository) Tasks(ctx context.Context, userID int64, listID string, includeDeleted bool) ([]models.RemoteEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trees[userID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	if list, ok := t.entities[listID]; !ok || list.Type != models.EntityTypeGroup {
		return nil, ErrTaskNotFound
	}

	ids := t.tasks[listID]
	tasks := make([]models.RemoteEntity, 0, len(ids))
	for i, id := range ids {
		task := t.entities[id]
		if task.Deleted && !includeDeleted {
			continue
		}
		task.PriorSiblingID = ""
		if i > 0 {
			task.PriorSiblingID = ids[i-1]
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *taskRepository) Get(ctx context.Context, userID int64, id string) (models.RemoteEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trees[userID]
	if !ok {
		return models.RemoteEntity{}, ErrTaskNotFound
	}
	entity, ok := t.entities[id]
	if !ok {
		return models.RemoteEntity{}, ErrTaskNotFound
	}
	return entity, nil
}

func (r *taskRepository) CreateList(ctx context.Context, userID int64, list models.RemoteEntity, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tree(userID)
	list.Type = models.EntityTypeGroup
	t.entities[list.ID] = list
	t.lists = slices.Insert(t.lists, clampIndex(index, len(t.lists)), list.ID)

	logger.FromContext(ctx).Debug().
		Str("func", "*taskRepository.CreateList").
		Int64("user_id", userID).
		Str("gid", list.ID).
		Msg("list created")
	return nil
}

func (r *taskRepository) CreateTask(ctx context.Context, userID int64, task models.RemoteEntity, priorSiblingID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.tree(userID)
	if list, ok := t.entities[task.ListID]; !ok || list.Type != models.EntityTypeGroup {
		return ErrTaskNotFound
	}

	task.Type = models.EntityTypeTask
	task.ParentID = task.ListID
	t.entities[task.ID] = task
	t.tasks[task.ListID] = insertAfter(t.tasks[task.ListID], task.ID, priorSiblingID, index)
	return nil
}

func (r *taskRepository) Update(ctx context.Context, userID int64, entity models.RemoteEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trees[userID]
	if !ok {
		return ErrTaskNotFound
	}
	current, ok := t.entities[entity.ID]
	if !ok {
		return ErrTaskNotFound
	}

	current.Name = entity.Name
	current.Notes = entity.Notes
	current.Deleted = entity.Deleted
	current.Completed = entity.Completed
	current.LastModified = entity.LastModified
	t.entities[entity.ID] = current
	return nil
}

func (r *taskRepository) Move(ctx context.Context, userID int64, id, destListID, priorSiblingID string, lastModified int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trees[userID]
	if !ok {
		return ErrTaskNotFound
	}
	task, ok := t.entities[id]
	if !ok || task.Type != models.EntityTypeTask {
		return ErrTaskNotFound
	}
	if dest, ok := t.entities[destListID]; !ok || dest.Type != models.EntityTypeGroup {
		return ErrTaskNotFound
	}

	src := t.tasks[task.ListID]
	if i := slices.Index(src, id); i >= 0 {
		t.tasks[task.ListID] = slices.Delete(src, i, i+1)
	}

	task.ListID = destListID
	task.ParentID = destListID
	task.LastModified = lastModified
	t.entities[id] = task
	t.tasks[destListID] = insertAfter(t.tasks[destListID], id, priorSiblingID, 0)
	return nil
}

// insertAfter places id right after prior, or at index when prior is not
// in ids.
func insertAfter(ids []string, id, prior string, index int) []string {
	if prior != "" {
		if i := slices.Index(ids, prior); i >= 0 {
			return slices.Insert(ids, i+1, id)
		}
	}
	return slices.Insert(ids, clampIndex(index, len(ids)), id)
}

func clampIndex(index, n int) int {
	return max(0, min(index, n))
}
