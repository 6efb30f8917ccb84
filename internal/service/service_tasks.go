package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// taskService is the engine of the reference task service. It generates
// gids and stamps last_modified on every write.
type taskService struct {
	taskRepository store.TaskRepository
	gids           *utils.GIDGenerator

	// stamps are strictly increasing so that a client recording a stamp as
	// its sync id never misses a later write in the same millisecond
	stampMu   sync.Mutex
	lastStamp int64
	now       func() time.Time

	logger *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		gids:           utils.NewGIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// Lists hides deleted lists, they only remain addressable by id.
func (s *taskService) Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error) {
	lists, err := s.taskRepository.Lists(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := lists[:0]
	for _, l := range lists {
		if !l.Deleted {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

func (s *taskService) ExecuteBatch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	resp := models.BatchResponse{Results: make([]models.ActionResult, 0, len(req.Actions))}
	for _, action := range req.Actions {
		result := models.ActionResult{ActionID: action.ActionID}

		newID, tasks, err := s.apply(ctx, userID, action)
		switch {
		case err == nil:
			result.NewID = newID
			resp.Tasks = append(resp.Tasks, tasks...)
		case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, ErrUnsupportedAction):
			log.Warn().
				Err(err).
				Int64("user_id", userID).
				Int("action_id", action.ActionID).
				Str("action_type", string(action.ActionType)).
				Msg("action rejected")
			result.Error = err.Error()
		default:
			return models.BatchResponse{}, fmt.Errorf("apply action %d: %w", action.ActionID, err)
		}

		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

func (s *taskService) apply(ctx context.Context, userID int64, action models.Action) (string, []models.RemoteEntity, error) {
	switch action.ActionType {
	case models.ActionTypeCreate:
		id, err := s.create(ctx, userID, action)
		return id, nil, err

	case models.ActionTypeUpdate:
		return "", nil, s.update(ctx, userID, action)

	case models.ActionTypeMove:
		dest := action.DestList
		if dest == "" {
			dest = action.SourceList
		}
		return "", nil, s.taskRepository.Move(ctx, userID, action.ID, dest, action.PriorSiblingID, s.stamp())

	case models.ActionTypeGetAll:
		tasks, err := s.taskRepository.Tasks(ctx, userID, action.ListID, action.GetDeleted)
		return "", tasks, err

	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedAction, action.ActionType)
	}
}

func (s *taskService) create(ctx context.Context, userID int64, action models.Action) (string, error) {
	delta := action.EntityDelta
	entity := models.RemoteEntity{
		ID:           s.gids.Generate(),
		Name:         delta.Name,
		Notes:        delta.Notes,
		Type:         delta.EntityType,
		LastModified: s.stamp(),
	}

	switch delta.EntityType {
	case models.EntityTypeGroup:
		if err := s.taskRepository.CreateList(ctx, userID, entity, action.Index); err != nil {
			return "", err
		}
	case models.EntityTypeTask:
		entity.ListID = action.ListID
		if err := s.taskRepository.CreateTask(ctx, userID, entity, action.PriorSiblingID, action.Index); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: create %q", ErrUnsupportedAction, delta.EntityType)
	}

	return entity.ID, nil
}

func (s *taskService) update(ctx context.Context, userID int64, action models.Action) error {
	entity, err := s.taskRepository.Get(ctx, userID, action.ID)
	if err != nil {
		return err
	}

	entity.Name = action.EntityDelta.Name
	entity.Notes = action.EntityDelta.Notes
	entity.Deleted = action.EntityDelta.Deleted
	entity.LastModified = s.stamp()

	return s.taskRepository.Update(ctx, userID, entity)
}

func (s *taskService) stamp() int64 {
	s.stampMu.Lock()
	defer s.stampMu.Unlock()

	now := s.now().UnixMilli()
	if now <= s.lastStamp {
		now = s.lastStamp + 1
	}
	s.lastStamp = now
	return now
}
