package store

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository keeps the accounts known to the task service.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// TaskRepository keeps the lists and tasks of every account of the task
// service. Entities are addressed by their gid.
type TaskRepository interface {
	// Lists returns the lists of a user in display order.
	Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error)
	// Tasks returns the tasks of one list in display order.
	Tasks(ctx context.Context, userID int64, listID string, includeDeleted bool) ([]models.RemoteEntity, error)
	Get(ctx context.Context, userID int64, id string) (models.RemoteEntity, error)
	// CreateList inserts a list at index.
	CreateList(ctx context.Context, userID int64, list models.RemoteEntity, index int) error
	// CreateTask inserts a task into its list right after priorSiblingID,
	// or at index when the sibling is unknown.
	CreateTask(ctx context.Context, userID int64, task models.RemoteEntity, priorSiblingID string, index int) error
	// Update replaces the mutable fields of an entity.
	Update(ctx context.Context, userID int64, entity models.RemoteEntity) error
	// Move detaches a task from its list and inserts it into destListID
	// after priorSiblingID.
	Move(ctx context.Context, userID int64, id, destListID, priorSiblingID string, lastModified int64) error
}
