package service

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

// TaskService executes the remote task-list contract for one account.
type TaskService interface {
	// Lists returns the lists of userID in display order.
	Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error)

	// ExecuteBatch applies the actions in order and answers one result per
	// action. An action that cannot be applied carries an error in its
	// result and does not stop the rest of the batch.
	ExecuteBatch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error)
}

type AuthService interface {
	// Login checks the account secret and returns the user, registering it
	// on first sight.
	Login(ctx context.Context, account models.Account) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	// ClientVersion is the protocol revision handed to clients on login.
	ClientVersion(ctx context.Context) int64
}

// TaskServiceWrapper defines middleware composition for TaskService.
// Implementations wrap an existing TaskService to add behavior such as
// validation.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService // returns a decorated TaskService applying additional behavior
}
