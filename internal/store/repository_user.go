package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/models"
)

// userRepository is the in-memory implementation of [UserRepository] used by
// the reference task service. Accounts live as long as the process.
type userRepository struct {
	mu      sync.RWMutex
	byLogin map[string]models.User
	nextID  int64
	logger  *logger.Logger
}

// NewUserRepository constructs an empty [UserRepository].
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		byLogin: make(map[string]models.User),
		nextID:  1,
		logger:  logger,
	}
}

// CreateUser registers a new account and returns it with UserID and
// CreatedAt filled in. A taken login yields [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[user.Login]; ok {
		log.Debug().Str("func", "*userRepository.CreateUser").Str("login", user.Login).Msg("login already exists")
		return models.User{}, ErrLoginAlreadyExists
	}

	user.UserID = r.nextID
	user.CreatedAt = time.Now().UTC()
	r.nextID++
	r.byLogin[user.Login] = user

	return user, nil
}

// FindUserByLogin returns the account registered under login or
// [ErrNoUserWasFound].
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byLogin[login]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}
