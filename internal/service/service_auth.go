package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

// authService accepts any account name presented with the shared secret of
// the service. Unknown names are registered on their first login.
type authService struct {
	userRepository store.UserRepository

	authSecret    string
	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(userRepository store.UserRepository, cfg config.ServerApp, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		authSecret:     cfg.AuthSecret,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login returns the user behind account, registering it when the name is
// new. An empty name or secret gives ErrInvalidDataProvided, a secret other
// than the service one gives ErrWrongSecret.
func (a *authService) Login(ctx context.Context, account models.Account) (models.User, error) {
	log := logger.FromContext(ctx)

	if account.Name == "" || account.Secret == "" {
		log.Warn().Str("user", account.Name).Msg("login without name or secret")
		return models.User{}, ErrInvalidDataProvided
	}

	if subtle.ConstantTimeCompare([]byte(account.Secret), []byte(a.authSecret)) != 1 {
		log.Warn().Str("user", account.Name).Msg("login with wrong secret")
		return models.User{}, ErrWrongSecret
	}

	user, err := a.userRepository.FindUserByLogin(ctx, account.Name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("user", account.Name).Msg("find user failed")
		return models.User{}, fmt.Errorf("find user %q: %w", account.Name, err)
	}

	user, err = a.userRepository.CreateUser(ctx, models.User{Login: account.Name})
	if err != nil {
		log.Err(err).Str("user", account.Name).Msg("register user failed")
		return models.User{}, fmt.Errorf("register user %q: %w", account.Name, err)
	}

	log.Info().Int64("user_id", user.UserID).Str("user", user.Login).Msg("registered new account")
	return user, nil
}

// CreateToken issues the session token returned in the login response.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken reports every rejected token as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
