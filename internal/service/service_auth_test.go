// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/mock"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testServerApp() config.ServerApp {
	return config.ServerApp{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "notes-sync",
		TokenDuration: time.Hour,
		AuthSecret:    "shared-secret",
		Version:       "1.0.0",
	}
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)
	return NewAuthService(repo, testServerApp(), logger.Nop()), repo
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_ExistingUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	existing := models.User{UserID: 7, Login: "alice"}
	repo.EXPECT().FindUserByLogin(ctx, "alice").Return(existing, nil)

	user, err := svc.Login(ctx, models.Account{Name: "alice", Secret: "shared-secret"})
	require.NoError(t, err)
	assert.Equal(t, existing, user)
}

func TestAuthService_Login_RegistersNewUser(t *testing.T) {
	svc, repo := newTestAuthService(t)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByLogin(ctx, "bob").Return(models.User{}, store.ErrNoUserWasFound),
		repo.EXPECT().CreateUser(ctx, models.User{Login: "bob"}).Return(models.User{UserID: 2, Login: "bob"}, nil),
	)

	user, err := svc.Login(ctx, models.Account{Name: "bob", Secret: "shared-secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.UserID)
}

func TestAuthService_Login_Errors(t *testing.T) {
	tests := []struct {
		name    string
		account models.Account
		setup   func(repo *mock.MockUserRepository)
		wantErr error
	}{
		{
			name:    "empty name",
			account: models.Account{Secret: "shared-secret"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "empty secret",
			account: models.Account{Name: "alice"},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "wrong secret",
			account: models.Account{Name: "alice", Secret: "guess"},
			wantErr: ErrWrongSecret,
		},
		{
			name:    "lookup failure",
			account: models.Account{Name: "alice", Secret: "shared-secret"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, errBoom)
			},
			wantErr: errBoom,
		},
		{
			name:    "registration failure",
			account: models.Account{Name: "alice", Secret: "shared-secret"},
			setup: func(repo *mock.MockUserRepository) {
				repo.EXPECT().FindUserByLogin(gomock.Any(), "alice").Return(models.User{}, store.ErrNoUserWasFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, errBoom)
			},
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthService(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			_, err := svc.Login(context.Background(), tt.account)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

var errBoom = errors.New("boom")

// ── Tokens ───────────────────────────────────────────────────────────────────

func TestAuthService_CreateAndParseToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42, Login: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)

	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)

	// токен, подписанный другим ключом
	other := NewAuthService(nil, config.ServerApp{
		TokenSignKey:  "other-key",
		TokenIssuer:   "notes-sync",
		TokenDuration: time.Hour,
	}, logger.Nop())
	foreign, err := other.CreateToken(context.Background(), models.User{UserID: 1})
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), foreign.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_CreateToken_MisconfiguredService(t *testing.T) {
	svc := NewAuthService(nil, config.ServerApp{}, logger.Nop())

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 1})
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}
