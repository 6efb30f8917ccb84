package http

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/models"
)

// ── service fakes ──

type mockAuthService struct {
	loginFn       func(ctx context.Context, account models.Account) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Login(ctx context.Context, account models.Account) (models.User, error) {
	return m.loginFn(ctx, account)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

type mockTaskService struct {
	mu sync.Mutex

	listsFn func(ctx context.Context, userID int64) ([]models.RemoteEntity, error)
	batchFn func(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error)

	batchCalls int
	lastUserID int64
}

func (m *mockTaskService) Lists(ctx context.Context, userID int64) ([]models.RemoteEntity, error) {
	m.mu.Lock()
	m.lastUserID = userID
	m.mu.Unlock()
	return m.listsFn(ctx, userID)
}

func (m *mockTaskService) ExecuteBatch(ctx context.Context, userID int64, req models.BatchRequest) (models.BatchResponse, error) {
	m.mu.Lock()
	m.batchCalls++
	m.lastUserID = userID
	m.mu.Unlock()
	return m.batchFn(ctx, userID, req)
}

type mockAppInfoService struct {
	version       string
	clientVersion int64
}

func (m *mockAppInfoService) GetAppVersion(ctx context.Context) string { return m.version }

func (m *mockAppInfoService) ClientVersion(ctx context.Context) int64 { return m.clientVersion }

// ── helpers ──

const testToken = "valid-token"

// acceptingAuth accepts testToken for user 7 and rejects anything else.
func acceptingAuth() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(ctx context.Context, tokenString string) (models.Token, error) {
			if tokenString != testToken {
				return models.Token{}, service.ErrTokenIsExpiredOrInvalid
			}
			return models.Token{UserID: 7}, nil
		},
	}
}

func newTestHandler(auth service.AuthService, tasks service.TaskService) *Handler {
	return NewHandler(&service.Services{
		AuthService:    auth,
		TaskService:    tasks,
		AppInfoService: &mockAppInfoService{version: "v1.2.3", clientVersion: 1},
	}, logger.Nop())
}
