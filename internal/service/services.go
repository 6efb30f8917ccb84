package service

import (
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
)

type Services struct {
	AuthService    AuthService
	TaskService    TaskService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.ServerApp, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	taskService := NewTaskValidationService().Wrap(NewTaskService(storages.TaskRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg, logger),
		TaskService:    taskService,
		AppInfoService: appInfo,
	}, nil
}
