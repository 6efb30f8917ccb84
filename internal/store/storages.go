package store

import "github.com/MKhiriev/go-notes-sync/internal/logger"

// Storages aggregates the repositories of the reference task service.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
}

// NewStorages builds the in-memory repositories of the task service.
func NewStorages(logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(logger),
		TaskRepository: NewTaskRepository(logger),
	}
}
