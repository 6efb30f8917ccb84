package service

import (
	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
	Export      ClientExportService
}

func NewClientServices(storages *store.ClientStorages, gateway adapter.TaskGateway, account config.ClientAccount, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages, gateway, account, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc, logger),
		Export:      NewClientExportService(storages.Notes, storages.Data, logger),
	}
}
