package main

import (
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/handler"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/server"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/utils"
	"github.com/MKhiriev/go-notes-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(buildInfo)

	log := logger.NewLogger("notes-task-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	// batch hashes are keyed with the account secret
	utils.InitHasherPool(cfg.App.AuthSecret)

	storages := store.NewStorages(log)

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}
