package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-notes-sync/internal/adapter"
	"github.com/MKhiriev/go-notes-sync/internal/client"
	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/MKhiriev/go-notes-sync/internal/service"
	"github.com/MKhiriev/go-notes-sync/internal/store"
	"github.com/MKhiriev/go-notes-sync/internal/workers"
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

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("notes-sync-client", cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	if cfg.App.ExportFile != "" {
		exporter := service.NewClientExportService(storages.Notes, storages.Data, log)
		if err = client.Export(ctx, exporter, cfg.App.ExportFile, os.Stdout, log); err != nil {
			log.Error().Err(err).Msg("export failed")
			fmt.Fprintln(os.Stderr, err)
			storages.Close()
			os.Exit(1)
		}
		return
	}

	gateway, err := adapter.NewHTTPTaskGateway(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create task gateway")
	}

	services := service.NewClientServices(storages, gateway, cfg.Account, log)
	app := client.NewApp(services, workers.NewWorkers(services, cfg.Workers, log), os.Stdout, log)

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, err)
		storages.Close()
		os.Exit(1)
	}
}
