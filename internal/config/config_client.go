package config

import (
	"fmt"
	"time"
)

// DefaultBatchSize is the number of queued update actions flushed at once
// when no batch size is configured.
const DefaultBatchSize = 10

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Version is reported by the client in its build banner.
	Version string
	// LogFile is the path of the rotated client log file.
	LogFile string
	// ExportFile, when set, turns the run into a text export of the local
	// notes. No account or task service is needed then.
	ExportFile string
}

// ClientAccount holds the remote account credentials.
type ClientAccount struct {
	Name   string
	Secret string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the task service endpoint used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// BatchSize is the flush threshold of queued update actions.
	BatchSize int
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync worker runs. Zero means a
	// single pass.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Account contains the remote account credentials.
	Account ClientAccount
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	batchSize := cfg.Adapter.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}

	return &ClientConfig{
		App: ClientApp{
			Version:    cfg.App.Version,
			LogFile:    cfg.App.LogFile,
			ExportFile: cfg.App.ExportFile,
		},
		Account: ClientAccount{
			Name:   cfg.Account.Name,
			Secret: cfg.Account.Secret,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			BatchSize:      batchSize,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}
