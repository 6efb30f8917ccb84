// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the task service. It aggregates all sub-configurations and
// is populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters, the
	// application version and the client log file.
	App App `envPrefix:"APP_"`

	// Account holds the credentials the client authenticates with against
	// the task service.
	Account Account `envPrefix:"ACCOUNT_"`

	// Storage holds configuration of the local notes database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings of the task service.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote task service endpoint used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the periodic sync worker.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify session tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued session token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a session token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AuthSecret is the shared secret accounts authenticate with on the
	// task service.
	// Env: APP_AUTH_SECRET
	AuthSecret string `env:"AUTH_SECRET"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the path of the rotated client log file. When empty the
	// file is created next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// ExportFile switches the client to a text export of the local notes
	// into this file instead of syncing.
	// Env: APP_EXPORT_FILE
	ExportFile string `env:"EXPORT_FILE"`
}

// Account holds the credentials of the synchronised remote account.
type Account struct {
	// Name is the account name sent on login.
	// Env: ACCOUNT_NAME
	Name string `env:"NAME"`

	// Secret is the credential sent on login.
	// Env: ACCOUNT_SECRET
	Secret string `env:"SECRET"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the path of the SQLite database file.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the client side view of the remote task service.
type Adapter struct {
	// HTTPAddress is the base address of the task service, with or without
	// a scheme (e.g. "localhost:8080", "https://tasks.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BatchSize is the number of queued update actions after which the
	// gateway flushes them to the server.
	// Env: ADAPTER_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync. Zero runs a
	// single pass and exits.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads the configuration of the running binary from
// the environment, the command line and the optional JSON file, in that
// order of precedence.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(os.Args[1:])
}
