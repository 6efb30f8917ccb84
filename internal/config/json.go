package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration accepts "30s"-style strings or integer nanoseconds in the file.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var ns int64
	if err := json.Unmarshal(b, &ns); err != nil {
		return fmt.Errorf("duration must be a string or integer nanoseconds: %s", b)
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

type fileApp struct {
	TokenSignKey  string   `json:"token_sign_key"`
	TokenIssuer   string   `json:"token_issuer"`
	TokenDuration Duration `json:"token_duration"`
	AuthSecret    string   `json:"auth_secret"`
	Version       string   `json:"version"`
	LogFile       string   `json:"log_file"`
	ExportFile    string   `json:"export_file"`
}

type fileAccount struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

type fileEndpoint struct {
	HTTPAddress    string   `json:"http_address"`
	RequestTimeout Duration `json:"request_timeout"`
	BatchSize      int      `json:"batch_size,omitempty"`
}

// fileConfig is the layout of the JSON config file.
type fileConfig struct {
	App     fileApp      `json:"app"`
	Account fileAccount  `json:"account"`
	Server  fileEndpoint `json:"server"`
	Adapter fileEndpoint `json:"adapter"`
	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
	} `json:"storage"`
	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers"`
}

func (f fileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  f.App.TokenSignKey,
			TokenIssuer:   f.App.TokenIssuer,
			TokenDuration: time.Duration(f.App.TokenDuration),
			AuthSecret:    f.App.AuthSecret,
			Version:       f.App.Version,
			LogFile:       f.App.LogFile,
			ExportFile:    f.App.ExportFile,
		},
		Account: Account(f.Account),
		Storage: Storage{DB: DB{DSN: f.Storage.DB.DSN}},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
			BatchSize:      f.Adapter.BatchSize,
		},
		Workers: Workers{SyncInterval: time.Duration(f.Workers.SyncInterval)},
	}
}

// parseJSON reads the config file. Unknown keys are rejected so that a typo
// does not silently fall back to a default.
func parseJSON(path string) (*StructuredConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()

	var fc fileConfig
	if err = dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	return fc.structured(), nil
}
