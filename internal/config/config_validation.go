// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every binary. Binary specific requirements are checked
// by the client and server views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.BatchSize < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	// an export only reads the local database
	if cfg.App.ExportFile != "" {
		return nil
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.BatchSize <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Account.Name == "" || cfg.Account.Secret == "" {
		return ErrInvalidAccountConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 || cfg.App.AuthSecret == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
