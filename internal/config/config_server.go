package config

import (
	"fmt"
	"time"
)

// ServerApp holds the task service settings related to sessions.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	AuthSecret    string
	Version       string
}

// ServerConfig is the task service view of [StructuredConfig].
type ServerConfig struct {
	App    ServerApp
	Server Server
}

// GetServerConfig builds and validates the task service configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)

	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			AuthSecret:    cfg.App.AuthSecret,
			Version:       cfg.App.Version,
		},
		Server: cfg.Server,
	}
}
