package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// NetAddress is a host:port flag value. An empty host listens on every
// interface.
type NetAddress struct {
	Host string
	Port int
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form host:port: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", rawPort)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("invalid host %q", host)
	}

	a.Host = host
	a.Port = port
	return nil
}

// parseFlags reads the command line of both binaries:
//
//	-a               task service listen address, host:port
//	-r               task service address the client syncs with
//	-d               path of the local notes database
//	-c, -config      JSON config file
//	-token-sign-key  session token signing key
//	-token-issuer    session token issuer
//	-token-duration  session token lifetime
//	-auth-secret     account secret accepted by the task service
//	-request-timeout timeout of a single request, inbound or outbound
//	-account         account name to sync
//	-secret          account secret
//	-sync-interval   period of the background sync, 0 for a single pass
//	-batch-size      queued updates flushed at once
//	-log-file        client log file
//	-export          write the local notes as text to a file and exit
func parseFlags(args []string) (*StructuredConfig, error) {
	cfg := new(StructuredConfig)
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)

	var listen NetAddress
	var requestTimeout time.Duration

	fs.Var(&listen, "a", "task service listen address host:port")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "r", "", "task service address")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "local notes database path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "session token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "session token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "session token lifetime, e.g. 1h")
	fs.StringVar(&cfg.App.AuthSecret, "auth-secret", "", "account secret accepted by the task service")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "request timeout, e.g. 30s")
	fs.StringVar(&cfg.Account.Name, "account", "", "account name")
	fs.StringVar(&cfg.Account.Secret, "secret", "", "account secret")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "sync period, 0 for a single pass")
	fs.IntVar(&cfg.Adapter.BatchSize, "batch-size", 0, "queued updates flushed at once")
	fs.StringVar(&cfg.App.LogFile, "log-file", "", "client log file path")
	fs.StringVar(&cfg.App.ExportFile, "export", "", "export the local notes as text to this file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Server.HTTPAddress = listen.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.RequestTimeout = requestTimeout

	return cfg, nil
}
