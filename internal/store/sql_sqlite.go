package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

// busyTimeoutMillis is how long a statement waits on a locked database file
// before the driver reports SQLITE_BUSY.
const busyTimeoutMillis = 5000

// NewConnectSQLite opens the local notes database at cfg.DSN, creating the
// file and its directory on first start. The pool is capped at one
// connection: the batch applier assumes a single writer.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	path := cfg.DSN
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if err := ensureDBFile(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("prepare database file")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Str("path", path).Msg("ping database")
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("database opened")
	return &DB{
		DB:                 conn,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}, nil
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, busyTimeoutMillis)
}

func ensureDBFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat database file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create database file: %w", err)
	}
	return f.Close()
}
