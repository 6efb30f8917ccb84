package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
)

// ClientStorages groups all client-side repositories of the local notes
// store into a single value that can be passed around the service layer.
type ClientStorages struct {
	// Notes is the typed access to the note table.
	Notes NoteRepository
	// Data is the typed access to the data table.
	Data DataRepository
	// SyncState keeps the last sync time and the synced account.
	SyncState SyncStateRepository
	// Batch applies paired note and data writes atomically.
	Batch BatchApplier
	// Notifier publishes committed writes per collection.
	Notifier *ChangeNotifier

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires every repository to the same connection and change notifier.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires the repositories to an already opened and
// migrated database.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	notifier := NewChangeNotifier()

	return &ClientStorages{
		Notes:     NewNoteRepository(db, notifier, logger),
		Data:      NewDataRepository(db, notifier, logger),
		SyncState: NewSyncStateRepository(db, logger),
		Batch:     NewBatchApplier(db, notifier, logger),
		Notifier:  notifier,
		db:        db,
	}
}

// NoteStores returns the repositories used by [SQLNote].
func (s *ClientStorages) NoteStores() NoteStores {
	return NoteStores{Notes: s.Notes, Data: s.Data, Batch: s.Batch}
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
