package store

import (
	"context"

	"github.com/MKhiriev/go-notes-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// NoteRepository is the typed access to the local note table.
type NoteRepository interface {
	// Query returns the rows matching filter ordered by id.
	Query(ctx context.Context, filter NoteFilter) ([]models.NoteRow, error)
	// Get returns a single row or [ErrNoteNotFound].
	Get(ctx context.Context, id int64) (models.NoteRow, error)
	// Insert creates a row and returns its id.
	Insert(ctx context.Context, fields Fields) (int64, error)
	// Update writes fields and increments the note version. When
	// expectedVersion is not nil the update only applies to a row still
	// carrying that version. It returns the number of affected rows.
	Update(ctx context.Context, id int64, fields Fields, expectedVersion *int64) (int64, error)
	// Delete removes rows by id together with their data rows.
	Delete(ctx context.Context, ids ...int64) (int64, error)
	// ClearSyncMarks forgets every gid and marks all rows as locally
	// modified so that the next pass pushes them to a fresh account.
	ClearSyncMarks(ctx context.Context) error
}

// DataRepository is the typed access to the local data table.
type DataRepository interface {
	Query(ctx context.Context, filter DataFilter) ([]models.DataRow, error)
	Insert(ctx context.Context, noteID int64, fields Fields) (int64, error)
	// Update writes fields of one data row. When noteVersion is not nil the
	// update only applies while the owning note still has that version.
	Update(ctx context.Context, id int64, fields Fields, noteVersion *int64) (int64, error)
	Delete(ctx context.Context, ids ...int64) (int64, error)
}

// SyncStateRepository keeps the scalars that survive between sync passes.
type SyncStateRepository interface {
	// LastSyncTime returns the time of the last successful pass in
	// milliseconds, or zero when no pass ever succeeded.
	LastSyncTime(ctx context.Context) (int64, error)
	SetLastSyncTime(ctx context.Context, millis int64) error
	// SyncAccount returns the account the local rows were last synced with.
	SyncAccount(ctx context.Context) (string, error)
	SetSyncAccount(ctx context.Context, name string) error
}

// BatchApplier applies several writes atomically.
type BatchApplier interface {
	BatchApply(ctx context.Context, ops []Operation) ([]OperationResult, error)
}
