package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-notes-sync/internal/config"
	"github.com/MKhiriev/go-notes-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"/tmp/notes.db", "/tmp/notes.db?_busy_timeout=5000"},
		{"/tmp/notes.db?_journal_mode=WAL", "/tmp/notes.db?_journal_mode=WAL&_busy_timeout=5000"},
		{"/tmp/notes.db?_busy_timeout=100", "/tmp/notes.db?_busy_timeout=100"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestNewConnectSQLite_CreatesFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "notes.db")

	// Act
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: path}, logger.Nop())

	// Assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	require.NoError(t, db.Migrate())
}

func TestNewConnectSQLite_DirectoryInTheWay(t *testing.T) {
	// файл с тем же именем, что и нужный каталог
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: filepath.Join(blocker, "notes.db")}, logger.Nop())

	assert.Error(t, err)
}
