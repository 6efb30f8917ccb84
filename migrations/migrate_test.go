// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // не используем напрямую, goose сам будет ходить в DB

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_SQLiteSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	// системные папки создаются миграцией
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM note WHERE type = 2`).Scan(&count); err != nil {
		t.Fatalf("failed to count system folders: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 system folders, got %d", count)
	}

	// повторный запуск не должен падать
	if err := Migrate(db); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}

func TestMigrate_SnippetFollowsTextData(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	res, err := db.Exec(`INSERT INTO note (parent_id, type) VALUES (0, 0)`)
	if err != nil {
		t.Fatalf("insert note: %v", err)
	}
	noteID, _ := res.LastInsertId()

	if _, err := db.Exec(`INSERT INTO data (mime_type, note_id, content) VALUES (?, ?, ?)`,
		"vnd.android.cursor.item/text_note", noteID, "buy milk"); err != nil {
		t.Fatalf("insert data: %v", err)
	}

	var snippet string
	if err := db.QueryRow(`SELECT snippet FROM note WHERE _id = ?`, noteID).Scan(&snippet); err != nil {
		t.Fatalf("select snippet: %v", err)
	}
	if snippet != "buy milk" {
		t.Errorf("expected snippet %q, got %q", "buy milk", snippet)
	}

	// удаление заметки каскадно удаляет её данные
	if _, err := db.Exec(`DELETE FROM note WHERE _id = ?`, noteID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	var dataCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM data WHERE note_id = ?`, noteID).Scan(&dataCount); err != nil {
		t.Fatalf("count data: %v", err)
	}
	if dataCount != 0 {
		t.Errorf("expected data rows to be deleted, got %d", dataCount)
	}
}
