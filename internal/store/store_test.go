package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

// exercise runs the Store contract against any implementation.
func exercise(t *testing.T, s Store) {
	t.Helper()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get missing: ok=%v err=%v", ok, err)
	}

	if err := s.Put("k", "first"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok, err := s.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got != "first" {
		t.Errorf("expected 'first', got '%s'", got)
	}

	// Overwrite
	if err := s.Put("k", "second"); err != nil {
		t.Fatalf("Put overwrite failed: %v", err)
	}
	got, _, _ = s.Get("k")
	if got != "second" {
		t.Errorf("expected 'second', got '%s'", got)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("expected key to be gone after delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete of absent key should succeed, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	exercise(t, s)

	s.Close()
	if err := s.Put("k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fplot-test.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}
	exercise(t, s)

	if err := s.Put("persist", "world"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// Close and reopen to verify persistence
	s.Close()
	if _, _, err := s.Get("persist"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}

	s2, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s2.Close()

	got, ok, err := s2.Get("persist")
	if err != nil || !ok {
		t.Fatalf("Get after reopen failed: ok=%v err=%v", ok, err)
	}
	if got != "world" {
		t.Errorf("expected 'world' after reopen, got '%s'", got)
	}

	version, err := s2.metadata("schema_version")
	if err != nil {
		t.Fatalf("metadata failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected schema version %s, got %s", SchemaVersion, version)
	}
}

func TestSQLiteRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	db, err := sql.Open(driverName, path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);
		INSERT INTO metadata (key, value) VALUES ('schema_version', '99');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if s, err := NewSQLite(path); err == nil {
		s.Close()
		t.Fatal("expected error for unsupported schema version")
	}
}
