package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Create(ctx, "alice@example.com", "Alice", "hash-value")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Error("created user should have a row id")
	}

	found, err := s.ByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("ByEmail: %v", err)
	}
	if found.ID != created.ID || found.Email != "alice@example.com" ||
		found.FullName != "Alice" || found.PasswordHash != "hash-value" {
		t.Errorf("ByEmail = %+v", found)
	}
}

func TestDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Create(ctx, "alice@example.com", "Alice", "h1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := s.Create(ctx, "alice@example.com", "Alice Again", "h2")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUnknownEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.ByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
