package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Devdeep8/let-s-do-it/internal/store"
	"github.com/Devdeep8/let-s-do-it/tests/testutil"
)

func TestGetMissingKey(t *testing.T) {
	s := testutil.NewTestStore(t)

	value, ok, err := s.Get(context.Background(), "birthdayTarget")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("expected key to be absent, got %q", value)
	}
}

func TestSetGetOverwrite(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "dsaProgress", `{"overallProgress":0}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "dsaProgress", `{"overallProgress":25}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, ok, err := s.Get(ctx, "dsaProgress")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if value != `{"overallProgress":25}` {
		t.Errorf("value = %q, want overwritten value", value)
	}
}

func TestRemove(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "dailyData_2026-10-16", "{}"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Remove(ctx, "dailyData_2026-10-16"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "dailyData_2026-10-16"); ok {
		t.Error("key still present after Remove")
	}

	// Removing again is a no-op.
	if err := s.Remove(ctx, "dailyData_2026-10-16"); err != nil {
		t.Errorf("Remove absent key: %v", err)
	}
}

func TestReopenKeepsValuesAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deva.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, "birthdayTarget", "2028-11-07T18:30:00Z"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Migrations must not re-run against an existing schema.
	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	value, ok, err := s.Get(ctx, "birthdayTarget")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if value != "2028-11-07T18:30:00Z" {
		t.Errorf("value = %q", value)
	}
}
