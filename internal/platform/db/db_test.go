package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDayLockKeyStable(t *testing.T) {
	id := uuid.MustParse("3f1b6f2a-9c4d-4a1e-8f0f-2d7c6b5a4e3d")
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	k1 := DayLockKey(id, day)
	k2 := DayLockKey(id, day)
	if k1 != k2 {
		t.Errorf("same inputs produced different keys: %d vs %d", k1, k2)
	}

	// time-of-day must not change the key
	k3 := DayLockKey(id, time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC))
	if k1 != k3 {
		t.Errorf("key depends on time-of-day: %d vs %d", k1, k3)
	}
}

func TestDayLockKeyDiscriminates(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	a := DayLockKey(uuid.New(), day)
	b := DayLockKey(uuid.New(), day)
	if a == b {
		t.Error("different resources collided (vanishingly unlikely with fnv64)")
	}

	id := uuid.New()
	if DayLockKey(id, day) == DayLockKey(id, day.AddDate(0, 0, 1)) {
		t.Error("different days collided for the same resource")
	}
}

func TestAcquireDayLocksRequiresTx(t *testing.T) {
	if err := AcquireDayLocks(context.Background(), 1, 2); err == nil {
		t.Error("expected error outside a transaction")
	}
}

func TestLoadMigrationsOrdering(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"010_later.sql":  "SELECT 10;",
		"001_first.sql":  "SELECT 1;",
		"002_second.sql": "SELECT 2;",
		"notes.txt":      "ignored",
		"README.sql":     "no numeric prefix, ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := NewMigrator(nil, dir)
	migrations, err := m.LoadMigrations()
	if err != nil {
		t.Fatalf("LoadMigrations: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("got %d migrations, want 3", len(migrations))
	}
	wantVersions := []int{1, 2, 10}
	for i, mig := range migrations {
		if mig.Version != wantVersions[i] {
			t.Errorf("migration %d version = %d, want %d", i, mig.Version, wantVersions[i])
		}
	}
}

func TestLoadMigrationsMissingDir(t *testing.T) {
	m := NewMigrator(nil, filepath.Join(t.TempDir(), "nope"))
	if _, err := m.LoadMigrations(); err == nil {
		t.Error("expected error for missing directory")
	}
}
