package backup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweeper_InvalidSchedule(t *testing.T) {
	s := &Sweeper{
		Guard:    NewGuard("fleet.db", t.TempDir()),
		Schedule: "not a schedule",
	}
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("want error for invalid schedule")
	}
}

func TestSweeper_SweepsOnStartupAndStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "backup_20240101_000000.db")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	s := &Sweeper{
		Guard:     NewGuard(filepath.Join(dir, "fleet.db"), dir),
		Schedule:  "@daily",
		Retention: 24 * time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The startup sweep should remove the stale backup promptly.
	deadline := time.After(2 * time.Second)
	for {
		if _, err := os.Stat(old); os.IsNotExist(err) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("startup sweep did not prune the stale backup")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
