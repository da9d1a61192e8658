package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRunFiresOnChange(t *testing.T) {
	dir := t.TempDir()
	s, err := NewService(dir)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	s.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go s.Run(ctx, func(context.Context) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	// Give the watch loop a moment to start before producing events.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "total.csv"), []byte("X,Y,Name\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("expected reload callback after file change")
	}
}

func TestNewServiceMissingRoot(t *testing.T) {
	// A missing root yields a service with nothing watched rather than a
	// hard failure at the WalkDir level; the inner error path logs only.
	dir := t.TempDir()
	sub := filepath.Join(dir, "gone")
	s, err := NewService(dir)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	defer s.fw.Close()
	if err := s.addTree(sub); err != nil {
		t.Errorf("addTree on missing dir should not error, got %v", err)
	}
}
