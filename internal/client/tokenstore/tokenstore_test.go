package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token.txt"))

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "" {
		t.Errorf("got %q, want empty", token)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.txt")
	s := NewFileStore(path)

	if err := s.Save("tok-1"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("got %q, want tok-1", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("got perm %o, want 600", perm)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token.txt"))

	if err := s.Save("old"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := s.Save("new"); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "new" {
		t.Errorf("got %q, want new", token)
	}
}

func TestClear(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "token.txt"))

	if err := s.Save("tok"); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	token, err := s.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if token != "" {
		t.Errorf("got %q, want empty after clear", token)
	}

	// Clearing again is a no-op.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear error: %v", err)
	}
}
