package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsConfigFile(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"data/config/animtester.ini", true},
		{"HERO.INI", true},
		{"hero.png", false},
		{"animtester.ini~", false},
	}
	for _, c := range cases {
		if got := isConfigFile(c.path); got != c.want {
			t.Fatalf("isConfigFile(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestWatcherReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.ini")
	if err := os.WriteFile(path, []byte("[Hero]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "hero.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("[Hero]\nPrefix = Hero\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if name, ok := w.Poll(); ok {
			if filepath.Base(name) != "hero.ini" {
				t.Fatalf("unexpected event for %s", name)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no event for %s", path)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "a.ini"))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
