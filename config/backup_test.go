package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBackupsArchive(t *testing.T) {
	dir := t.TempDir()
	b, err := OpenBackups(filepath.Join(dir, "state", "backups.db"))
	if err != nil {
		t.Fatalf("OpenBackups: %v", err)
	}
	defer b.Close()

	tick := time.Unix(1700000000, 0)
	b.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	file := filepath.Join(dir, "hero.ini")

	t.Run("missing_file_is_noop", func(t *testing.T) {
		if err := b.Archive(file); err != nil {
			t.Fatalf("Archive: %v", err)
		}
		if _, ok, err := b.Latest(file); err != nil || ok {
			t.Fatalf("expected no backup, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("latest_wins", func(t *testing.T) {
		for _, content := range []string{"[A]\nx = 1\n", "[A]\nx = 2\n"} {
			if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := b.Archive(file); err != nil {
				t.Fatalf("Archive: %v", err)
			}
		}
		data, ok, err := b.Latest(file)
		if err != nil || !ok {
			t.Fatalf("Latest: ok=%v err=%v", ok, err)
		}
		if string(data) != "[A]\nx = 2\n" {
			t.Fatalf("unexpected latest content %q", data)
		}
		if n, err := b.Count(file); err != nil || n != 2 {
			t.Fatalf("expected 2 backups, got %d (%v)", n, err)
		}
	})
}
