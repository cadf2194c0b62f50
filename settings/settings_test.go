package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	s, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	if s.Object != "Character" || !s.RestoreTarget || !s.Watch {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if !reflect.DeepEqual(s.Storages, []string{"data/config"}) {
		t.Fatalf("unexpected storages %v", s.Storages)
	}
	if s.TooltipZoom != 4 {
		t.Fatalf("unexpected tooltip zoom %v", s.TooltipZoom)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing_file", func(t *testing.T) {
		s, err := Load(filepath.Join(dir, "nope.yaml"))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if s.Object != "Character" {
			t.Fatalf("expected defaults, got %+v", s)
		}
	})

	t.Run("override", func(t *testing.T) {
		path := filepath.Join(dir, DefaultFile)
		content := "object: Soldier\nstorages: [assets]\nrestore_target: false\ntooltip_zoom: 0\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		s, err := Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if s.Object != "Soldier" || s.RestoreTarget {
			t.Fatalf("overrides not applied: %+v", s)
		}
		if !reflect.DeepEqual(s.Storages, []string{"assets"}) {
			t.Fatalf("unexpected storages %v", s.Storages)
		}
		if !reflect.DeepEqual(s.Config, []string{"animtester.ini"}) {
			t.Fatalf("absent fields should keep defaults, got %v", s.Config)
		}
		if s.TooltipZoom != 4 || s.Window.Width != 1280 {
			t.Fatalf("invalid values should normalize, got %+v", s)
		}
	})

	t.Run("bad_yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("object: [\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}
