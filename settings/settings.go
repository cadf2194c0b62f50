package settings

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the settings file read from the working directory.
const DefaultFile = "animtester.yaml"

//go:embed animtester.yaml
var defaultSettings []byte

type Settings struct {
	Object        string   `yaml:"object"`
	Storages      []string `yaml:"storages"`
	Config        []string `yaml:"config"`
	Window        Window   `yaml:"window"`
	TooltipZoom   float64  `yaml:"tooltip_zoom"`
	RestoreTarget bool     `yaml:"restore_target"`
	Watch         bool     `yaml:"watch"`
	BackupDB      string   `yaml:"backup_db"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Defaults returns the built-in settings.
func Defaults() (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultSettings, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal defaults: %w", err)
	}
	return s, nil
}

// Load reads path over the defaults. Fields absent from the file keep their
// default value; a missing file yields the defaults.
func Load(path string) (Settings, error) {
	s, err := Defaults()
	if err != nil {
		return Settings{}, err
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

func (s *Settings) normalize() {
	if s.TooltipZoom <= 0 {
		s.TooltipZoom = 4
	}
	if s.Window.Width <= 0 {
		s.Window.Width = 1280
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 720
	}
}
