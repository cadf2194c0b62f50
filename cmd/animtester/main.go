package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animtester/config"
	"github.com/milk9111/animtester/engine"
	"github.com/milk9111/animtester/settings"
	"github.com/milk9111/animtester/tester"
	"golang.design/x/clipboard"
)

func main() {
	settingsPath := flag.String("settings", settings.DefaultFile, "settings file (yaml)")
	object := flag.String("object", "", "config section of the object to edit")
	configFiles := flag.String("config", "", "comma-separated config files, resolved against the storages")
	storages := flag.String("storage", "", "comma-separated resource directories")
	restoreTarget := flag.Bool("restore-target", true, "restore the target animation after a reload")
	watch := flag.Bool("watch", true, "reload when config files change on disk")
	backupDB := flag.String("backup-db", "", "backup database written before every save (empty keeps the settings value)")
	zoom := flag.Float64("zoom", 0, "texture tooltip zoom")
	flag.Parse()

	s, err := settings.Load(*settingsPath)
	if err != nil {
		log.Fatalf("animtester: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "object":
			s.Object = *object
		case "config":
			s.Config = splitList(*configFiles)
		case "storage":
			s.Storages = splitList(*storages)
		case "restore-target":
			s.RestoreTarget = *restoreTarget
		case "watch":
			s.Watch = *watch
		case "backup-db":
			s.BackupDB = *backupDB
		case "zoom":
			if *zoom > 0 {
				s.TooltipZoom = *zoom
			}
		}
	})

	res, err := engine.Bootstrap(s.Storages...)
	if err != nil {
		log.Fatalf("animtester: bootstrap: %v", err)
	}

	var paths []string
	for _, name := range s.Config {
		p, err := res.Locate(name)
		if err != nil {
			log.Fatalf("animtester: %v", err)
		}
		paths = append(paths, p)
	}
	store, err := config.Load(paths...)
	if err != nil {
		log.Fatalf("animtester: %v", err)
	}

	world := engine.NewWorld(store)
	t, err := tester.New(world, tester.Options{ObjectName: s.Object, RestoreTarget: s.RestoreTarget})
	if err != nil {
		log.Fatalf("animtester: %v", err)
	}

	if s.BackupDB != "" {
		backups, err := config.OpenBackups(s.BackupDB)
		if err != nil {
			log.Fatalf("animtester: %v", err)
		}
		defer backups.Close()
		t.SetArchiver(backups)
	}

	game := NewGame(s, store, res, t, world)

	if s.Watch && len(paths) > 0 {
		w, err := config.NewWatcher(paths...)
		if err != nil {
			log.Printf("animtester: watch disabled: %v", err)
		} else {
			defer w.Close()
			game.watcher = w
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("animtester: clipboard disabled: %v", err)
	} else {
		game.clipboardOK = true
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Printf("animtester: %v", err)
	}
	world.Delete(t.Object())
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
