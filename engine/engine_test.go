package engine

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/milk9111/animtester/config"
)

const heroConfig = `
[Character]
AnimationSet = Hero
Scale = 2

[Hero]
Texture = hero.png
FrameSize = (32, 32)
Prefix = Hero
StartAnim = Idle
Idle = 4
Run = 6
Idle-> = Idle # Run
Run-> = Run # .Idle

[HeroIdle]
KeyDuration = 0.1
TextureOrigin = (0, 0)

[HeroRun@HeroIdle]
TextureOrigin = (0, 32)

[Prop]
Scale = 1
`

const chainConfig = `
[Chain]
StartAnim = A
A = 1
B = 1
C = 1
D = 1
A-> = B # D
B-> = C
D-> = C
`

func loadStore(t *testing.T, content string) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ini")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLoadAnimSet(t *testing.T) {
	s := loadStore(t, heroConfig)
	set, err := LoadAnimSet(s, "Hero")
	if err != nil {
		t.Fatalf("LoadAnimSet: %v", err)
	}

	if got := set.Names(); !reflect.DeepEqual(got, []string{"Idle", "Run"}) {
		t.Fatalf("unexpected names %v", got)
	}
	if set.Start != "Idle" {
		t.Fatalf("expected start Idle, got %q", set.Start)
	}

	run, ok := set.Anim("Run")
	if !ok {
		t.Fatalf("Run missing")
	}
	if run.Frames != 6 || run.Section != "HeroRun" {
		t.Fatalf("unexpected Run: %+v", run)
	}
	if !near(run.KeyDuration, 0.1) {
		t.Fatalf("expected inherited key duration, got %v", run.KeyDuration)
	}
	if run.Origin != (config.Vector{X: 0, Y: 32}) {
		t.Fatalf("unexpected origin %v", run.Origin)
	}

	links := set.Links("Run")
	want := []Link{{To: "Run"}, {To: "Idle", Immediate: true}}
	if !reflect.DeepEqual(links, want) {
		t.Fatalf("expected %v, got %v", want, links)
	}

	if _, err := LoadAnimSet(s, "Missing"); !errors.Is(err, config.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if _, err := LoadAnimSet(s, ""); !errors.Is(err, ErrNoAnimSet) {
		t.Fatalf("expected ErrNoAnimSet, got %v", err)
	}
}

func TestAnimSetNextHop(t *testing.T) {
	set, err := LoadAnimSet(loadStore(t, chainConfig), "Chain")
	if err != nil {
		t.Fatalf("LoadAnimSet: %v", err)
	}

	cases := []struct {
		from, to string
		want     string
		ok       bool
	}{
		{"A", "B", "B", true},
		{"A", "C", "B", true},
		{"A", "D", "D", true},
		{"B", "A", "", false},
		{"C", "C", "C", true},
		{"A", "Nope", "", false},
	}
	for _, c := range cases {
		t.Run(c.from+"_"+c.to, func(t *testing.T) {
			got, ok := set.NextHop(c.from, c.to)
			if got != c.want || ok != c.ok {
				t.Fatalf("NextHop(%s, %s) = %q, %v; want %q, %v", c.from, c.to, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestAnimFrames(t *testing.T) {
	a := &Anim{Frames: 4, KeyDuration: 0.1, FrameSize: config.Vector{X: 32, Y: 32}}

	if !near(a.Duration(), 0.4) {
		t.Fatalf("unexpected duration %v", a.Duration())
	}
	for _, c := range []struct {
		t    float64
		want int
	}{{0, 0}, {0.15, 1}, {0.39, 3}, {5, 3}} {
		if got := a.FrameAt(c.t); got != c.want {
			t.Fatalf("FrameAt(%v) = %d, want %d", c.t, got, c.want)
		}
	}

	if got := a.FrameRect(2, 64); got != image.Rect(0, 32, 32, 64) {
		t.Fatalf("expected frame to wrap to the next row, got %v", got)
	}
	a.Origin = config.Vector{X: 16, Y: 8}
	if got := a.FrameRect(0, 16); got != image.Rect(16, 8, 48, 40) {
		t.Fatalf("origin past the texture edge should still give one column, got %v", got)
	}
}

func TestWorldLifecycle(t *testing.T) {
	w := NewWorld(loadStore(t, heroConfig))

	o, err := w.CreateFromConfig("Character")
	if err != nil {
		t.Fatalf("CreateFromConfig: %v", err)
	}
	in, err := w.Object(o)
	if err != nil {
		t.Fatalf("Object: %v", err)
	}
	if in.CurrentAnim() != "Idle" {
		t.Fatalf("expected start anim, got %q", in.CurrentAnim())
	}
	if in.Scale() != (config.Vector{X: 2, Y: 2}) {
		t.Fatalf("unexpected scale %v", in.Scale())
	}
	if in.AnimFrequency() != 1 {
		t.Fatalf("unexpected frequency %v", in.AnimFrequency())
	}

	if !w.Delete(o) {
		t.Fatalf("Delete returned false")
	}
	if w.Delete(o) {
		t.Fatalf("second Delete should fail")
	}
	if _, err := w.Object(o); !errors.Is(err, ErrObjectNotAlive) {
		t.Fatalf("expected ErrObjectNotAlive, got %v", err)
	}

	o2, err := w.CreateFromConfig("Character")
	if err != nil {
		t.Fatalf("CreateFromConfig: %v", err)
	}
	if o2 == o {
		t.Fatalf("recreated object reused the stale handle %s", o)
	}
	if w.IsAlive(o) || !w.IsAlive(o2) {
		t.Fatalf("unexpected liveness: old=%v new=%v", w.IsAlive(o), w.IsAlive(o2))
	}
	if w.Len() != 1 {
		t.Fatalf("expected 1 object, got %d", w.Len())
	}
}

func TestWorldCreateErrors(t *testing.T) {
	w := NewWorld(loadStore(t, heroConfig))

	if _, err := w.CreateFromConfig("Missing"); !errors.Is(err, config.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	if _, err := w.CreateFromConfig("Prop"); !errors.Is(err, ErrNoAnimSet) {
		t.Fatalf("expected ErrNoAnimSet, got %v", err)
	}
	if w.Len() != 0 {
		t.Fatalf("failed creates should not leave objects")
	}
}

func TestPlayback(t *testing.T) {
	newHero := func(t *testing.T) (*World, *Instance) {
		w := NewWorld(loadStore(t, heroConfig))
		o, err := w.CreateFromConfig("Character")
		if err != nil {
			t.Fatalf("CreateFromConfig: %v", err)
		}
		in, _ := w.Object(o)
		return w, in
	}

	t.Run("loops_on_self_link", func(t *testing.T) {
		w, in := newHero(t)
		w.Update(0.45)
		if in.CurrentAnim() != "Idle" || !near(in.AnimTime(), 0.05) {
			t.Fatalf("expected Idle at 0.05, got %s at %v", in.CurrentAnim(), in.AnimTime())
		}
	})

	t.Run("heads_to_target", func(t *testing.T) {
		w, in := newHero(t)
		if !in.SetTargetAnim("Run") {
			t.Fatalf("SetTargetAnim failed")
		}
		w.Update(0.2)
		if in.CurrentAnim() != "Idle" {
			t.Fatalf("switched before the animation ended")
		}
		w.Update(0.25)
		if in.CurrentAnim() != "Run" || in.TargetAnim() != "" {
			t.Fatalf("expected Run with target reached, got %s -> %q", in.CurrentAnim(), in.TargetAnim())
		}
	})

	t.Run("immediate_link", func(t *testing.T) {
		w, in := newHero(t)
		in.SetCurrentAnim("Run")
		in.SetTargetAnim("Idle")
		w.Update(0.01)
		if in.CurrentAnim() != "Idle" || in.AnimTime() != 0 {
			t.Fatalf("expected immediate switch to Idle, got %s at %v", in.CurrentAnim(), in.AnimTime())
		}
	})

	t.Run("frequency", func(t *testing.T) {
		w, in := newHero(t)
		in.SetAnimFrequency(2)
		w.Update(0.1)
		if in.Frame() != 2 {
			t.Fatalf("expected frame 2, got %d", in.Frame())
		}
		in.SetAnimFrequency(-1)
		if in.AnimFrequency() != 0 {
			t.Fatalf("negative frequency should clamp to 0")
		}
	})

	t.Run("unknown_anims", func(t *testing.T) {
		_, in := newHero(t)
		if in.SetCurrentAnim("Nope") || in.SetTargetAnim("Nope") {
			t.Fatalf("unknown animations should be rejected")
		}
		if in.CurrentAnim() != "Idle" {
			t.Fatalf("current changed to %q", in.CurrentAnim())
		}
	})
}

func TestResources(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 96))
	img.Set(1, 1, color.White)
	f, err := os.Create(filepath.Join(dir, "hero.png"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	if _, err := Bootstrap(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for a missing storage")
	}

	res, err := Bootstrap(dir)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	tex, err := res.Texture("hero.png")
	if err != nil {
		t.Fatalf("Texture: %v", err)
	}
	if w, h := tex.Size(); w != 64 || h != 96 {
		t.Fatalf("unexpected size %dx%d", w, h)
	}
	again, _ := res.Texture("hero.png")
	if again != tex {
		t.Fatalf("expected cached texture")
	}
	res.Invalidate()
	if again, _ := res.Texture("hero.png"); again == tex {
		t.Fatalf("expected a fresh texture after Invalidate")
	}

	if _, err := res.Locate("nope.png"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
}
