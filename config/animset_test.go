package config

import (
	"reflect"
	"testing"
)

func TestAnimSectionName(t *testing.T) {
	cases := []struct {
		prefix, anim, want string
	}{
		{"Hero", "Idle", "HeroIdle"},
		{"", "Idle", "Idle"},
		{"Hero", "", "Hero"},
	}
	for _, c := range cases {
		if got := AnimSectionName(c.prefix, c.anim); got != c.want {
			t.Fatalf("AnimSectionName(%q, %q) = %q, want %q", c.prefix, c.anim, got, c.want)
		}
	}
}

func TestLinkKeys(t *testing.T) {
	if got := LinkKey("Idle"); got != "Idle->" {
		t.Fatalf("unexpected link key %q", got)
	}
	if src, ok := LinkSource("Run->"); !ok || src != "Run" {
		t.Fatalf("expected Run, got %q (%v)", src, ok)
	}
	if _, ok := LinkSource("->"); ok {
		t.Fatalf("a bare suffix is not a link key")
	}
	if _, ok := LinkSource("Prefix"); ok {
		t.Fatalf("plain keys are not link keys")
	}

	name, immediate, priority := ParseLinkTarget(" !.Jump ")
	if name != "Jump" || !immediate || !priority {
		t.Fatalf("unexpected parse: %q %v %v", name, immediate, priority)
	}
}

func TestAnimSetLinks(t *testing.T) {
	s, _ := loadHero(t)
	set := s.AnimSet("Hero")

	before := set.Links("Idle")
	set.AddLink("Idle", "Jump")
	want := append(append([]string(nil), before...), "Jump")
	if got := set.Links("Idle"); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	set.SetLinks("Idle", []string{})
	if got := set.Links("Idle"); len(got) != 0 {
		t.Fatalf("expected cleared links, got %#v", got)
	}
	if set.HasOwn(LinkKey("Idle")) {
		t.Fatalf("clearing links should remove the key")
	}

	set.AddLink("Fall", "Idle")
	if got := set.Links("Fall"); !reflect.DeepEqual(got, []string{"Idle"}) {
		t.Fatalf("append on absent key should create it, got %v", got)
	}
}

func TestAnimSetAddAnimation(t *testing.T) {
	s, _ := loadHero(t)
	set := s.AnimSet("Hero")

	if err := set.AddAnimation("  "); err != ErrEmptyAnimName {
		t.Fatalf("expected ErrEmptyAnimName, got %v", err)
	}
	if err := set.AddAnimation("Jump"); err != nil {
		t.Fatalf("AddAnimation: %v", err)
	}

	if got := set.Frames("Jump"); got != 1 {
		t.Fatalf("expected 1 frame, got %d", got)
	}
	if got := set.List(KeyStartAnimList); !reflect.DeepEqual(got, []string{"Jump"}) {
		t.Fatalf("expected StartAnimList [Jump], got %v", got)
	}
	sec := s.Section("HeroJump")
	if got := sec.Float(KeyKeyDuration); got != DefaultKeyDuration {
		t.Fatalf("expected default key duration, got %v", got)
	}
	if !sec.HasOwn(KeyTextureOrigin) {
		t.Fatalf("texture origin should be written")
	}
}

func TestAnimSetAnimNames(t *testing.T) {
	s, _ := loadHero(t)
	set := s.AnimSet("Hero")
	set.AddStartAnim("Jump")

	want := []string{"Idle", "Jump", "Run"}
	if got := set.AnimNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAnimSetCollides(t *testing.T) {
	s, _ := loadHero(t)
	set := s.AnimSet("Hero")

	cases := []struct {
		anim string
		want bool
	}{
		{"Idle", false},
		{"Brand", false},
		{"", true},
	}
	for _, c := range cases {
		t.Run(c.anim, func(t *testing.T) {
			if got := set.Collides(c.anim); got != c.want {
				t.Fatalf("Collides(%q) = %v, want %v", c.anim, got, c.want)
			}
		})
	}

	// "Hero" + "Set" lands on an animation-set section.
	s.Section("HeroSet").SetString(KeyStartAnim, "Idle")
	if !set.Collides("Set") {
		t.Fatalf("expected collision with another animation set")
	}
}
