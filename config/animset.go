package config

import (
	"errors"
	"sort"
	"strings"
)

// Keys of object, animation-set and animation sections.
const (
	KeyAnimationSet       = "AnimationSet"
	KeyScale              = "Scale"
	KeyAnimationFrequency = "AnimationFrequency"

	KeyPrefix        = "Prefix"
	KeyTexture       = "Texture"
	KeyFrameSize     = "FrameSize"
	KeyStartAnim     = "StartAnim"
	KeyStartAnimList = "StartAnimList"

	KeyKeyDuration   = "KeyDuration"
	KeyTextureOrigin = "TextureOrigin"
)

// DefaultKeyDuration is the key duration given to newly added animations.
const DefaultKeyDuration = 0.1

const linkSuffix = "->"

// Link destination markers.
const (
	markerImmediate = "."
	markerPriority  = "!"
)

var ErrEmptyAnimName = errors.New("config: empty animation name")

// AnimSectionName builds the section holding one animation's fields: the
// set's prefix followed by the animation name. Nothing separates the two
// parts, so distinct (prefix, name) pairs can yield the same section; see
// AnimSet.Collides.
func AnimSectionName(prefix, anim string) string {
	return prefix + anim
}

// LinkKey returns the animation-set key listing the links leaving anim.
func LinkKey(anim string) string {
	return anim + linkSuffix
}

// LinkSource reports the source animation of a link key.
func LinkSource(key string) (string, bool) {
	src, ok := strings.CutSuffix(key, linkSuffix)
	if !ok || src == "" {
		return "", false
	}
	return src, true
}

// ParseLinkTarget strips the immediate (".") and priority ("!") markers from
// a link destination.
func ParseLinkTarget(dst string) (name string, immediate, priority bool) {
	name = strings.TrimSpace(dst)
	for {
		switch {
		case strings.HasPrefix(name, markerImmediate):
			immediate = true
			name = name[len(markerImmediate):]
		case strings.HasPrefix(name, markerPriority):
			priority = true
			name = name[len(markerPriority):]
		default:
			return name, immediate, priority
		}
	}
}

// AnimSet is an accessor over an animation-set section.
type AnimSet struct {
	Section
}

// AnimSet returns the accessor for the named animation-set section.
func (s *Store) AnimSet(name string) AnimSet {
	return AnimSet{Section: s.Section(name)}
}

// Prefix returns the prefix prepended to animation names to form their
// section names.
func (a AnimSet) Prefix() string {
	return a.String(KeyPrefix)
}

// AnimSectionName returns the section name of anim. The prefix is read on
// every call so edits to it are honored.
func (a AnimSet) AnimSectionName(anim string) string {
	return AnimSectionName(a.Prefix(), anim)
}

// AnimSection returns the section holding anim's fields.
func (a AnimSet) AnimSection(anim string) Section {
	return a.store.Section(a.AnimSectionName(anim))
}

// Frames returns the frame count of anim, stored in the set section.
func (a AnimSet) Frames(anim string) uint32 {
	return a.U32(anim)
}

func (a AnimSet) SetFrames(anim string, frames uint32) {
	a.SetU32(anim, frames)
}

// Links returns the destinations linked from src, as stored.
func (a AnimSet) Links(src string) []string {
	return a.List(LinkKey(src))
}

// AddLink appends one destination to src's links.
func (a AnimSet) AddLink(src, dst string) {
	a.AppendList(LinkKey(src), dst)
}

// SetLinks replaces src's links; an empty list removes the key.
func (a AnimSet) SetLinks(src string, dsts []string) {
	a.SetList(LinkKey(src), dsts)
}

// AddStartAnim registers anim in the set's StartAnimList.
func (a AnimSet) AddStartAnim(anim string) {
	a.AppendList(KeyStartAnimList, anim)
}

// AddAnimation declares a one-frame animation with default timing at the
// texture origin.
func (a AnimSet) AddAnimation(anim string) error {
	anim = strings.TrimSpace(anim)
	if anim == "" {
		return ErrEmptyAnimName
	}
	a.SetFrames(anim, 1)
	a.AddStartAnim(anim)

	sec := a.AnimSection(anim)
	sec.SetFloat(KeyKeyDuration, DefaultKeyDuration)
	sec.SetVector(KeyTextureOrigin, Vector{})
	return nil
}

// AnimNames returns every animation the set declares, sorted: the start
// animation, StartAnimList entries and both ends of every link.
func (a AnimSet) AnimNames() []string {
	seen := make(map[string]struct{})
	add := func(name string) {
		name, _, _ = ParseLinkTarget(name)
		if name != "" {
			seen[name] = struct{}{}
		}
	}

	add(a.String(KeyStartAnim))
	for _, n := range a.List(KeyStartAnimList) {
		add(n)
	}
	for _, key := range a.Keys() {
		src, ok := LinkSource(key)
		if !ok {
			continue
		}
		add(src)
		for _, dst := range a.List(key) {
			add(dst)
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Collides reports whether anim's section name lands on a section that is
// not an animation section: the set itself, another animation set or an
// object.
func (a AnimSet) Collides(anim string) bool {
	name := a.AnimSectionName(anim)
	if name == a.Name() {
		return true
	}
	sec := a.store.Section(name)
	if !sec.Exists() {
		return false
	}
	return sec.HasOwn(KeyAnimationSet) || sec.HasOwn(KeyStartAnim) || sec.HasOwn(KeyStartAnimList) || sec.HasOwn(KeyFrameSize)
}
