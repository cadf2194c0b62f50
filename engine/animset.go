package engine

import (
	"fmt"
	"image"
	"math"

	"github.com/milk9111/animtester/config"
)

// Anim is one animation of a set, resolved from config at load time.
type Anim struct {
	Name        string
	Section     string
	Frames      int
	KeyDuration float64
	Origin      config.Vector
	FrameSize   config.Vector
	Texture     string
}

// Duration is the time one full playback takes at frequency 1.
func (a *Anim) Duration() float64 {
	if a == nil || a.Frames <= 0 || a.KeyDuration <= 0 {
		return 0
	}
	return float64(a.Frames) * a.KeyDuration
}

// FrameAt returns the frame index shown at time t.
func (a *Anim) FrameAt(t float64) int {
	if a == nil || a.Frames <= 0 {
		return 0
	}
	if a.KeyDuration <= 0 || t <= 0 {
		return 0
	}
	i := int(math.Floor(t / a.KeyDuration))
	if i >= a.Frames {
		i = a.Frames - 1
	}
	return i
}

// FrameRect returns the texture region of frame i. Frames run left to right
// from the texture origin and wrap onto the next row at the texture's right
// edge.
func (a *Anim) FrameRect(i, texWidth int) image.Rectangle {
	fw, fh := int(a.FrameSize.X), int(a.FrameSize.Y)
	if fw <= 0 || fh <= 0 || i < 0 {
		return image.Rectangle{}
	}
	ox, oy := int(a.Origin.X), int(a.Origin.Y)

	cols := 1
	if texWidth > ox {
		cols = max((texWidth-ox)/fw, 1)
	}
	x := ox + (i%cols)*fw
	y := oy + (i/cols)*fh
	return image.Rect(x, y, x+fw, y+fh)
}

// Link is a transition from one animation to another.
type Link struct {
	To        string
	Immediate bool
	Priority  bool
}

// AnimSet holds a set's animations and links.
type AnimSet struct {
	Name      string
	Prefix    string
	Texture   string
	FrameSize config.Vector
	Start     string

	anims map[string]*Anim
	names []string
	links map[string][]Link
}

// LoadAnimSet builds the named animation set from the store.
func LoadAnimSet(store *config.Store, name string) (*AnimSet, error) {
	if name == "" {
		return nil, ErrNoAnimSet
	}
	cfg := store.AnimSet(name)
	if !cfg.Exists() {
		return nil, fmt.Errorf("engine: anim set %s: %w", name, config.ErrSectionNotFound)
	}

	set := &AnimSet{
		Name:      name,
		Prefix:    cfg.Prefix(),
		Texture:   cfg.String(config.KeyTexture),
		FrameSize: cfg.Vector(config.KeyFrameSize),
		Start:     cfg.String(config.KeyStartAnim),
		anims:     make(map[string]*Anim),
		links:     make(map[string][]Link),
	}

	setDuration := config.DefaultKeyDuration
	if cfg.Has(config.KeyKeyDuration) {
		setDuration = cfg.Float(config.KeyKeyDuration)
	}

	set.names = cfg.AnimNames()
	for _, n := range set.names {
		sec := cfg.AnimSection(n)
		anim := &Anim{
			Name:        n,
			Section:     sec.Name(),
			Frames:      int(cfg.Frames(n)),
			KeyDuration: setDuration,
			Origin:      sec.Vector(config.KeyTextureOrigin),
			FrameSize:   set.FrameSize,
			Texture:     set.Texture,
		}
		if sec.Has(config.KeyKeyDuration) {
			anim.KeyDuration = sec.Float(config.KeyKeyDuration)
		}
		if sec.Has(config.KeyFrameSize) {
			anim.FrameSize = sec.Vector(config.KeyFrameSize)
		}
		if sec.Has(config.KeyTexture) {
			anim.Texture = sec.String(config.KeyTexture)
		}
		set.anims[n] = anim

		for _, dst := range cfg.Links(n) {
			to, immediate, priority := config.ParseLinkTarget(dst)
			if to == "" {
				continue
			}
			set.links[n] = append(set.links[n], Link{To: to, Immediate: immediate, Priority: priority})
		}
	}

	if _, ok := set.anims[set.Start]; !ok {
		set.Start = ""
		if len(set.names) > 0 {
			set.Start = set.names[0]
		}
	}
	return set, nil
}

// Anims returns the set's animations sorted by name.
func (s *AnimSet) Anims() []*Anim {
	if s == nil {
		return nil
	}
	out := make([]*Anim, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.anims[n])
	}
	return out
}

// Names returns the animation names, sorted.
func (s *AnimSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.names...)
}

func (s *AnimSet) Anim(name string) (*Anim, bool) {
	if s == nil {
		return nil, false
	}
	a, ok := s.anims[name]
	return a, ok
}

// Links returns the links leaving an animation in declaration order.
func (s *AnimSet) Links(from string) []Link {
	if s == nil {
		return nil
	}
	return s.links[from]
}

// NextLink returns the first link on the shortest path from one animation to
// another.
func (s *AnimSet) NextLink(from, to string) (Link, bool) {
	if s == nil || from == to {
		return Link{}, false
	}
	if _, ok := s.anims[to]; !ok {
		return Link{}, false
	}

	// first[n] is the link out of from that starts the path to n.
	first := map[string]Link{}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, l := range s.links[cur] {
			if visited[l.To] {
				continue
			}
			visited[l.To] = true
			if cur == from {
				first[l.To] = l
			} else {
				first[l.To] = first[cur]
			}
			if l.To == to {
				return first[l.To], true
			}
			queue = append(queue, l.To)
		}
	}
	return Link{}, false
}

// NextHop returns the animation that follows from on the way to to.
func (s *AnimSet) NextHop(from, to string) (string, bool) {
	if from == to {
		_, ok := s.Anim(from)
		return from, ok
	}
	l, ok := s.NextLink(from, to)
	return l.To, ok
}
