package engine

import "github.com/milk9111/animtester/config"

// maxHops bounds the animation switches taken in one update.
const maxHops = 64

// Instance is the live state of an object created from config.
type Instance struct {
	name      string
	set       *AnimSet
	scale     config.Vector
	frequency float64

	current string
	target  string
	time    float64
}

func (in *Instance) Name() string { return in.name }

func (in *Instance) AnimSet() *AnimSet { return in.set }

func (in *Instance) Scale() config.Vector { return in.scale }

func (in *Instance) SetScale(v config.Vector) { in.scale = v }

func (in *Instance) AnimFrequency() float64 { return in.frequency }

// SetAnimFrequency sets the playback rate multiplier. Negative rates are
// treated as zero.
func (in *Instance) SetAnimFrequency(f float64) {
	if f < 0 {
		f = 0
	}
	in.frequency = f
}

func (in *Instance) CurrentAnim() string { return in.current }

// SetCurrentAnim switches to anim immediately, restarting it and dropping
// any target. It returns false if the set has no such animation.
func (in *Instance) SetCurrentAnim(anim string) bool {
	if _, ok := in.set.Anim(anim); !ok {
		return false
	}
	in.current = anim
	in.target = ""
	in.time = 0
	return true
}

func (in *Instance) TargetAnim() string { return in.target }

// SetTargetAnim sets the animation playback heads to through links. An
// empty name clears the target.
func (in *Instance) SetTargetAnim(anim string) bool {
	if anim == "" {
		in.target = ""
		return true
	}
	if _, ok := in.set.Anim(anim); !ok {
		return false
	}
	in.target = anim
	return true
}

func (in *Instance) AnimTime() float64 { return in.time }

func (in *Instance) SetAnimTime(t float64) {
	if t < 0 {
		t = 0
	}
	in.time = t
}

// Anim returns the current animation.
func (in *Instance) Anim() (*Anim, bool) {
	return in.set.Anim(in.current)
}

// Frame returns the current frame index.
func (in *Instance) Frame() int {
	a, ok := in.Anim()
	if !ok {
		return 0
	}
	return a.FrameAt(in.time)
}

func (in *Instance) update(dt float64) {
	anim, ok := in.Anim()
	if !ok {
		return
	}
	in.time += dt * in.frequency

	for hops := 0; hops < maxHops; hops++ {
		if in.target != "" && in.target != in.current {
			if l, ok := in.set.NextLink(in.current, in.target); ok && l.Immediate {
				in.switchTo(l.To, 0)
				anim, _ = in.Anim()
				continue
			}
		}

		d := anim.Duration()
		if d <= 0 {
			in.time = 0
			return
		}
		if in.time < d {
			return
		}
		in.switchTo(in.next(), in.time-d)
		anim, _ = in.Anim()
	}
}

// next picks the animation that follows the current one when it ends.
func (in *Instance) next() string {
	if in.target != "" && in.target != in.current {
		if hop, ok := in.set.NextHop(in.current, in.target); ok {
			return hop
		}
	}
	links := in.set.Links(in.current)
	for _, l := range links {
		if l.Priority {
			return l.To
		}
	}
	for _, l := range links {
		if l.To == in.current {
			return l.To
		}
	}
	if len(links) > 0 {
		return links[0].To
	}
	return in.current
}

func (in *Instance) switchTo(anim string, t float64) {
	if _, ok := in.set.Anim(anim); !ok {
		anim = in.current
	}
	in.current = anim
	in.time = t
	if in.current == in.target {
		in.target = ""
	}
}
