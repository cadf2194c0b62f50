package tester

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/animtester/config"
)

// Scale bounds accepted by SetScale.
const (
	MinScale = 0
	MaxScale = 64
)

// Config write-throughs. Each one edits the store and marks the frame dirty
// so the object is rebuilt with the new values.

func (t *Tester) SetFrames(f *Frame, anim string, frames int) error {
	set, err := t.AnimSet()
	if err != nil {
		return err
	}
	set.SetFrames(anim, uint32(max(frames, 0)))
	f.MarkDirty()
	return nil
}

func (t *Tester) SetKeyDuration(f *Frame, anim string, d float64) error {
	set, err := t.AnimSet()
	if err != nil {
		return err
	}
	set.AnimSection(anim).SetFloat(config.KeyKeyDuration, math.Max(d, 0))
	f.MarkDirty()
	return nil
}

func (t *Tester) SetTextureOrigin(f *Frame, anim string, v config.Vector) error {
	set, err := t.AnimSet()
	if err != nil {
		return err
	}
	set.AnimSection(anim).SetVector(config.KeyTextureOrigin, v)
	f.MarkDirty()
	return nil
}

// SetFrameSize sets the frame size shared by the set's animations.
func (t *Tester) SetFrameSize(f *Frame, v config.Vector) error {
	set, err := t.AnimSet()
	if err != nil {
		return err
	}
	set.SetVector(config.KeyFrameSize, v)
	f.MarkDirty()
	return nil
}

// AddAnimation declares a new one-frame animation in the set. A name whose
// section lands on an unrelated section is still added, with a warning.
func (t *Tester) AddAnimation(f *Frame, anim string) error {
	set, err := t.AnimSet()
	if err != nil {
		return err
	}
	if set.Collides(anim) {
		log.Printf("tester: animation %s maps to section %s which is already in use", anim, set.AnimSectionName(anim))
	}
	if err := set.AddAnimation(anim); err != nil {
		return fmt.Errorf("tester: add animation: %w", err)
	}
	f.MarkDirty()
	return nil
}

// Live object edits. These apply to the running instance without a reload.

// SetScale applies a uniform scale clamped to [MinScale, MaxScale].
func (t *Tester) SetScale(s float64) error {
	in, err := t.Instance()
	if err != nil {
		return err
	}
	s = math.Min(math.Max(s, MinScale), MaxScale)
	in.SetScale(config.Vector{X: s, Y: s})
	return nil
}

func (t *Tester) SetAnimFrequency(freq float64) error {
	in, err := t.Instance()
	if err != nil {
		return err
	}
	in.SetAnimFrequency(freq)
	return nil
}

func (t *Tester) SetCurrentAnim(anim string) error {
	in, err := t.Instance()
	if err != nil {
		return err
	}
	if !in.SetCurrentAnim(anim) {
		return fmt.Errorf("tester: unknown animation %q", anim)
	}
	return nil
}

func (t *Tester) SetTargetAnim(anim string) error {
	in, err := t.Instance()
	if err != nil {
		return err
	}
	if !in.SetTargetAnim(anim) {
		return fmt.Errorf("tester: unknown animation %q", anim)
	}
	return nil
}

// RequestSave schedules a save of the set to its origin file.
func (t *Tester) RequestSave(f *Frame) error {
	path, err := t.SavePath()
	if err != nil {
		return err
	}
	f.RequestSave(path)
	return nil
}
