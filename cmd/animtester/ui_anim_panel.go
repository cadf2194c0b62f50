package main

import (
	"log"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/animtester/config"
)

// animPanel edits the selected animation's frames, timing and origin.
type animPanel struct {
	title   *widget.Label
	section *widget.Label

	frames      *numberInput
	keyDuration *numberInput
	originX     *numberInput
	originY     *numberInput
}

func newAnimPanel(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *animPanel {
	p := &animPanel{}

	p.title = newHeading("Animation", fontFace)
	p.section = newLabel("", fontFace)
	parent.AddChild(p.title)
	parent.AddChild(p.section)

	p.frames = newNumberInput(parent, theme, fontFace, "Frames", 1, 0, func(v float64) {
		if err := g.tester.SetFrames(&g.frame, g.selectedAnim, int(v)); err != nil {
			log.Printf("animtester: frames: %v", err)
		}
	})
	p.keyDuration = newNumberInput(parent, theme, fontFace, "Key duration", 0.01, 3, func(v float64) {
		if err := g.tester.SetKeyDuration(&g.frame, g.selectedAnim, v); err != nil {
			log.Printf("animtester: key duration: %v", err)
		}
	})

	setOrigin := func() {
		v := config.Vector{X: p.originX.Value(), Y: p.originY.Value()}
		if err := g.tester.SetTextureOrigin(&g.frame, g.selectedAnim, v); err != nil {
			log.Printf("animtester: origin: %v", err)
		}
	}
	p.originX = newNumberInput(parent, theme, fontFace, "Origin X", 1, 0, func(float64) { setOrigin() })
	p.originY = newNumberInput(parent, theme, fontFace, "Origin Y", 1, 0, func(float64) { setOrigin() })

	return p
}

func (p *animPanel) sync(set config.AnimSet, anim string) {
	p.title.Label = "Animation: " + anim
	sec := set.AnimSection(anim)
	p.section.Label = "[" + sec.Name() + "]"
	if set.Collides(anim) {
		p.section.Label += " collides"
	}

	p.frames.SetValue(float64(set.Frames(anim)))
	d := config.DefaultKeyDuration
	switch {
	case sec.Has(config.KeyKeyDuration):
		d = sec.Float(config.KeyKeyDuration)
	case set.Has(config.KeyKeyDuration):
		d = set.Float(config.KeyKeyDuration)
	}
	p.keyDuration.SetValue(d)

	origin := sec.Vector(config.KeyTextureOrigin)
	p.originX.SetValue(origin.X)
	p.originY.SetValue(origin.Y)
}
