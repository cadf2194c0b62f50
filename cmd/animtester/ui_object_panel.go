package main

import (
	"log"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/animtester/engine"
)

// objectPanel shows the live object: scale, rate and animations.
type objectPanel struct {
	nameLabel    *widget.Label
	setLabel     *widget.Label
	currentLabel *widget.Label
	targetLabel  *widget.Label

	scale *numberInput
	rate  *numberInput

	targets  *widget.List
	suppress bool
}

func newObjectPanel(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *objectPanel {
	p := &objectPanel{}

	parent.AddChild(newHeading("Object", fontFace))
	p.nameLabel = newLabel("", fontFace)
	parent.AddChild(p.nameLabel)

	p.scale = newNumberInput(parent, theme, fontFace, "Scale", 1, 2, func(v float64) {
		if err := g.tester.SetScale(v); err != nil {
			log.Printf("animtester: scale: %v", err)
		}
	})
	p.rate = newNumberInput(parent, theme, fontFace, "Rate", 0.1, 2, func(v float64) {
		if err := g.tester.SetAnimFrequency(v); err != nil {
			log.Printf("animtester: rate: %v", err)
		}
	})

	p.setLabel = newLabel("", fontFace)
	p.currentLabel = newLabel("", fontFace)
	p.targetLabel = newLabel("", fontFace)
	parent.AddChild(p.setLabel)
	parent.AddChild(p.currentLabel)
	parent.AddChild(p.targetLabel)

	parent.AddChild(newLabel("Target animation", fontFace))
	p.targets = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 140))),
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if p.suppress {
				return
			}
			name, ok := args.Entry.(string)
			if !ok {
				return
			}
			if err := g.tester.SetTargetAnim(name); err != nil {
				log.Printf("animtester: target: %v", err)
			}
		}),
	)
	parent.AddChild(p.targets)

	parent.AddChild(newButton(theme, fontFace, "Play now", func() {
		name, ok := p.targets.SelectedEntry().(string)
		if !ok {
			return
		}
		if err := g.tester.SetCurrentAnim(name); err != nil {
			log.Printf("animtester: play: %v", err)
		}
	}))

	return p
}

// sync re-reads every field from the live object.
func (p *objectPanel) sync(in *engine.Instance) {
	p.suppress = true
	defer func() { p.suppress = false }()

	p.nameLabel.Label = in.Name()
	p.setLabel.Label = "Set: " + in.AnimSet().Name
	p.scale.SetValue(in.Scale().X)
	p.rate.SetValue(in.AnimFrequency())

	names := in.AnimSet().Names()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	p.targets.SetEntries(entries)
	if t := in.TargetAnim(); t != "" {
		p.targets.SetSelectedEntry(t)
	}
	p.refresh(in)
}

// refresh updates the fields that change every frame.
func (p *objectPanel) refresh(in *engine.Instance) {
	p.currentLabel.Label = "Current: " + in.CurrentAnim()
	target := in.TargetAnim()
	if target == "" {
		target = "-"
	}
	p.targetLabel.Label = "Target: " + target
}
