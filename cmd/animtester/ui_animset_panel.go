package main

import (
	"log"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/animtester/config"
)

// animSetPanel edits the animation set: save, new animations, frame size.
type animSetPanel struct {
	nameLabel *widget.Label
	newAnim   *widget.TextInput
	anims     *widget.List

	frameW *numberInput
	frameH *numberInput

	suppress bool
}

func newAnimSetPanel(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *animSetPanel {
	p := &animSetPanel{}

	parent.AddChild(newHeading("Animation set", fontFace))
	p.nameLabel = newLabel("", fontFace)
	parent.AddChild(p.nameLabel)

	actions := newRow(6)
	actions.AddChild(newButton(theme, fontFace, "Save", func() {
		if err := g.tester.RequestSave(&g.frame); err != nil {
			log.Printf("animtester: save: %v", err)
		}
	}))
	actions.AddChild(newButton(theme, fontFace, "Copy", g.copySections))
	parent.AddChild(actions)

	addAnim := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if err := g.tester.AddAnimation(&g.frame, name); err != nil {
			log.Printf("animtester: %v", err)
			return
		}
		p.newAnim.SetText("")
		g.selectedAnim = name
	}
	addRow := newRow(4)
	p.newAnim = newTextInput(fontFace, 140, "New animation", addAnim)
	addRow.AddChild(p.newAnim)
	addRow.AddChild(newButton(theme, fontFace, "Add", func() { addAnim(p.newAnim.GetText()) }))
	parent.AddChild(addRow)

	parent.AddChild(newLabel("Animations", fontFace))
	p.anims = widget.NewList(
		widget.ListOpts.ContainerOpts(widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 160))),
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
			if name, ok := args.Entry.(string); ok {
				g.selectAnim(name)
			}
		}),
	)
	parent.AddChild(p.anims)

	setFrameSize := func() {
		v := config.Vector{X: p.frameW.Value(), Y: p.frameH.Value()}
		if err := g.tester.SetFrameSize(&g.frame, v); err != nil {
			log.Printf("animtester: frame size: %v", err)
		}
	}
	p.frameW = newNumberInput(parent, theme, fontFace, "Frame W", 1, 0, func(float64) { setFrameSize() })
	p.frameH = newNumberInput(parent, theme, fontFace, "Frame H", 1, 0, func(float64) { setFrameSize() })

	return p
}

func (p *animSetPanel) sync(set config.AnimSet, selected string) {
	p.suppress = true
	defer func() { p.suppress = false }()

	p.nameLabel.Label = set.Name() + "  (prefix " + set.Prefix() + ")"

	names := set.AnimNames()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	p.anims.SetEntries(entries)
	if selected != "" {
		p.anims.SetSelectedEntry(selected)
	}

	size := set.Vector(config.KeyFrameSize)
	p.frameW.SetValue(size.X)
	p.frameH.SetValue(size.Y)
}
