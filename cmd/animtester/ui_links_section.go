package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/animtester/config"
	"github.com/milk9111/animtester/tester"
)

// linksSection lists the selected animation's links. Row actions queue edits
// on the frame; the tester commits them at the end of the frame.
type linksSection struct {
	theme    *widget.Theme
	fontFace *text.Face
	g        *Game

	relayoutTarget *widget.Container
	rows           *widget.Container
	addInput       *widget.TextInput
}

func newLinksSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, g *Game) *linksSection {
	s := &linksSection{theme: theme, fontFace: fontFace, g: g, relayoutTarget: parent}

	parent.AddChild(newHeading("Links", fontFace))
	s.rows = newColumn(4)
	parent.AddChild(s.rows)

	add := func(dst string) {
		g.frame.QueueLinkEdit(g.selectedAnim, tester.LinkEdit{Op: tester.LinkAdd, Text: dst})
		s.addInput.SetText("")
	}
	addRow := newRow(4)
	s.addInput = newTextInput(fontFace, 140, "New link", add)
	addRow.AddChild(s.addInput)
	addRow.AddChild(newButton(theme, fontFace, "Add", func() { add(s.addInput.GetText()) }))
	parent.AddChild(addRow)

	return s
}

func (s *linksSection) sync(set config.AnimSet, anim string) {
	s.rows.RemoveChildren()
	for i, dst := range set.Links(anim) {
		s.rows.AddChild(s.newRow(i, dst))
	}
	s.rows.RequestRelayout()
	s.relayoutTarget.RequestRelayout()
}

func (s *linksSection) newRow(index int, dst string) *widget.Container {
	row := newRow(4)
	input := newTextInput(s.fontFace, 120, "", func(text string) {
		s.g.frame.QueueLinkEdit(s.g.selectedAnim, tester.LinkEdit{Op: tester.LinkApply, Index: index, Text: text})
	})
	input.SetText(dst)
	row.AddChild(input)
	row.AddChild(newButton(s.theme, s.fontFace, "Apply", func() {
		s.g.frame.QueueLinkEdit(s.g.selectedAnim, tester.LinkEdit{Op: tester.LinkApply, Index: index, Text: input.GetText()})
	}))
	row.AddChild(newButton(s.theme, s.fontFace, "Remove", func() {
		s.g.frame.QueueLinkEdit(s.g.selectedAnim, tester.LinkEdit{Op: tester.LinkRemove, Index: index})
	}))
	return row
}
