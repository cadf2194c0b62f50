package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// panels groups the tester's widgets. Widgets never hold the edited object;
// sync re-reads everything from the tester after a reload.
type panels struct {
	object  *objectPanel
	animSet *animSetPanel
	anim    *animPanel
	links   *linksSection
	texture *textureSection
}

func buildTesterUI(g *Game) (*ebitenui.UI, *panels) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newTesterTheme(&fontFace)
	theme := ui.PrimaryTheme

	p := &panels{}

	leftPanel := newPanel(260)
	p.object = newObjectPanel(leftPanel, theme, &fontFace, g)
	p.animSet = newAnimSetPanel(leftPanel, theme, &fontFace, g)

	rightPanel := newPanel(300)
	p.anim = newAnimPanel(rightPanel, theme, &fontFace, g)
	p.links = newLinksSection(rightPanel, theme, &fontFace, g)
	p.texture = newTextureSection(rightPanel, theme, &fontFace)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	rightPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(leftPanel)
	root.AddChild(rightPanel)

	ui.Container = root
	return ui, p
}
