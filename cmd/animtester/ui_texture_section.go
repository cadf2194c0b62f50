package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/animtester/config"
	"github.com/milk9111/animtester/engine"
	"github.com/milk9111/animtester/tester"
)

const previewSize = 256

// textureSection previews the set's texture and magnifies the frame region
// under the cursor.
type textureSection struct {
	nameLabel *widget.Label
	snapBtn   *widget.Button
	graphic   *widget.Graphic
	blank     *ebiten.Image
	snap      bool

	tex       *engine.Texture
	preview   *ebiten.Image
	scale     float64
	frameSize image.Point
}

func newTextureSection(parent *widget.Container, theme *widget.Theme, fontFace *text.Face) *textureSection {
	s := &textureSection{snap: true, scale: 1}

	parent.AddChild(newHeading("Texture", fontFace))
	s.nameLabel = newLabel("", fontFace)
	parent.AddChild(s.nameLabel)

	s.snapBtn = newButton(theme, fontFace, "Snap: On", func() {
		s.SetSnap(!s.snap)
	})
	parent.AddChild(s.snapBtn)

	s.blank = ebiten.NewImage(1, 1)
	s.graphic = widget.NewGraphic(
		widget.GraphicOpts.Image(s.blank),
		widget.GraphicOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(previewSize, previewSize),
		),
	)
	parent.AddChild(s.graphic)
	return s
}

func (s *textureSection) SetSnap(enabled bool) {
	s.snap = enabled
	label := "Snap: Off"
	if enabled {
		label = "Snap: On"
	}
	if t := s.snapBtn.Text(); t != nil {
		t.Label = label
	}
}

func (s *textureSection) sync(tex *engine.Texture, frameSize config.Vector) {
	s.frameSize = image.Pt(int(frameSize.X), int(frameSize.Y))
	if tex == nil {
		s.nameLabel.Label = "(no texture)"
		s.tex = nil
		s.graphic.Image = s.blank
		return
	}
	s.nameLabel.Label = fmt.Sprintf("%s (%dx%d)", tex.Name, tex.Width, tex.Height)
	if tex == s.tex {
		return
	}
	s.tex = tex

	s.scale = math.Min(1, previewSize/float64(max(tex.Width, tex.Height)))
	w := max(int(float64(tex.Width)*s.scale), 1)
	h := max(int(float64(tex.Height)*s.scale), 1)
	if s.preview != nil {
		s.preview.Deallocate()
	}
	s.preview = ebiten.NewImage(w, h)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(s.scale, s.scale)
	op.Filter = ebiten.FilterNearest
	s.preview.DrawImage(tex.Image(), &op)
	s.graphic.Image = s.preview
}

// drawTooltip draws the magnified frame region when the cursor is over the
// preview.
func (s *textureSection) drawTooltip(screen *ebiten.Image, zoom float64) {
	if s.tex == nil || s.preview == nil {
		return
	}
	mx, my := ebiten.CursorPosition()
	// The graphic centers its image in the widget rect.
	rect := s.graphic.GetWidget().Rect
	size := s.preview.Bounds().Size()
	origin := rect.Min.Add(image.Pt((rect.Dx()-size.X)/2, (rect.Dy()-size.Y)/2))
	if !image.Pt(mx, my).In(s.preview.Bounds().Add(origin)) {
		return
	}

	local := image.Pt(int(float64(mx-origin.X)/s.scale), int(float64(my-origin.Y)/s.scale))
	texSize := image.Pt(s.tex.Width, s.tex.Height)
	region := tester.TooltipRegion(local, texSize, s.frameSize, s.snap).Intersect(image.Rectangle{Max: texSize})
	if region.Empty() {
		return
	}

	w, h := float64(region.Dx())*zoom, float64(region.Dy())*zoom
	x, y := float64(mx+16), float64(my+16)
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if x+w > float64(sw) {
		x = float64(mx) - 16 - w
	}
	if y+h+20 > float64(sh) {
		y = float64(my) - 36 - h
	}

	vector.FillRect(screen, float32(x-2), float32(y-2), float32(w+4), float32(h+4), color.RGBA{20, 20, 20, 230}, false)
	sub := s.tex.Image().SubImage(region).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, &op)
	vector.StrokeRect(screen, float32(x-2), float32(y-2), float32(w+4), float32(h+4), 1, color.RGBA{255, 210, 120, 255}, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Min: (%d, %d)  Max: (%d, %d)", region.Min.X, region.Min.Y, region.Max.X, region.Max.Y), int(x), int(y+h+4))
}
