package engine

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw renders o's current frame centered on (cx, cy) at the object's scale.
func (w *World) Draw(screen *ebiten.Image, o Object, res *Resources, cx, cy float64) error {
	in, err := w.Object(o)
	if err != nil {
		return err
	}
	anim, ok := in.Anim()
	if !ok {
		return nil
	}
	tex, err := res.Texture(anim.Texture)
	if err != nil {
		return err
	}

	r := anim.FrameRect(in.Frame(), tex.Width).Intersect(image.Rect(0, 0, tex.Width, tex.Height))
	if r.Empty() {
		return nil
	}
	sub := tex.Image().SubImage(r).(*ebiten.Image)

	scale := in.Scale()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-float64(r.Dx())/2, -float64(r.Dy())/2)
	op.GeoM.Scale(scale.X, scale.Y)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, &op)
	return nil
}
