package tester

import "image"

// TooltipRegion returns the texture region magnified under the cursor.
// cursor is relative to the texture's top-left corner. With snap the region
// is aligned to the frame-size grid, otherwise it is centered on the cursor.
// Either way it is clamped to stay inside the texture.
func TooltipRegion(cursor, texSize, frameSize image.Point, snap bool) image.Rectangle {
	fw, fh := max(frameSize.X, 1), max(frameSize.Y, 1)

	var x, y int
	if snap {
		x, y = floorDiv(cursor.X, fw)*fw, floorDiv(cursor.Y, fh)*fh
	} else {
		x, y = cursor.X-fw/2, cursor.Y-fh/2
	}
	x = clampInt(x, 0, texSize.X-fw)
	y = clampInt(y, 0, texSize.Y-fh)
	return image.Rect(x, y, x+fw, y+fh)
}

// TooltipUV returns r in normalized texture coordinates.
func TooltipUV(r image.Rectangle, texSize image.Point) (u0, v0, u1, v1 float64) {
	if texSize.X <= 0 || texSize.Y <= 0 {
		return 0, 0, 0, 0
	}
	w, h := float64(texSize.X), float64(texSize.Y)
	return float64(r.Min.X) / w, float64(r.Min.Y) / h, float64(r.Max.X) / w, float64(r.Max.Y) / h
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// clampInt clamps v to [lo, hi], preferring lo when hi < lo.
func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
