package icons

import (
	"image"
	"math"
)

// Crop box tuning. The box edge is a fraction of the source width and the
// box sits slightly above the geometric center.
const (
	cropWidthFraction = 0.4
	cropTopBias       = 0.9
	cropBottomBias    = 1.1
)

// CropBox returns the square region of a w×h source that holds the logo.
// The result always lies inside the image and is at least 1×1.
func CropBox(w, h int) image.Rectangle {
	bounds := image.Rect(0, 0, w, h)
	cx, cy := w/2, h/2

	edge := math.Min(float64(h), float64(w)*cropWidthFraction)
	half := int(edge) / 2

	r := image.Rect(
		cx-half,
		int(float64(cy)-float64(half)*cropTopBias),
		cx+half,
		int(float64(cy)+float64(half)*cropBottomBias),
	)
	r = clamp(r, bounds)
	r = squarify(r)
	return clamp(r, bounds)
}

// squarify extends the shorter side of r symmetrically.
func squarify(r image.Rectangle) image.Rectangle {
	w, h := r.Dx(), r.Dy()
	switch {
	case h > w:
		d := (h - w) / 2
		r.Min.X -= d
		r.Max.X += d
	case w > h:
		d := (w - h) / 2
		r.Min.Y -= d
		r.Max.Y += d
	}
	return r
}

// clamp intersects r with bounds and widens an empty result to one pixel.
func clamp(r, bounds image.Rectangle) image.Rectangle {
	r = r.Canon()
	r.Min.X = clampInt(r.Min.X, bounds.Min.X, bounds.Max.X-1)
	r.Min.Y = clampInt(r.Min.Y, bounds.Min.Y, bounds.Max.Y-1)
	r.Max.X = clampInt(r.Max.X, r.Min.X+1, bounds.Max.X)
	r.Max.Y = clampInt(r.Max.Y, r.Min.Y+1, bounds.Max.Y)
	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PadOffset returns where a w×h raster goes on its square canvas, and the
// canvas edge.
func PadOffset(w, h int) (edge int, at image.Point) {
	edge = max(w, h)
	return edge, image.Pt((edge-w)/2, (edge-h)/2)
}

// LogoEdge is the edge length of the logo inside a size×size icon that
// keeps padding×size of margin on each side.
func LogoEdge(size int, padding float64) int {
	return int(float64(size) * (1 - padding*2))
}

// LogoOffset is the top-left margin that centers a logo of edge logo.
func LogoOffset(size, logo int) int {
	return (size - logo) / 2
}
