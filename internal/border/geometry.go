package border

import (
	"fmt"
	"image"
	"math"
)

// Geometry places the resized picture on the output canvas.
type Geometry struct {
	CanvasWidth  int
	CanvasHeight int
	Width        int
	Height       int
	X            int
	Y            int
}

// Compute returns the interior box for a width x height frame with percent
// margin on every side. The interior keeps the frame's aspect ratio and is
// clamped to the shrunken width.
func Compute(width, height int, percent float64) (Geometry, error) {
	if width <= 0 || height <= 0 {
		return Geometry{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if percent < 0 || percent > 50 || math.IsNaN(percent) {
		return Geometry{}, fmt.Errorf("%w: percent %v outside 0-50", ErrInvalidJob, percent)
	}

	scale := (100 - 2*percent) / 100
	h := round(float64(height) * scale)
	w := round(float64(h) * float64(width) / float64(height))
	if maxW := round(float64(width) * scale); w > maxW {
		w = maxW
		h = round(float64(w) * float64(height) / float64(width))
	}
	if w <= 0 || h <= 0 {
		return Geometry{}, fmt.Errorf("%w: %v%% border leaves a %dx%d picture", ErrInvalidDimensions, percent, w, h)
	}

	return Geometry{
		CanvasWidth:  width,
		CanvasHeight: height,
		Width:        w,
		Height:       h,
		X:            (width - w) / 2,
		Y:            (height - h) / 2,
	}, nil
}

// Rect is the interior rectangle in canvas coordinates.
func (g Geometry) Rect() image.Rectangle {
	return image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height)
}

// Canvas is the full output frame rectangle.
func (g Geometry) Canvas() image.Rectangle {
	return image.Rect(0, 0, g.CanvasWidth, g.CanvasHeight)
}

// Padded reports whether any border is drawn.
func (g Geometry) Padded() bool {
	return g.Width != g.CanvasWidth || g.Height != g.CanvasHeight
}

func round(v float64) int {
	return int(math.Round(v))
}
