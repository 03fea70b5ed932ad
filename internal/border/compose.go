package border

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composer draws resized frames onto a reused black canvas.
type Composer struct {
	geom   Geometry
	canvas *image.RGBA
	scaler draw.Scaler
}

// NewComposer allocates the canvas for geom.
func NewComposer(geom Geometry) *Composer {
	canvas := image.NewRGBA(geom.Canvas())
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	return &Composer{geom: geom, canvas: canvas, scaler: draw.CatmullRom}
}

// Compose resizes frame into the interior box. The returned image is owned
// by the Composer and overwritten by the next call; the border area is never
// touched after construction so it stays black.
func (c *Composer) Compose(frame *image.RGBA) *image.RGBA {
	if !c.geom.Padded() && frame.Bounds().Size() == c.canvas.Bounds().Size() {
		copy(c.canvas.Pix, frame.Pix)
		return c.canvas
	}
	c.scaler.Scale(c.canvas, c.geom.Rect(), frame, frame.Bounds(), draw.Src, nil)
	return c.canvas
}
