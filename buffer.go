package daub

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/esimov/daub/utils"
)

// PixelBuffer is a rectangular RGBA raster addressed by (x, y),
// with (0, 0) being the top-left corner.
// Pixel and SetPixel are only defined for coordinates inside [0, Width) x [0, Height).
type PixelBuffer interface {
	Width() int
	Height() int
	Pixel(x, y int) color.NRGBA
	SetPixel(x, y int, c color.NRGBA)
}

var _ PixelBuffer = (*Canvas)(nil)

// Canvas is a PixelBuffer backed by an *image.NRGBA with its min point at (0, 0).
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas creates a new canvas of the given size, painted with the background color.
func NewCanvas(width, height int, bg color.NRGBA) *Canvas {
	return &Canvas{img: imaging.New(width, height, bg)}
}

// NewCanvasFromImage creates a canvas holding a copy of img.
func NewCanvasFromImage(img image.Image) *Canvas {
	return &Canvas{img: imaging.Clone(img)}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Pixel returns the color at (x, y).
func (c *Canvas) Pixel(x, y int) color.NRGBA {
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// SetPixel overwrites the color at (x, y).
func (c *Canvas) SetPixel(x, y int, col color.NRGBA) {
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	s[0] = col.R
	s[1] = col.G
	s[2] = col.B
	s[3] = col.A
}

// Image returns the underlying image. Changes to the image are visible through the canvas.
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Snapshot returns an independent copy of the canvas.
func (c *Canvas) Snapshot() *Canvas {
	return &Canvas{img: imaging.Clone(c.img)}
}

// Commit copies the pixels of a snapshot back into the canvas.
// Only the overlapping area is copied in case the sizes differ.
func (c *Canvas) Commit(snap *Canvas) {
	w := utils.Min(c.Width(), snap.Width())
	h := utils.Min(c.Height(), snap.Height())
	for y := 0; y < h; y++ {
		di := c.img.PixOffset(0, y)
		si := snap.img.PixOffset(0, y)
		copy(c.img.Pix[di:di+w*4], snap.img.Pix[si:si+w*4])
	}
}

// Clear paints the whole canvas with a single color.
func (c *Canvas) Clear(col color.NRGBA) {
	pix := c.img.Pix
	for i := 0; i+4 <= len(pix); i += 4 {
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}

// inBounds reports whether (x, y) addresses a pixel of buf.
func inBounds(buf PixelBuffer, x, y int) bool {
	return x >= 0 && x < buf.Width() && y >= 0 && y < buf.Height()
}
