package daub

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/daub/utils"
	"golang.org/x/image/vector"
)

// arcSegments is the minimum number of line segments used to approximate a round cap.
// Wider caps get one segment per pixel of radius.
const arcSegments = 16

// coverageThreshold is the minimum coverage for a pixel to be painted.
// Strokes are not anti-aliased: a pixel is either painted or left untouched.
const coverageThreshold = 0x80

// Stroke draws a straight line between two pixels with round caps, the way a
// canvas lineTo followed by stroke does with a round line cap. The line runs
// through the pixel centers. Pixels falling outside of dst are clipped.
// A zero length line paints a dot of the given width. Widths above
// MaxLineWidth are capped, non positive or NaN widths paint nothing.
func Stroke(dst *image.NRGBA, from, to image.Point, width float64, c color.NRGBA) {
	if math.IsNaN(width) || width <= 0 {
		return
	}
	r := utils.Min(width, MaxLineWidth) / 2

	ax, ay := float64(from.X)+0.5, float64(from.Y)+0.5
	bx, by := float64(to.X)+0.5, float64(to.Y)+0.5

	// Clip the segment to the destination grown by the radius, so the
	// rasterized capsule never extends far outside of dst.
	margin := r + 2
	bounds := dst.Bounds()
	ax, ay, bx, by, ok := clipSegment(ax, ay, bx, by,
		float64(bounds.Min.X)-margin, float64(bounds.Min.Y)-margin,
		float64(bounds.Max.X)+margin, float64(bounds.Max.Y)+margin,
	)
	if !ok {
		return
	}

	// Bounding box of the capsule, fully containing its outline.
	box := image.Rect(
		int(math.Floor(utils.Min(ax, bx)-r))-1,
		int(math.Floor(utils.Min(ay, by)-r))-1,
		int(math.Ceil(utils.Max(ax, bx)+r))+1,
		int(math.Ceil(utils.Max(ay, by)+r))+1,
	)
	area := box.Intersect(bounds)
	if area.Empty() {
		return
	}

	// Only the visible part of the capsule is rasterized. The outline may
	// cross the mask edges, the rasterizer accumulates the coverage of the
	// parts lying outside of it into the edge pixels.
	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	ox, oy := float64(area.Min.X), float64(area.Min.Y)
	capsule(z, ax-ox, ay-oy, bx-ox, by-oy, r)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if mask.Pix[(y-area.Min.Y)*mask.Stride+(x-area.Min.X)] >= coverageThreshold {
				setNRGBA(dst, x, y, c)
			}
		}
	}

	// Thin lines may not cover the end pixels by more than the threshold.
	for _, p := range []image.Point{from, to} {
		if p.In(bounds) {
			setNRGBA(dst, p.X, p.Y, c)
		}
	}
}

// capsule adds to the rasterizer the outline of a line segment from (ax, ay)
// to (bx, by) having the radius r and round caps on both ends.
func capsule(z *vector.Rasterizer, ax, ay, bx, by, r float64) {
	dx, dy := bx-ax, by-ay
	theta := math.Atan2(dy, dx)
	if dx == 0 && dy == 0 {
		theta = 0
	}

	// Normal to the segment direction.
	nx, ny := -math.Sin(theta), math.Cos(theta)

	segs := utils.Max(arcSegments, int(math.Ceil(r)))

	z.MoveTo(float32(ax+nx*r), float32(ay+ny*r))
	z.LineTo(float32(bx+nx*r), float32(by+ny*r))
	// Cap around the end point, from +n to -n passing through the direction of travel.
	for i := 1; i <= segs; i++ {
		a := theta + math.Pi/2 - math.Pi*float64(i)/float64(segs)
		z.LineTo(float32(bx+math.Cos(a)*r), float32(by+math.Sin(a)*r))
	}
	z.LineTo(float32(ax-nx*r), float32(ay-ny*r))
	// Cap around the start point, from -n back to +n.
	for i := 1; i <= segs; i++ {
		a := theta - math.Pi/2 - math.Pi*float64(i)/float64(segs)
		z.LineTo(float32(ax+math.Cos(a)*r), float32(ay+math.Sin(a)*r))
	}
	z.ClosePath()
}

// clipSegment clips the segment a-b against the rectangle having the top-left corner
// (minX, minY) and the bottom-right corner (maxX, maxY), using the Liang-Barsky algorithm.
// It reports false if the segment lies outside of the rectangle.
func clipSegment(ax, ay, bx, by, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	dx, dy := bx-ax, by-ay
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, ax - minX},
		{dx, maxX - ax},
		{-dy, ay - minY},
		{dy, maxY - ay},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = utils.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = utils.Min(t1, t)
		}
	}
	return ax + t0*dx, ay + t0*dy, ax + t1*dx, ay + t1*dy, true
}

func setNRGBA(dst *image.NRGBA, x, y int, c color.NRGBA) {
	i := dst.PixOffset(x, y)
	s := dst.Pix[i : i+4 : i+4]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	s[3] = c.A
}
