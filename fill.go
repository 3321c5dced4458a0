package daub

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
)

// OutOfBoundsError is returned when a fill is seeded outside of the pixel buffer.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("seed (%d,%d) is outside of the %dx%d buffer", e.X, e.Y, e.Width, e.Height)
}

// Fill replaces the 4-connected region of target colored pixels containing
// the seed (x, y) with the replacement color. The buffer is mutated in place.
//
// The target color must be the color of the seed pixel at call time.
// A stale target results in an empty fill rather than an error.
// Filling a region with its own color leaves the buffer unchanged.
//
// The only error returned is *OutOfBoundsError, in which case nothing is written.
func Fill(buf PixelBuffer, x, y int, target, replacement color.NRGBA) error {
	if !inBounds(buf, x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: buf.Width(), Height: buf.Height()}
	}

	n := floodFill(buf, image.Pt(x, y), target, replacement)

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("flood fill",
			slog.Int("x", x),
			slog.Int("y", y),
			slog.String("target", HexColor(target)),
			slog.String("replacement", HexColor(replacement)),
			slog.Int("painted", n),
		)
	}
	return nil
}

// FillAt samples the seed color right before filling,
// the way a fill bucket tool does on a click.
func FillAt(buf PixelBuffer, x, y int, replacement color.NRGBA) error {
	if !inBounds(buf, x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: buf.Width(), Height: buf.Height()}
	}
	return Fill(buf, x, y, buf.Pixel(x, y), replacement)
}

// floodFill runs the stack based 4-connected fill and returns the number of painted pixels.
// Neighbours are pushed unchecked; bounds and colors are verified when popped.
func floodFill(buf PixelBuffer, seed image.Point, target, replacement color.NRGBA) int {
	var (
		w, h    = buf.Width(), buf.Height()
		stack   = []image.Point{seed}
		painted int
	)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		// The replacement check stops the loop when target equals
		// replacement and skips pixels painted earlier by this fill.
		c := buf.Pixel(p.X, p.Y)
		if !ColorsMatch(c, target) || ColorsMatch(c, replacement) {
			continue
		}

		buf.SetPixel(p.X, p.Y, replacement)
		painted++

		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return painted
}
