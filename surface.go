package daub

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/esimov/daub/utils"
)

// Tool is the active painting tool of a surface.
type Tool int

const (
	Brush Tool = iota
	FillBucket
	Eraser
)

const (
	// DefaultLineWidth is the line width used by the brush and the eraser.
	DefaultLineWidth = 5
	// MaxLineWidth is the widest line the brush and the eraser can draw.
	MaxLineWidth = 1000
)

// validLineWidth reports whether w is a line width in the (0, MaxLineWidth] range.
func validLineWidth(w float64) bool {
	return !math.IsNaN(w) && w > 0 && w <= MaxLineWidth
}

var toolNames = map[Tool]string{
	Brush:      "brush",
	FillBucket: "fill",
	Eraser:     "eraser",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool returns the tool having the given name.
func ParseTool(name string) (Tool, error) {
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Surface is a headless painting surface driven by pointer events.
// All methods are safe for concurrent use; the calls are serialized.
type Surface struct {
	mu sync.Mutex

	canvas     *Canvas
	background color.NRGBA
	tool       Tool
	brushColor color.NRGBA
	fillColor  color.NRGBA
	lineWidth  float64

	drawing bool
	last    image.Point
}

// NewSurface creates a white surface with the brush selected.
func NewSurface(width, height int) *Surface {
	return newSurface(NewCanvas(width, height, White))
}

// NewSurfaceFromImage creates a surface with a copy of img as its content.
func NewSurfaceFromImage(img image.Image) *Surface {
	return newSurface(NewCanvasFromImage(img))
}

func newSurface(c *Canvas) *Surface {
	return &Surface{
		canvas:     c,
		background: White,
		tool:       Brush,
		brushColor: Black,
		fillColor:  Black,
		lineWidth:  DefaultLineWidth,
	}
}

// Canvas returns the pixel buffer of the surface.
func (s *Surface) Canvas() *Canvas {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.canvas
}

// Tool returns the active tool.
func (s *Surface) Tool() Tool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tool
}

// SetTool changes the active tool.
func (s *Surface) SetTool(t Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tool = t
}

// SetBrushColor sets the color used by the brush.
func (s *Surface) SetBrushColor(c color.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.brushColor = c
}

// SetFillColor sets the color used by the fill bucket.
func (s *Surface) SetFillColor(c color.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fillColor = c
}

// SetBackground sets the color used by the eraser and by Clear.
func (s *Surface) SetBackground(c color.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.background = c
}

// SetLineWidth sets the line width of the brush and the eraser.
// The width is capped at MaxLineWidth. Non positive or NaN widths are ignored.
func (s *Surface) SetLineWidth(w float64) {
	if math.IsNaN(w) || w <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lineWidth = utils.Min(w, MaxLineWidth)
}

// PointerDown handles a pointer press at (x, y).
// The brush and the eraser start drawing, the fill bucket fills the region under the pointer.
func (s *Surface) PointerDown(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.tool {
	case Brush, Eraser:
		s.drawing = true
		s.last = image.Pt(x, y)
		s.strokeTo(s.last)
	case FillBucket:
		return s.fillBucket(x, y)
	}
	return nil
}

// PointerMove handles a pointer movement to (x, y).
// It draws a line from the previous position when a drawing is in progress.
func (s *Surface) PointerMove(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.drawing {
		return
	}
	s.strokeTo(image.Pt(x, y))
}

// PointerUp ends the drawing in progress.
func (s *Surface) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drawing = false
}

// PointerOut is called when the pointer leaves the surface. It ends the drawing in progress.
func (s *Surface) PointerOut() {
	s.PointerUp()
}

// Clear repaints the surface with the background color.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas.Clear(s.background)
}

// strokeTo draws from the last pointer position to p. Caller must hold the lock.
func (s *Surface) strokeTo(p image.Point) {
	c := s.brushColor
	if s.tool == Eraser {
		c = s.background
	}
	Stroke(s.canvas.Image(), s.last, p, s.lineWidth, c)
	s.last = p
}

// fillBucket fills a snapshot of the canvas and commits it back on success.
// Caller must hold the lock.
func (s *Surface) fillBucket(x, y int) error {
	snap := s.canvas.Snapshot()
	if err := FillAt(snap, x, y, s.fillColor); err != nil {
		return err
	}
	s.canvas.Commit(snap)
	return nil
}
