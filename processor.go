package daub

import (
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/esimov/daub/utils"
	"github.com/pkg/errors"
)

// Processor options
type Processor struct {
	// Width and Height set the size of the blank canvas used when there is no source image.
	Width  int
	Height int
	// Background is the color of the blank canvas and of the eraser. White if nil.
	Background *color.NRGBA
	// LineWidth of the brush and the eraser. The default line width is used if zero.
	LineWidth float64
	// Script is replayed on the surface before the one-shot fill.
	Script Script
	// FillSeed, if set, fills the region under this point with FillColor.
	FillSeed  *image.Point
	FillColor color.NRGBA
	// Format is the output format used for destinations which are not files.
	Format  string
	Spinner *utils.Spinner
}

// Paint replays the processor operations over a copy of img, or over
// a blank canvas if img is nil, and returns the resulting image.
func (p *Processor) Paint(img image.Image) (*image.NRGBA, error) {
	if p.LineWidth != 0 && !validLineWidth(p.LineWidth) {
		return nil, errors.Errorf("invalid line width %v, expected a value in the (0, %d] range", p.LineWidth, MaxLineWidth)
	}

	var s *Surface
	if img != nil {
		s = NewSurfaceFromImage(img)
	} else {
		if p.Width <= 0 || p.Height <= 0 {
			return nil, errors.Errorf("invalid canvas size %dx%d", p.Width, p.Height)
		}
		s = NewSurface(p.Width, p.Height)
		s.Canvas().Clear(p.background())
	}
	s.SetBackground(p.background())
	if p.LineWidth != 0 {
		s.SetLineWidth(p.LineWidth)
	}

	if err := p.Script.Apply(s); err != nil {
		return nil, errors.Wrap(err, "could not apply the paint script")
	}

	if p.FillSeed != nil {
		s.SetFillColor(p.FillColor)
		s.SetTool(FillBucket)
		if err := s.PointerDown(p.FillSeed.X, p.FillSeed.Y); err != nil {
			return nil, errors.Wrap(err, "could not fill")
		}
		s.PointerUp()
	}

	return s.Canvas().Image(), nil
}

// Process is the main entry point which decodes the source image,
// paints over it and encodes the result into the output.
// A nil reader paints over a blank canvas.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	var src image.Image
	if r != nil {
		img, err := decode(r)
		if err != nil {
			return err
		}
		src = img
	}

	res, err := p.Paint(src)
	if err != nil {
		return err
	}

	Logger().Info("painted image",
		slog.Int("width", res.Rect.Dx()),
		slog.Int("height", res.Rect.Dy()),
		slog.Int("actions", len(p.Script)),
	)

	return encodeImg(w, res, p.Format)
}

func (p *Processor) background() color.NRGBA {
	if p.Background == nil {
		return White
	}
	return *p.Background
}
