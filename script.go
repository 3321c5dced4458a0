package daub

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Action is a single instruction of a paint script.
type Action struct {
	Line   int
	Kind   string
	Tool   Tool
	Color  color.NRGBA
	Width  float64
	Points []image.Point

	// HasColor is set when a fill instruction carries its own color.
	HasColor bool
}

// Script is a parsed paint script.
//
// Each line of a script holds one instruction:
//
//	tool brush|fill|eraser   select the active tool
//	brush #rrggbb            set the brush color
//	fillcolor #rrggbb        set the fill color
//	width 5                  set the line width
//	down x,y                 press the pointer
//	move x,y [x,y ...]       move the pointer
//	up                       release the pointer
//	clear                    repaint with the background color
//	fill x,y [#rrggbb]       fill the region under x,y
//	stroke x,y x,y ...       draw a polyline with the brush color
//
// Blank lines and lines starting with # are ignored.
type Script []Action

const (
	actionTool      = "tool"
	actionBrush     = "brush"
	actionFillColor = "fillcolor"
	actionWidth     = "width"
	actionDown      = "down"
	actionMove      = "move"
	actionUp        = "up"
	actionClear     = "clear"
	actionFill      = "fill"
	actionStroke    = "stroke"
)

// ParseScript reads a paint script from r.
func ParseScript(r io.Reader) (Script, error) {
	var (
		script Script
		line   int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		act, err := parseAction(strings.Fields(text))
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: %q", line, text)
		}
		act.Line = line
		script = append(script, act)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read the script")
	}
	return script, nil
}

func parseAction(fields []string) (Action, error) {
	var (
		act  = Action{Kind: fields[0]}
		args = fields[1:]
		err  error
	)

	switch act.Kind {
	case actionTool:
		if len(args) != 1 {
			return act, errors.New("tool expects a tool name")
		}
		act.Tool, err = ParseTool(args[0])
	case actionBrush, actionFillColor:
		if len(args) != 1 {
			return act, errors.Errorf("%s expects a color", act.Kind)
		}
		act.Color, err = ParseHexColor(args[0])
	case actionWidth:
		if len(args) != 1 {
			return act, errors.New("width expects a number")
		}
		act.Width, err = strconv.ParseFloat(args[0], 64)
		if err == nil && !validLineWidth(act.Width) {
			err = errors.Errorf("width should be greater than zero and at most %d", MaxLineWidth)
		}
	case actionDown:
		if len(args) != 1 {
			return act, errors.New("down expects a single point")
		}
		act.Points, err = parsePoints(args)
	case actionMove:
		if len(args) == 0 {
			return act, errors.New("move expects at least one point")
		}
		act.Points, err = parsePoints(args)
	case actionUp, actionClear:
		if len(args) != 0 {
			return act, errors.Errorf("%s takes no arguments", act.Kind)
		}
	case actionFill:
		if len(args) < 1 || len(args) > 2 {
			return act, errors.New("fill expects a point and an optional color")
		}
		act.Points, err = parsePoints(args[:1])
		if err == nil && len(args) == 2 {
			act.Color, err = ParseHexColor(args[1])
			act.HasColor = true
		}
	case actionStroke:
		if len(args) < 2 {
			return act, errors.New("stroke expects at least two points")
		}
		act.Points, err = parsePoints(args)
	default:
		return act, errors.Errorf("unknown instruction %q", act.Kind)
	}
	return act, err
}

func parsePoints(args []string) ([]image.Point, error) {
	points := make([]image.Point, 0, len(args))
	for _, arg := range args {
		p, err := ParsePoint(arg)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// ParsePoint parses a point written as x,y.
func ParsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, errors.Errorf("invalid point %q, expected x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, errors.Errorf("invalid point %q, expected x,y", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, errors.Errorf("invalid point %q, expected x,y", s)
	}
	return image.Pt(x, y), nil
}

// Apply replays the script on the surface. It stops at the first failing action.
func (sc Script) Apply(s *Surface) error {
	for _, act := range sc {
		if err := act.apply(s); err != nil {
			return errors.Wrapf(err, "line %d", act.Line)
		}
	}
	return nil
}

func (act Action) apply(s *Surface) error {
	switch act.Kind {
	case actionTool:
		s.SetTool(act.Tool)
	case actionBrush:
		s.SetBrushColor(act.Color)
	case actionFillColor:
		s.SetFillColor(act.Color)
	case actionWidth:
		s.SetLineWidth(act.Width)
	case actionDown:
		return s.PointerDown(act.Points[0].X, act.Points[0].Y)
	case actionMove:
		for _, p := range act.Points {
			s.PointerMove(p.X, p.Y)
		}
	case actionUp:
		s.PointerUp()
	case actionClear:
		s.Clear()
	case actionFill:
		prev := s.Tool()
		defer s.SetTool(prev)

		if act.HasColor {
			s.SetFillColor(act.Color)
		}
		s.SetTool(FillBucket)
		p := act.Points[0]
		if err := s.PointerDown(p.X, p.Y); err != nil {
			return err
		}
		s.PointerUp()
	case actionStroke:
		prev := s.Tool()
		defer s.SetTool(prev)

		s.SetTool(Brush)
		first := act.Points[0]
		if err := s.PointerDown(first.X, first.Y); err != nil {
			return err
		}
		for _, p := range act.Points[1:] {
			s.PointerMove(p.X, p.Y)
		}
		s.PointerUp()
	default:
		return errors.Errorf("unknown instruction %q", act.Kind)
	}
	return nil
}
