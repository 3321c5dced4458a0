package daub

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareScript = `
# draw a black square and fill it with red
width 3
brush #000000
stroke 2,2 17,2 17,17 2,17 2,2
fill 10,10 #ff0000
`

func TestScript_Parse(t *testing.T) {
	script, err := ParseScript(strings.NewReader(squareScript))
	require.NoError(t, err)
	require.Len(t, script, 4)

	assert.Equal(t, Action{Line: 3, Kind: actionWidth, Width: 3}, script[0])
	assert.Equal(t, Action{Line: 4, Kind: actionBrush, Color: Black}, script[1])
	assert.Equal(t, 5, script[2].Line)
	assert.Equal(t, []image.Point{{2, 2}, {17, 2}, {17, 17}, {2, 17}, {2, 2}}, script[2].Points)
	assert.Equal(t, Action{
		Line:     6,
		Kind:     actionFill,
		Color:    red,
		Points:   []image.Point{{10, 10}},
		HasColor: true,
	}, script[3])
}

func TestScript_ParseErrorsShouldReportTheLine(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		line   string
	}{
		{name: "unknown instruction", script: "tool brush\nspray 1,1", line: "line 2"},
		{name: "unknown tool", script: "tool spray", line: "line 1"},
		{name: "invalid color", script: "\n\nbrush #zzzzzz", line: "line 3"},
		{name: "invalid point", script: "down 1;2", line: "line 1"},
		{name: "missing point", script: "move", line: "line 1"},
		{name: "short stroke", script: "stroke 1,1", line: "line 1"},
		{name: "negative width", script: "width -1", line: "line 1"},
		{name: "NaN width", script: "width NaN\ndown 1,1", line: "line 1"},
		{name: "infinite width", script: "brush #ff0000\nwidth Inf", line: "line 2"},
		{name: "huge width", script: "width 1e6\ndown 1,1", line: "line 1"},
		{name: "extra arguments", script: "up 1,1", line: "line 1"},
		{name: "fill without point", script: "fill", line: "line 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tc.script))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestScript_ApplyShouldMatchDirectCalls(t *testing.T) {
	script, err := ParseScript(strings.NewReader(squareScript))
	require.NoError(t, err)

	replayed := NewSurface(20, 20)
	require.NoError(t, script.Apply(replayed))

	direct := NewSurface(20, 20)
	direct.SetLineWidth(3)
	direct.SetBrushColor(Black)
	drawSquare(t, direct, 2, 17)
	direct.SetTool(FillBucket)
	direct.SetFillColor(red)
	require.NoError(t, direct.PointerDown(10, 10))
	direct.PointerUp()

	assert.True(t, bytes.Equal(direct.Canvas().Image().Pix, replayed.Canvas().Image().Pix))
	assert.Equal(t, Brush, replayed.Tool(), "shorthands should restore the active tool")
}

func TestScript_PointerInstructions(t *testing.T) {
	script, err := ParseScript(strings.NewReader(`
tool eraser
width 1
down 0,0
move 1,0 2,0
up
tool fill
fillcolor #00ff00
down 0,2
up
`))
	require.NoError(t, err)

	s := NewSurface(3, 3)
	s.Canvas().Clear(red)
	require.NoError(t, script.Apply(s))

	for x := 0; x < 3; x++ {
		assert.Equal(t, White, s.Canvas().Pixel(x, 0))
		assert.Equal(t, green, s.Canvas().Pixel(x, 1))
		assert.Equal(t, green, s.Canvas().Pixel(x, 2))
	}
	assert.Equal(t, FillBucket, s.Tool())
}

func TestScript_ApplyShouldStopAtTheFirstError(t *testing.T) {
	script, err := ParseScript(strings.NewReader("fill 1,1 #ff0000\nfill 9,9\nclear"))
	require.NoError(t, err)

	s := NewSurface(4, 4)
	err = script.Apply(s)

	var oob *OutOfBoundsError
	require.True(t, errors.As(err, &oob))
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, red, s.Canvas().Pixel(0, 0), "clear should not run")
}

func TestScript_ParsePoint(t *testing.T) {
	p, err := ParsePoint("12,-3")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(12, -3), p)

	for _, in := range []string{"12", "a,1", "1,b", ""} {
		_, err := ParsePoint(in)
		assert.Error(t, err, "input %q", in)
	}
}
