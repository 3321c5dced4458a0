package daub

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_ParseHexColor(t *testing.T) {
	testCases := []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#ffffff", want: White},
		{in: "#000000", want: Black},
		{in: "ff0000", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "#0f8", want: color.NRGBA{G: 0xff, B: 0x88, A: 0xff}},
		{in: "#11223380", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{in: " #ABCDEF ", want: color.NRGBA{R: 0xab, G: 0xcd, B: 0xef, A: 0xff}},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColor_ParseHexColorShouldFail(t *testing.T) {
	for _, in := range []string{"", "#", "#ff", "#fffff", "#gggggg", "#ff00ff0", "#ff00ff00ff"} {
		_, err := ParseHexColor(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestColor_HexColor(t *testing.T) {
	assert.Equal(t, "#ffffff", HexColor(White))
	assert.Equal(t, "#ff000080", HexColor(color.NRGBA{R: 0xff, A: 0x80}))

	for _, hex := range []string{"#123456", "#fedcba01"} {
		c, err := ParseHexColor(hex)
		assert.NoError(t, err)
		assert.Equal(t, hex, HexColor(c))
	}
}

func TestColor_ColorsMatch(t *testing.T) {
	assert.True(t, ColorsMatch(White, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}))
	assert.False(t, ColorsMatch(White, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xfe}))
	assert.False(t, ColorsMatch(Black, color.NRGBA{B: 1, A: 0xff}))
}
