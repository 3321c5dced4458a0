package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/daub/"))
	assert.False(t, IsValidUrl("testdata/sample.png"))
	assert.False(t, IsValidUrl("-"))
	assert.False(t, IsValidUrl(""))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	dir := t.TempDir()

	gif := filepath.Join(dir, "sample.gif")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"), 0644))
	ctype, err := DetectContentType(gif)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", ctype)

	txt := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0644))
	ctype, err = DetectContentType(txt)
	require.NoError(t, err)
	assert.False(t, strings.Contains(ctype, "image"))

	_, err = DetectContentType(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
	assert.Equal(t, "2d 3h 0m 0.00s", FormatTime(51*time.Hour))
}

func TestUtils_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"fail"+DefaultColor, DecorateText("fail", ErrorMessage))
	assert.Equal(t, SuccessColor+"ok"+DefaultColor, DecorateText("ok", SuccessMessage))
	assert.Equal(t, "raw", DecorateText("raw", MessageType(42)))
}

func TestUtils_Contains(t *testing.T) {
	assert.True(t, Contains([]string{".png", ".jpg"}, ".jpg"))
	assert.False(t, Contains([]string{".png", ".jpg"}, ".gif"))
	assert.False(t, Contains(nil, 1))
}

func TestUtils_Math(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, 5.5, Max(5.5, -1))
	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 0.25, Abs(0.25))
	assert.Equal(t, 10, Clamp(12, 0, 10))
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 7, Clamp(7, 0, 10))
}
