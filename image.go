package daub

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/daub/utils"
	"golang.org/x/image/bmp"
)

// Supported output formats.
const (
	FormatJPEG = "jpg"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatGIF  = "gif"
)

// validExtensions lists the file extensions accepted as source and destination.
var validExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// checkImageFile verifies by its content that src is an image file.
func checkImageFile(src string) error {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return fmt.Errorf("could not open the source file: %w", err)
	}

	if !strings.Contains(ctype, "image") {
		return fmt.Errorf("%s is not an image file", filepath.Base(src))
	}
	return nil
}

// decode decodes an image from r, applying the EXIF orientation if present.
func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the source image: %w", err)
	}
	return img, nil
}

// encodeImg encodes an image to a destination of type io.Writer.
// Files are encoded by their extension, any other writer with the fallback format.
func encodeImg(w io.Writer, img *image.NRGBA, fallback string) error {
	format := fallback
	if f, ok := w.(*os.File); ok {
		if ext := filepath.Ext(f.Name()); ext != "" {
			format = strings.TrimPrefix(strings.ToLower(ext), ".")
		}
	}

	switch format {
	case "", FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG, "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(100))
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatGIF:
		return imaging.Encode(w, img, imaging.GIF)
	default:
		return errors.New("unsupported image format")
	}
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	return utils.Contains(extensions, strings.ToLower(ext))
}
