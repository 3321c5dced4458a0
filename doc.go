/*
Package daub is a headless raster painting library supporting freehand drawing,
erasing and flood filling over an RGBA pixel buffer.

The package provides a command line interface which replays paint scripts over images
or blank canvases. To check the supported commands type:

	$ daub --help

The flood fill works over any type implementing the PixelBuffer interface:

	package main

	import (
		"fmt"
		"image/color"

		"github.com/esimov/daub"
	)

	func main() {
		canvas := daub.NewCanvas(100, 100, daub.White)
		red := color.NRGBA{R: 0xff, A: 0xff}

		if err := daub.Fill(canvas, 10, 10, canvas.Pixel(10, 10), red); err != nil {
			fmt.Printf("Error filling the canvas: %s", err.Error())
		}
	}

For a pointer driven workflow use a Surface:

	s := daub.NewSurface(100, 100)
	s.SetBrushColor(color.NRGBA{B: 0xff, A: 0xff})
	s.PointerDown(10, 10)
	s.PointerMove(90, 90)
	s.PointerUp()

	s.SetTool(daub.FillBucket)
	s.PointerDown(80, 10)
*/
package daub
