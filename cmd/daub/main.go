package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/esimov/daub"
	"github.com/esimov/daub/utils"
)

const HelpBanner = `
┌┬┐┌─┐┬ ┬┌┐
 ││├─┤│ │├┴┐
─┴┘┴ ┴└─┘└─┘

Headless raster painting with brush, eraser and flood fill.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "", "Source image, directory, URL or - for stdin (blank canvas if empty)")
	destination = flag.String("out", pipeName, "Destination")
	width       = flag.Int("width", 0, "Blank canvas width")
	height      = flag.Int("height", 0, "Blank canvas height")
	background  = flag.String("bg", "#ffffff", "Background color, #rrggbbaa for a translucent one")
	lineWidth   = flag.Float64("line", daub.DefaultLineWidth, fmt.Sprintf("Brush and eraser line width (max %d)", daub.MaxLineWidth))
	scriptPath  = flag.String("script", "", "Paint script")
	fillSeed    = flag.String("fill", "", "Fill the region under the x,y point")
	fillColor   = flag.String("color", "#000000", "Fill color")
	format      = flag.String("format", daub.FormatPNG, "Output format when writing to stdout")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	watch       = flag.Bool("watch", false, "Repaint each time the script or the source changes")
	debug       = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		daub.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *source == "" && (*width <= 0 || *height <= 0) {
		flag.Usage()
		fatalf("\nPlease provide a source image or the blank canvas size!")
	}
	if *scriptPath == "" && *fillSeed == "" {
		flag.Usage()
		fatalf("\nPlease provide a paint script or a fill point!")
	}

	proc, err := newProcessor()
	if err != nil {
		fatalf("%v", err)
	}

	op := &daub.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-signalChan
		if proc.Spinner != nil {
			proc.Spinner.RestoreCursor()
		}
		if *watch {
			close(done)
			return
		}
		os.Exit(1)
	}()

	// The executor reports the errors on stderr.
	if err := proc.Execute(op); err != nil && !*watch {
		os.Exit(1)
	}
	if !*watch {
		return
	}

	var paths []string
	if *scriptPath != "" {
		paths = append(paths, *scriptPath)
	}
	if *source != "" && *source != pipeName && !utils.IsValidUrl(*source) {
		paths = append(paths, *source)
	}
	fmt.Fprintln(os.Stderr, utils.DecorateText("\nWatching for changes, press CTRL-C to exit...", utils.StatusMessage))

	err = daub.Watch(done, paths, func(string) {
		p, err := newProcessor()
		if err != nil {
			fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
			return
		}
		p.Spinner = proc.Spinner
		// Errors are already reported by the executor.
		_ = p.Execute(op)
	})
	if err != nil {
		fatalf("%v", err)
	}
}

// newProcessor builds the processor from the command line flags, reading the paint script.
func newProcessor() (*daub.Processor, error) {
	bg, err := daub.ParseHexColor(*background)
	if err != nil {
		return nil, err
	}
	fc, err := daub.ParseHexColor(*fillColor)
	if err != nil {
		return nil, err
	}

	proc := &daub.Processor{
		Width:      *width,
		Height:     *height,
		Background: &bg,
		LineWidth:  *lineWidth,
		FillColor:  fc,
		Format:     *format,
	}

	if *fillSeed != "" {
		seed, err := daub.ParsePoint(*fillSeed)
		if err != nil {
			return nil, err
		}
		proc.FillSeed = &image.Point{X: seed.X, Y: seed.Y}
	}

	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			return nil, fmt.Errorf("unable to open the paint script: %w", err)
		}
		defer f.Close()

		proc.Script, err = daub.ParseScript(f)
		if err != nil {
			return nil, err
		}
	}
	return proc, nil
}

func fatalf(format string, args ...interface{}) {
	log.Fatalf("%s%s",
		utils.DecorateText(fmt.Sprintf(format, args...), utils.ErrorMessage),
		utils.DefaultColor,
	)
}
