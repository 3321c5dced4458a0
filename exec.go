package daub

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/esimov/daub/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the source and destination of an execution.
type Ops struct {
	// Src is a file, a directory, an URL, the pipe name or empty for a blank canvas.
	Src, Dst, PipeName string
	Workers            int
	// Stderr receives the status messages. Defaults to os.Stderr.
	Stderr io.Writer
}

// result holds the relevant information about the painting process and the generated image.
type result struct {
	path string
	err  error
}

// reportedError marks an error already displayed by printOpStatus.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute paints over the source and writes the result into the destination.
// In case the source is a directory, every supported image inside it is
// processed concurrently and saved with the same name in the destination directory.
// Every failure is reported on the Stderr writer before being returned.
func (p *Processor) Execute(op *Ops) error {
	if op.Stderr == nil {
		op.Stderr = os.Stderr
	}
	if p.Spinner == nil {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("🖌 DAUB", utils.StatusMessage),
			utils.DecorateText("⇢ painting...", utils.DefaultMessage),
		)
		p.Spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
		p.Spinner.SetWriter(op.Stderr)
	}

	err := p.execute(op)
	if err == nil {
		return nil
	}
	var rerr *reportedError
	if errors.As(err, &rerr) {
		return rerr.err
	}
	name := op.Src
	if name == "" {
		name = op.Dst
	}
	op.printOpStatus(name, err)
	return err
}

func (p *Processor) execute(op *Ops) error {
	now := time.Now()

	// A missing source paints over a blank canvas.
	if op.Src == "" {
		err := op.process(p, "", op.Dst)
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return &reportedError{err}
		}
		op.printTime(now)
		return nil
	}

	src := op.Src
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if f != nil {
			defer os.Remove(f.Name())
			defer f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := op.processDir(p, src); err != nil {
			return err
		}
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		ext := filepath.Ext(op.Dst)
		if !isValidExtension(ext, validExtensions) && op.Dst != op.PipeName {
			return fmt.Errorf("%v file type not supported", ext)
		}

		err = op.process(p, src, op.Dst)
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return &reportedError{err}
		}
	default:
		return fmt.Errorf("unsupported source %s", op.Src)
	}

	op.printTime(now)
	return nil
}

// processDir paints the supported images of the src directory using a pool of workers.
func (op *Ops) processDir(p *Processor, src string) error {
	var (
		wg     sync.WaitGroup
		failed error
	)
	// Create the destination directory if not exists.
	if _, err := os.Stat(op.Dst); err != nil {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, validExtensions)

	p.Spinner.Start()
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, op.Dst, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	// Consume the channel values.
	var results []result
	for res := range ch {
		if res.err != nil && failed == nil {
			failed = res.err
		}
		results = append(results, res)
	}
	p.Spinner.Stop()

	for _, res := range results {
		op.printOpStatus(res.path, res.err)
	}

	if err := <-errc; err != nil {
		return err
	}
	if failed != nil {
		return &reportedError{failed}
	}
	return nil
}

// consumer reads the path names from the paths channel and calls the painter against the source image.
func (op *Ops) consumer(
	p *Processor,
	dest string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		dst := filepath.Join(dest, filepath.Base(src))
		err := op.paint(p, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: dst,
			err:  err,
		}:
		}
	}
}

// process paints a single image, showing the progress indicator meanwhile.
func (op *Ops) process(p *Processor, in, out string) error {
	p.Spinner.StopMsg = ""
	p.Spinner.Start()
	defer p.Spinner.Stop()

	return op.paint(p, in, out)
}

// paint calls the processor over the source image and removes the
// destination file in case of an error.
func (op *Ops) paint(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if img, ok := src.(*os.File); ok && img != os.Stdin {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	if err = p.Process(src, dst); err != nil {
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			f.Close()
			// remove the generated image file in case of an error
			os.Remove(f.Name())
		}
		return err
	}

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		return f.Close()
	}
	return nil
}

// pathToFile converts the source and destination paths to readable and writable files.
// An empty source results in a nil reader.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
	)

	switch in {
	case "":
	case op.PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	default:
		if err := checkImageFile(in); err != nil {
			return nil, nil, err
		}
		f, err := os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
		src = f
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
		dst = f
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the painting process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(op.Stderr, "%s%s",
			utils.DecorateText("\nError painting the image: "+fname, utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(op.Stderr, "\nThe image has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

func (op *Ops) printTime(start time.Time) {
	fmt.Fprintf(op.Stderr, "\nExecution time: %s\n",
		utils.DecorateText(utils.FormatTime(time.Since(start)), utils.SuccessMessage),
	)
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			if isValidExtension(filepath.Ext(f.Name()), srcExts) {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
