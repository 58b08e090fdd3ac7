// Command fractalgen renders a Mandelbrot, Julia or Newton fractal to an
// image file.
//
// Usage:
//
//	fractalgen --fractal julia --width 1024 --height 768 --output julia.png
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/console"
)

// maxSupersample bounds the render size multiplier.
const maxSupersample = 8

type args struct {
	Fractal     fractal.Variant `arg:"-f,--fractal" default:"mandelbrot" help:"fractal to render: mandelbrot, julia, newton or spiderweb"`
	Width       int             `arg:"--width" default:"320" help:"image width in pixels"`
	Height      int             `arg:"--height" default:"200" help:"image height in pixels"`
	XCenter     float64         `arg:"-x,--xcenter" default:"-0.5" help:"real part of the image centre"`
	YCenter     float64         `arg:"-y,--ycenter" default:"0" help:"imaginary part of the image centre"`
	Zoom        float64         `arg:"-z,--zoom" default:"1" help:"zoom factor; the plane is 8/zoom wide"`
	Radius      float64         `arg:"-r,--radius" default:"10e19" help:"escape radius"`
	Iterations  uint64          `arg:"-i,--iterations" default:"256" help:"maximum iterations per pixel"`
	Light       float64         `arg:"-l,--light" default:"0" help:"palette lightening in [0, 1]"`
	Depth       int             `arg:"-d,--depth" default:"3" help:"bytes per pixel: 1, 3 or 4"`
	CReal       float64         `arg:"--creal" default:"-0.2" help:"real part of the Julia constant"`
	CImag       float64         `arg:"--cimag" default:"0.75" help:"imaginary part of the Julia constant"`
	Palette     string          `arg:"-p,--palette" help:"palette file or name under --palette-dir (default: HSV wheel)"`
	Mix         string          `arg:"-m,--mix" help:"second palette blended into --palette"`
	PaletteDir  string          `arg:"--palette-dir" default:"palettes" help:"directory searched for palette names"`
	Output      string          `arg:"-o,--output" default:"output.bmp" help:"output file (.bmp, .png, .tif)"`
	Sequential  bool            `arg:"--sequential" help:"render on a single goroutine, row by row"`
	RowParallel bool            `arg:"--row-parallel" help:"split columns into row bands"`
	Workers     int             `arg:"-w,--workers" default:"0" help:"worker goroutines (0: GOMAXPROCS)"`
	Supersample int             `arg:"-s,--supersample" default:"1" help:"render N times larger and downsample"`
	Open        bool            `arg:"--open" help:"open the image when done"`
	Quiet       bool            `arg:"-q,--quiet" help:"only print warnings and errors"`
	Verbose     bool            `arg:"-v,--verbose" help:"log engine activity to stderr"`
	Profile     string          `arg:"--profile" help:"write a cpu, mem or trace profile"`
}

func (args) Description() string {
	return "fractalgen renders escape-time and Newton fractals into BMP, PNG or TIFF images."
}

var (
	errSamePalette = errors.New("mix palette must differ from the main palette")
	errNoOutput    = errors.New("output file name must not be empty")
)

// validate checks the flag combinations the parser cannot express.
// Value ranges are checked later by fractal.Config.Validate.
func (a *args) validate() error {
	if a.Mix != "" && a.Mix == a.Palette {
		return errSamePalette
	}
	a.Output = strings.TrimSpace(a.Output)
	if a.Output == "" {
		return errNoOutput
	}
	if a.Supersample < 1 || a.Supersample > maxSupersample {
		return fmt.Errorf("supersample must be between 1 and %d, got %d", maxSupersample, a.Supersample)
	}
	if _, ok := profileModes[a.Profile]; a.Profile != "" && !ok {
		return fmt.Errorf("unknown profile mode %q (want cpu, mem or trace)", a.Profile)
	}
	return nil
}

// helpRequest is returned by parseArgs for -h and --help. It matches
// arg.ErrHelp under errors.Is.
type helpRequest struct {
	parser *arg.Parser
}

func (h *helpRequest) Error() string { return arg.ErrHelp.Error() }

func (h *helpRequest) Is(target error) bool { return target == arg.ErrHelp }

// parseArgs parses the command line without exiting.
func parseArgs(argv []string) (args, error) {
	var a args
	p, err := arg.NewParser(arg.Config{Program: "fractalgen"}, &a)
	if err != nil {
		return a, err
	}
	if err := p.Parse(argv); err != nil {
		if errors.Is(err, arg.ErrHelp) {
			return a, &helpRequest{parser: p}
		}
		return a, err
	}
	if err := a.validate(); err != nil {
		return a, err
	}
	return a, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	out := console.NewPrinter(stderr, false)

	a, err := parseArgs(argv)
	if err != nil {
		var help *helpRequest
		if errors.As(err, &help) {
			help.parser.WriteHelp(stdout)
			return 0
		}
		out.Errorf("%v", err)
		return 1
	}
	out = console.NewPrinter(stdout, a.Quiet)

	level := slog.LevelWarn
	if a.Verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if a.Profile != "" {
		defer startProfile(a.Profile).Stop()
	}

	if err := render(a, out, stderr); err != nil {
		out.Errorf("%v", err)
		return 1
	}

	if a.Open {
		if err := openFile(a.Output); err != nil {
			out.Warnf("could not open %s: %v", a.Output, err)
		}
	}
	return 0
}
