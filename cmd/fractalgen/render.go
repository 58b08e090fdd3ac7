package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/console"
	"github.com/gogpu/fractal/internal/palette"
	"github.com/gogpu/fractal/internal/raster"
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":   profile.CPUProfile,
	"mem":   profile.MemProfile,
	"trace": profile.TraceProfile,
}

func startProfile(mode string) interface{ Stop() } {
	return profile.Start(profileModes[mode], profile.ProfilePath("."), profile.Quiet, profile.NoShutdownHook)
}

// buildConfig maps the parsed flags onto a render configuration. The size
// is multiplied by the supersample factor.
func buildConfig(a args) (fractal.Config, error) {
	cfg := fractal.DefaultConfig()
	if a.Width > fractal.MaxPixels/a.Supersample || a.Height > fractal.MaxPixels/a.Supersample {
		return cfg, fmt.Errorf("%w: %dx%d at %dx supersampling exceeds %d pixels",
			fractal.ErrInvalidConfig, a.Width, a.Height, a.Supersample, fractal.MaxPixels)
	}
	cfg.Variant = a.Fractal
	cfg.Width = a.Width * a.Supersample
	cfg.Height = a.Height * a.Supersample
	cfg.Center = complex(a.XCenter, a.YCenter)
	cfg.Zoom = a.Zoom
	cfg.Radius = a.Radius
	cfg.MaxIterations = a.Iterations
	cfg.Light = a.Light
	cfg.Depth = a.Depth
	cfg.JuliaC = complex(a.CReal, a.CImag)

	if a.Palette != "" {
		p, err := loadPalette(a.Palette, a.PaletteDir)
		if err != nil {
			return cfg, err
		}
		cfg.Palette = p
	}
	if a.Mix != "" {
		p, err := loadPalette(a.Mix, a.PaletteDir)
		if err != nil {
			return cfg, err
		}
		cfg.Mix = &p
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadPalette(name, dir string) (fractal.Palette, error) {
	path, err := palette.Resolve(name, dir)
	if err != nil {
		return fractal.Palette{}, err
	}
	return palette.Load(path)
}

func engineOptions(a args) []fractal.Option {
	return []fractal.Option{
		fractal.WithParallel(!a.Sequential),
		fractal.WithRowParallel(a.RowParallel),
		fractal.WithWorkers(a.Workers),
	}
}

func selection(a args, cfg fractal.Config, vp fractal.Viewport) []console.Field {
	mode := "parallel (columns)"
	switch {
	case a.Sequential:
		mode = "sequential"
	case a.RowParallel:
		mode = "parallel (columns x row bands)"
	}
	paletteName := a.Palette
	if paletteName == "" {
		paletteName = "hsv"
	}

	fields := []console.Field{
		{Name: "fractal", Value: cfg.Variant.String()},
		{Name: "size", Value: fmt.Sprintf("%dx%d", a.Width, a.Height)},
		{Name: "center", Value: fmt.Sprintf("(%g, %g)", real(cfg.Center), imag(cfg.Center))},
		{Name: "zoom", Value: fmt.Sprintf("%g", cfg.Zoom)},
		{Name: "plane", Value: fmt.Sprintf("%g x %g", vp.PlaneWidth(), vp.PlaneHeight())},
		{Name: "x range", Value: fmt.Sprintf("[%g, %g]", vp.XMin(), vp.XMax())},
		{Name: "y range", Value: fmt.Sprintf("[%g, %g]", vp.YMin(), vp.YMax())},
		{Name: "iterations", Value: fmt.Sprintf("%d", cfg.MaxIterations)},
		{Name: "radius", Value: fmt.Sprintf("%g", cfg.Radius)},
	}
	if cfg.Variant == fractal.Julia {
		fields = append(fields, console.Field{Name: "c", Value: fmt.Sprintf("%g", cfg.JuliaC)})
	}
	if a.Mix != "" {
		paletteName += " + " + a.Mix
	}
	fields = append(fields,
		console.Field{Name: "palette", Value: paletteName},
		console.Field{Name: "light", Value: fmt.Sprintf("%g", cfg.Light)},
		console.Field{Name: "depth", Value: fmt.Sprintf("%d bytes", cfg.Depth)},
		console.Field{Name: "mode", Value: mode},
		console.Field{Name: "output", Value: a.Output},
	)
	if a.Supersample > 1 {
		fields = append(fields, console.Field{Name: "supersample", Value: fmt.Sprintf("%dx", a.Supersample)})
	}
	return fields
}

// render builds the engine, runs it and writes the output image.
func render(a args, out *console.Printer, progressOut io.Writer) error {
	cfg, err := buildConfig(a)
	if err != nil {
		return err
	}

	opts := engineOptions(a)
	var bar *console.Progress
	if !out.Quiet() && isTerminal(progressOut) {
		bar = console.StartProgress(progressOut)
		opts = append(opts, fractal.WithProgress(bar.Report))
	}

	eng, err := fractal.NewEngine(cfg, opts...)
	if err != nil {
		if bar != nil {
			_ = bar.Finish()
		}
		return err
	}
	out.Summary("fractalgen", selection(a, cfg, eng.Viewport()))

	start := time.Now()
	err = eng.Render()
	if bar != nil {
		if ferr := bar.Finish(); ferr != nil {
			out.Warnf("%v", ferr)
		}
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", cfg.Variant, err)
	}
	elapsed := time.Since(start)

	img := eng.Raster().Image()
	if a.Supersample > 1 {
		img = raster.Downsample(img, a.Width, a.Height)
	}
	if err := raster.SaveImage(a.Output, img); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	out.Successf("%s", p.Sprintf("rendered %d pixels in %v, largest iteration count %d",
		cfg.Width*cfg.Height, elapsed.Round(time.Millisecond), eng.Stats().Largest()))
	out.Infof("wrote %s", a.Output)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
