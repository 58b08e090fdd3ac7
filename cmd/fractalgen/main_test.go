package main

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexflint/go-arg"

	"github.com/gogpu/fractal"
)

func TestParseArgs_Defaults(t *testing.T) {
	a, err := parseArgs(nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Fractal != fractal.Mandelbrot || a.Width != 320 || a.Height != 200 {
		t.Errorf("defaults = %v %dx%d", a.Fractal, a.Width, a.Height)
	}
	if a.XCenter != -0.5 || a.Zoom != 1 || a.Iterations != 256 || a.Radius != 10e19 {
		t.Errorf("plane defaults = %g %g %d %g", a.XCenter, a.Zoom, a.Iterations, a.Radius)
	}
	if a.Output != "output.bmp" || a.Depth != 3 || a.Supersample != 1 {
		t.Errorf("output defaults = %q %d %d", a.Output, a.Depth, a.Supersample)
	}

	cfg, err := buildConfig(a)
	if err != nil {
		t.Fatal(err)
	}
	def := fractal.DefaultConfig()
	if cfg.Center != def.Center || cfg.JuliaC != def.JuliaC || cfg.Palette != def.Palette {
		t.Error("default flags do not produce the default configuration")
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want error
	}{
		{"same palette", []string{"--palette", "a.txt", "--mix", "a.txt"}, errSamePalette},
		{"blank output", []string{"--output", "  "}, errNoOutput},
		{"supersample", []string{"--supersample", "0"}, nil},
		{"profile", []string{"--profile", "block"}, nil},
		{"fractal", []string{"--fractal", "sierpinski"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.argv)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		if _, err := parseArgs([]string{flag}); !errors.Is(err, arg.ErrHelp) {
			t.Errorf("parseArgs(%s) error = %v, want arg.ErrHelp", flag, err)
		}

		var stdout, stderr bytes.Buffer
		if code := run([]string{flag}, &stdout, &stderr); code != 0 {
			t.Errorf("run(%s) = %d, want 0", flag, code)
		}
		for _, want := range []string{"Usage: fractalgen", "--fractal", "--supersample"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("run(%s) help missing %q:\n%s", flag, want, stdout.String())
			}
		}
		if stderr.Len() != 0 {
			t.Errorf("run(%s) wrote to stderr: %q", flag, stderr.String())
		}
	}
}

func TestBuildConfig(t *testing.T) {
	a, err := parseArgs([]string{"-f", "Julia", "--width", "30", "--height", "20", "-s", "3", "--creal", "0.285", "--cimag", "0.01"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(a)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Variant != fractal.Julia {
		t.Errorf("variant = %v", cfg.Variant)
	}
	if cfg.Width != 90 || cfg.Height != 60 {
		t.Errorf("size = %dx%d, want 90x60", cfg.Width, cfg.Height)
	}
	if cfg.JuliaC != complex(0.285, 0.01) {
		t.Errorf("c = %v", cfg.JuliaC)
	}

	a.Light = 2
	if _, err := buildConfig(a); !errors.Is(err, fractal.ErrInvalidConfig) {
		t.Errorf("light 2: error = %v, want ErrInvalidConfig", err)
	}

	a.Light = 0
	a.Width = math.MaxInt/2 + 1
	if _, err := buildConfig(a); !errors.Is(err, fractal.ErrInvalidConfig) {
		t.Errorf("huge width: error = %v, want ErrInvalidConfig", err)
	}

	a.Width = 30
	a.Palette = "missing.txt"
	a.PaletteDir = t.TempDir()
	if _, err := buildConfig(a); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing palette: error = %v, want os.ErrNotExist", err)
	}
}

func TestBuildConfig_PaletteFiles(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"red.txt":  "1 0 0\n",
		"blue.txt": "0 0 1\n",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	a, err := parseArgs([]string{"--palette", "red.txt", "--mix", "blue.txt", "--palette-dir", dir})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(a)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Palette[0].R != 255 || cfg.Mix == nil || cfg.Mix[0].B != 255 {
		t.Errorf("palette[0] = %v, mix = %v", cfg.Palette[0], cfg.Mix)
	}
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "julia.png")
	var stdout, stderr bytes.Buffer

	code := run([]string{
		"--fractal", "julia", "--xcenter", "0",
		"--width", "24", "--height", "16", "--iterations", "32",
		"--depth", "4", "--supersample", "2", "--row-parallel",
		"--output", out,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"Julia", "24x16", "rendered"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout.String())
		}
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("image size = %v, want 24x16", b)
	}
}

func TestRun_Failures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		argv []string
	}{
		{"spiderweb", []string{"--fractal", "spiderweb", "--output", filepath.Join(dir, "s.bmp")}},
		{"bad extension", []string{"--width", "8", "--height", "8", "--output", filepath.Join(dir, "s.gif")}},
		{"same palette", []string{"--palette", "x", "--mix", "x"}},
		{"zero zoom", []string{"--zoom", "0", "--output", filepath.Join(dir, "z.bmp")}},
		{"huge image", []string{"--width", "100000", "--height", "100000", "--output", filepath.Join(dir, "h.bmp")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			argv := append([]string{"--quiet"}, tt.argv...)
			if code := run(argv, &stdout, &stderr); code != 1 {
				t.Fatalf("run() = %d, want 1", code)
			}
			if !strings.Contains(stdout.String()+stderr.String(), "error: ") {
				t.Errorf("no error line in output: %q / %q", stdout.String(), stderr.String())
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	var opened []string
	saved := startViewer
	t.Cleanup(func() { startViewer = saved })
	startViewer = func(path string) error {
		opened = append(opened, path)
		return nil
	}

	out := filepath.Join(t.TempDir(), "open.bmp")
	var stdout, stderr bytes.Buffer
	code := run([]string{"--quiet", "--width", "8", "--height", "8", "--open", "--output", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if len(opened) != 1 || opened[0] != out {
		t.Errorf("opened = %v, want [%s]", opened, out)
	}

	errViewer := errors.New("no viewer")
	startViewer = func(string) error { return errViewer }
	if err := openFile("relative.bmp"); !errors.Is(err, errViewer) {
		t.Errorf("openFile() error = %v, want %v", err, errViewer)
	}

	// A failing viewer is reported but does not fail the render.
	stdout.Reset()
	code = run([]string{"--quiet", "--width", "8", "--height", "8", "--open", "--output", out}, &stdout, &stderr)
	if code != 0 {
		t.Errorf("run() = %d with failing viewer, want 0", code)
	}
	if !strings.Contains(stdout.String(), "warning: ") {
		t.Errorf("no warning line in %q", stdout.String())
	}
}
