package fractal

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/fractal/internal/parallel"
	"github.com/gogpu/fractal/internal/raster"
)

// Engine runs the compute and paint phases of one render.
//
// An Engine owns its result grid and raster for its whole lifetime. Its
// methods are not safe for concurrent use; parallelism happens inside
// Compute and Paint.
type Engine struct {
	cfg      Config
	viewport Viewport
	algo     Algorithm
	grid     *Grid
	stats    *Stats
	raster   *raster.Buffer
	opts     engineOptions

	computed bool
}

// NewEngine validates cfg and prepares an engine for it.
// Configuration errors wrap ErrInvalidConfig and are reported before any
// pixel is computed.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vp, err := NewViewport(cfg.Width, cfg.Height, cfg.Center, cfg.Zoom)
	if err != nil {
		return nil, err
	}

	algo, err := NewAlgorithm(cfg)
	if err != nil {
		return nil, err
	}

	format, err := raster.FormatForDepth(cfg.Depth)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	buf, err := raster.New(cfg.Width, cfg.Height, format)
	if err != nil {
		return nil, fmt.Errorf("fractal: allocate raster: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		cfg:      cfg,
		viewport: vp,
		algo:     algo,
		grid:     newGrid(cfg.Width, cfg.Height),
		stats:    newStats(),
		raster:   buf,
		opts:     o,
	}, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Viewport returns the coordinate mapping of the render.
func (e *Engine) Viewport() Viewport { return e.viewport }

// Stats returns the iteration statistics of the last Compute.
func (e *Engine) Stats() *Stats { return e.stats }

// Grid returns the per-pixel results of the last Compute.
func (e *Engine) Grid() *Grid { return e.grid }

// Raster returns the output pixel store. It is fully written once Paint
// has returned nil.
func (e *Engine) Raster() *raster.Buffer { return e.raster }

// Render runs Compute followed by Paint.
func (e *Engine) Render() error {
	start := time.Now()
	Logger().Info("render started",
		slog.String("fractal", e.cfg.Variant.String()),
		slog.Int("width", e.cfg.Width),
		slog.Int("height", e.cfg.Height),
		slog.Bool("parallel", e.opts.parallel))

	if err := e.Compute(); err != nil {
		return err
	}
	if err := e.Paint(); err != nil {
		return err
	}

	Logger().Info("render finished",
		slog.Duration("elapsed", time.Since(start)),
		slog.Uint64("largest_iteration", e.stats.Largest()))
	return nil
}

// Compute iterates every pixel and records its result and the largest
// iteration count. A failed Compute leaves the engine unpainted.
func (e *Engine) Compute() error {
	e.computed = false
	e.stats.reset()

	start := time.Now()
	width := e.cfg.Width

	err := e.run(PhaseCompute, func(r region) error {
		var local uint64
		for y := r.y0; y < r.y1; y++ {
			for x := r.x0; x < r.x1; x++ {
				res, err := e.algo.Compute(e.viewport.Point(x, y))
				if err != nil {
					return fmt.Errorf("compute pixel (%d, %d): %w", x, y, err)
				}
				e.grid.cells[y*width+x] = res
				local = max(local, res.Iterations)
			}
		}
		e.stats.Observe(local)
		return nil
	})
	if err != nil {
		return err
	}

	e.computed = true
	Logger().Debug("compute phase done",
		slog.Duration("elapsed", time.Since(start)),
		slog.Uint64("largest_iteration", e.stats.Largest()))
	return nil
}

// Paint colours every pixel from its stored result and writes the raster.
// It returns ErrNotComputed unless Compute has succeeded. The raster is
// written through a locked frame and only flushed when every pixel is done.
func (e *Engine) Paint() error {
	if !e.computed {
		return ErrNotComputed
	}

	frame, err := e.raster.Lock()
	if err != nil {
		return fmt.Errorf("fractal: lock raster: %w", err)
	}
	defer frame.Discard()

	start := time.Now()
	frozen := e.stats.Snapshot()
	width := e.cfg.Width

	err = e.run(PhasePaint, func(r region) error {
		for y := r.y0; y < r.y1; y++ {
			for x := r.x0; x < r.x1; x++ {
				c, err := e.algo.ColorFor(e.grid.cells[y*width+x], frozen)
				if err != nil {
					return fmt.Errorf("colour pixel (%d, %d): %w", x, y, err)
				}
				if err := frame.SetPixel(x, y, c); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		Logger().Warn("paint aborted, raster left unchanged", slog.Any("error", err))
		return err
	}

	if err := frame.Unlock(); err != nil {
		return fmt.Errorf("fractal: unlock raster: %w", err)
	}

	Logger().Debug("paint phase done", slog.Duration("elapsed", time.Since(start)))
	return nil
}

// region is a rectangle of pixels [x0, x1) x [y0, y1) handled by one task.
type region struct {
	x0, x1, y0, y1 int
}

// regions lays out the tasks of a phase: one per row in sequential mode,
// one per column (or column band) in parallel mode.
func (e *Engine) regions() []region {
	w, h := e.cfg.Width, e.cfg.Height

	if !e.opts.parallel {
		rs := make([]region, h)
		for y := range h {
			rs[y] = region{x0: 0, x1: w, y0: y, y1: y + 1}
		}
		return rs
	}

	bands := []parallel.Span{{Start: 0, End: h}}
	if e.opts.rowParallel {
		bands = parallel.Split(h, e.opts.bandHeight)
	}

	rs := make([]region, 0, w*len(bands))
	for x := range w {
		for _, b := range bands {
			rs = append(rs, region{x0: x, x1: x + 1, y0: b.Start, y1: b.End})
		}
	}
	return rs
}

// run executes work for every region of the phase. In parallel mode the
// first error stops the remaining tasks from starting and is returned.
func (e *Engine) run(phase Phase, work func(region) error) error {
	rs := e.regions()

	if !e.opts.parallel {
		for i, r := range rs {
			if err := work(r); err != nil {
				return err
			}
			e.report(phase, i+1, len(rs))
		}
		return nil
	}

	pool := parallel.NewWorkerPool(e.opts.workers)
	defer pool.Close()

	Logger().Debug("parallel phase",
		slog.String("phase", phase.String()),
		slog.Int("tasks", len(rs)),
		slog.Int("workers", pool.Workers()))

	var (
		mu       sync.Mutex
		firstErr error
		failed   atomic.Bool
		done     atomic.Int64
	)

	pool.Run(len(rs), func(i int) {
		if failed.Load() {
			return
		}
		if err := work(rs[i]); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
			failed.Store(true)
			return
		}
		e.report(phase, int(done.Add(1)), len(rs))
	})

	return firstErr
}

func (e *Engine) report(phase Phase, done, total int) {
	if e.opts.progress != nil {
		e.opts.progress(phase, done, total)
	}
}
