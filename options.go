package fractal

// Phase identifies one of the two rendering phases.
type Phase uint8

const (
	// PhaseCompute is the per-pixel iteration phase.
	PhaseCompute Phase = iota

	// PhasePaint is the colouring phase.
	PhasePaint
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCompute:
		return "compute"
	case PhasePaint:
		return "paint"
	default:
		return "unknown"
	}
}

// ProgressFunc receives the number of finished work units out of total for
// a phase. In parallel mode it is called from worker goroutines, so it must
// be safe for concurrent use, and done values may arrive out of order.
type ProgressFunc func(phase Phase, done, total int)

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential, row-major rendering
//	eng, _ := fractal.NewEngine(cfg)
//
//	// One task per column and per 64-row band, on 8 workers
//	eng, _ := fractal.NewEngine(cfg,
//	    fractal.WithParallel(true),
//	    fractal.WithRowParallel(true),
//	    fractal.WithWorkers(8))
type Option func(*engineOptions)

type engineOptions struct {
	parallel    bool
	rowParallel bool
	workers     int
	bandHeight  int
	progress    ProgressFunc
}

// defaultBandHeight is the number of rows per task when rows are split.
const defaultBandHeight = 64

func defaultOptions() engineOptions {
	return engineOptions{
		workers:    0, // GOMAXPROCS
		bandHeight: defaultBandHeight,
	}
}

// WithParallel spreads both phases across image columns.
func WithParallel(enabled bool) Option {
	return func(o *engineOptions) {
		o.parallel = enabled
	}
}

// WithRowParallel additionally splits each column into bands of rows that
// run as separate tasks. It has no effect unless parallel mode is on.
func WithRowParallel(enabled bool) Option {
	return func(o *engineOptions) {
		o.rowParallel = enabled
	}
}

// WithBandHeight sets the rows per task used by WithRowParallel.
// Values below 1 keep the default.
func WithBandHeight(rows int) Option {
	return func(o *engineOptions) {
		if rows > 0 {
			o.bandHeight = rows
		}
	}
}

// WithWorkers sets the number of worker goroutines in parallel mode.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *engineOptions) {
		o.progress = fn
	}
}
