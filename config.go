package amrproj

import "github.com/caarlos0/env/v11"

// Tuning holds the performance heuristics of the engine. None of these
// change results, only how they are computed.
type Tuning struct {
	// Workers caps the parallel scheduler's worker count.
	// 0 means GOMAXPROCS.
	Workers int `env:"AMRPROJ_WORKERS"`

	// BinnedMinCells and BinnedMinPixels gate the spatially-indexed
	// rasterizer: it runs only when a level has more cells AND the
	// grid has more pixels than these thresholds.
	BinnedMinCells  int `env:"AMRPROJ_BINNED_MIN_CELLS" envDefault:"50000"`
	BinnedMinPixels int `env:"AMRPROJ_BINNED_MIN_PIXELS" envDefault:"10000"`

	// ParallelMinCells gates the per-variable parallel path.
	ParallelMinCells int `env:"AMRPROJ_PARALLEL_MIN_CELLS" envDefault:"50000"`
}

// DefaultTuning returns the built-in thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		BinnedMinCells:   50000,
		BinnedMinPixels:  10000,
		ParallelMinCells: 50000,
	}
}

// TuningFromEnv reads tuning overrides from AMRPROJ_* environment
// variables, falling back to the built-in defaults.
func TuningFromEnv() (Tuning, error) {
	return env.ParseAs[Tuning]()
}
