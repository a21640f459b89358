package amrproj

import (
	"context"
	"runtime"

	"github.com/astroviz/amrproj/internal/parallel"
	"github.com/astroviz/amrproj/internal/raster"
)

// accGrids is one variable's exclusively-owned accumulation pair.
type accGrids struct {
	value  []float64
	weight []float64
}

// Project collapses the dataset along the requested direction into one
// finalized map per requested variable. See the package documentation
// for the coordinate conventions and Option for the request surface.
//
// Configuration and data-consistency problems fail before any output
// grid is allocated. A failure on the parallel path is recovered by
// re-running the whole request sequentially; the caller only ever sees
// fully-sequential or fully-parallel results.
func Project(ctx context.Context, ds Dataset, vars []Variable, opts ...Option) (*Result, error) {
	o := defaultRequestOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Fail-fast validation, before grid or selection allocation.
	if o.mask != nil && len(o.mask) != ds.CellCount() {
		return nil, configErrorf("mask",
			"length %d does not match cell count %d", len(o.mask), ds.CellCount())
	}
	rv, err := resolveVariables(vars, o.weighting, ds)
	if err != nil {
		return nil, err
	}
	dsMin, dsMax := ds.LevelBounds()
	g, err := buildGeometry(o.direction, o.rng, o.resolution, o.pixelSize, ds.BoxLen(), dsMax)
	if err != nil {
		return nil, err
	}

	sel, err := buildSelection(ds, &g, o.mask)
	if err != nil {
		return nil, err
	}
	if err := sel.gatherWeights(ds, o.weighting); err != nil {
		return nil, err
	}
	values := make(map[Variable][]float64, len(rv.raster))
	for _, v := range rv.raster {
		if values[v], err = sel.gatherValues(ds, v); err != nil {
			return nil, err
		}
	}

	workers := o.tuning.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	acc, err := accumulateAll(ctx, &o, &g, sel, rv.raster, values, workers)
	if err != nil {
		return nil, err
	}
	return finalizeResult(&o, &g, sel, rv, acc, dsMin, dsMax), nil
}

// accumulateAll runs the rasterization pass for every variable,
// choosing between the per-variable parallel path and the sequential
// level-by-level path. A parallel failure other than cancellation
// discards all partial grids and re-runs sequentially.
func accumulateAll(ctx context.Context, o *requestOptions, g *gridGeometry, sel *selection,
	rasterVars []Variable, values map[Variable][]float64, workers int) (map[Variable]*accGrids, error) {

	useParallel := len(rasterVars) >= 2 &&
		sel.n() >= o.tuning.ParallelMinCells &&
		sel.lmax-sel.lmin > 1 &&
		workers > 1

	if useParallel {
		Logger().Debug("amrproj: parallel projection",
			"variables", len(rasterVars),
			"cells", sel.n(),
			"workers", workers)
		acc, err := accumulateParallel(ctx, o, g, sel, rasterVars, values, workers)
		if err == nil {
			return acc, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		Logger().Warn("amrproj: parallel projection failed, re-running sequentially",
			"variables", len(rasterVars),
			"cells", sel.n(),
			"error", err)
	}
	return accumulateSequential(ctx, o, g, sel, rasterVars, values)
}

// accumulateSequential processes levels in ascending order on the
// calling goroutine, rasterizing every variable at each level. The
// request's buffer pool (or a private one) supplies the per-level
// scratch pair.
func accumulateSequential(ctx context.Context, o *requestOptions, g *gridGeometry,
	sel *selection, rasterVars []Variable, values map[Variable][]float64) (map[Variable]*accGrids, error) {

	acc := newAccGrids(rasterVars, g.pixels())
	pool := o.pool
	if pool == nil {
		pool = NewBufferPool()
	}

	for level := sel.lmin; level <= sel.lmax; level++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, v := range rasterVars {
			if err := accumulateLevel(o, g, sel, v, values[v], level, acc[v], pool); err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

// accumulateParallel assigns one worker task per variable; each task
// processes all levels for its variable, lowest first, into grids no
// other task touches. Scratch pools are per-task, so nothing below the
// task list is shared mutable state.
func accumulateParallel(ctx context.Context, o *requestOptions, g *gridGeometry,
	sel *selection, rasterVars []Variable, values map[Variable][]float64, workers int) (map[Variable]*accGrids, error) {

	acc := newAccGrids(rasterVars, g.pixels())
	tasks := make([]func() error, len(rasterVars))
	for i, v := range rasterVars {
		tasks[i] = func() error {
			pool := NewBufferPool()
			for level := sel.lmin; level <= sel.lmax; level++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := accumulateLevel(o, g, sel, v, values[v], level, acc[v], pool); err != nil {
					return err
				}
			}
			return nil
		}
	}
	if err := parallel.Run(workers, tasks); err != nil {
		return nil, err
	}
	return acc, nil
}

// newAccGrids allocates fresh accumulation pairs for each variable.
func newAccGrids(rasterVars []Variable, pixels int) map[Variable]*accGrids {
	acc := make(map[Variable]*accGrids, len(rasterVars))
	for _, v := range rasterVars {
		acc[v] = &accGrids{
			value:  make([]float64, pixels),
			weight: make([]float64, pixels),
		}
	}
	return acc
}

// accumulateLevel rasterizes one (variable, level) pair into scratch
// buffers and folds them into the variable's totals. The adaptive
// dispatcher picks the rasterizer implementation per level.
func accumulateLevel(o *requestOptions, g *gridGeometry, sel *selection, v Variable,
	vals []float64, level int32, dst *accGrids, pool *BufferPool) error {

	cells := sel.cellsAt(level)
	if cells.Len() == 0 {
		return nil
	}

	var dh, dv float64
	if o.correction != nil {
		dh, dv = o.correction(level)
	}
	p := raster.Params{
		Nx:        g.nx,
		Ny:        g.ny,
		PixelSize: g.pixelSize,
		OriginH:   g.extent[0],
		OriginV:   g.extent[2],
		CellSize:  g.boxLen / float64(int64(1)<<level),
		DH:        dh,
		DV:        dv,
		MassProxy: v.spec().kind == kindMassProxy,
	}

	value := pool.Acquire(g.nx, g.ny)
	weight := pool.Acquire(g.nx, g.ny)

	alg := raster.Accumulate(value, weight, sel.valuesAt(vals, level), cells, p,
		o.tuning.BinnedMinCells, o.tuning.BinnedMinPixels)
	Logger().Debug("amrproj: rasterized level",
		"variable", v.String(),
		"level", level,
		"cells", cells.Len(),
		"algorithm", alg.String())

	for i, x := range value {
		dst.value[i] += x
	}
	for i, x := range weight {
		dst.weight[i] += x
	}
	pool.Release(value)
	pool.Release(weight)
	return nil
}
