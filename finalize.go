package amrproj

import "math"

// finalizeResult converts accumulated sums into the requested output
// maps: weighted averages or raw sums for rasterized variables,
// dispersions derived from their moment grids, and analytic
// radius/angle maps. Moment grids that were only added to support a
// dispersion never appear in the result.
func finalizeResult(o *requestOptions, g *gridGeometry, sel *selection, rv resolvedVars,
	acc map[Variable]*accGrids, dsMin, dsMax int32) *Result {

	res := &Result{
		Maps:      make(map[Variable]*Map),
		Direction: o.direction,
		MaxLevel:  sel.lmax,
		LevelMin:  dsMin,
		LevelMax:  dsMax,
		Range:     o.rng,
		PixelSize: g.pixelSize,
		Nx:        g.nx,
		Ny:        g.ny,
		BoxLen:    g.boxLen,
	}
	if sel.n() == 0 {
		res.MaxLevel = 0
	}

	// Physical extent, reported relative to the request center.
	var hc, vc float64
	switch o.direction {
	case DirX:
		hc, vc = o.center[AxisY], o.center[AxisZ]
	case DirY:
		hc, vc = o.center[AxisX], o.center[AxisZ]
	default:
		hc, vc = o.center[AxisX], o.center[AxisY]
	}
	res.Extent = [4]float64{
		g.extent[0] - hc*g.boxLen,
		g.extent[1] - hc*g.boxLen,
		g.extent[2] - vc*g.boxLen,
		g.extent[3] - vc*g.boxLen,
	}

	scale := o.weighting.scale()
	for _, v := range rv.raster {
		if !rv.requested[v] {
			continue
		}
		res.Maps[v] = o.newMap(v, finalizeGrid(v, acc[v], o.mode, g, scale))
	}
	for _, v := range rv.derived {
		res.Maps[v] = o.newMap(v, deriveDispersion(v, acc, g, scale))
	}
	for _, v := range rv.geometric {
		res.Maps[v] = o.newMap(v, geometricMap(v, g, o, hc, vc))
	}
	return res
}

// newMap wraps a finalized grid with its request metadata.
func (o *requestOptions) newMap(v Variable, grid *Grid) *Map {
	unit := o.units[v]
	if unit == "" {
		unit = "code"
	}
	return &Map{Grid: grid, Unit: unit, Weighting: o.weighting, Mode: o.mode}
}

// finalizeGrid turns one variable's accumulated pair into its output
// grid. Sum mode returns the raw accumulated values. Standard mode
// divides by accumulated weight, except for the mass proxy, which is
// divided by physical pixel area so total mass is conserved exactly.
// Zero-weight pixels finalize to zero, never NaN.
func finalizeGrid(v Variable, a *accGrids, mode Mode, g *gridGeometry, scale float64) *Grid {
	out := make([]float64, len(a.value))
	switch {
	case mode == ModeSum:
		copy(out, a.value)
	case v.spec().kind == kindMassProxy:
		inv := 1 / g.pixelArea()
		for i, x := range a.value {
			out[i] = x * inv
		}
	default:
		for i, x := range a.value {
			if w := a.weight[i]; w > 0 {
				out[i] = x / w
			}
		}
	}
	grid := gridOver(g.nx, g.ny, out)
	if scale != 1 {
		grid.Scale(scale)
	}
	return grid
}

// deriveDispersion computes sigma = sqrt(max(m2 - m1*m1, 0)) from the
// variable's accumulated first and second moments. The moments are
// finalized as weighted means regardless of the request mode; the
// clamp absorbs the small negative residuals floating-point
// cancellation leaves where the distribution is single-valued.
func deriveDispersion(v Variable, acc map[Variable]*accGrids, g *gridGeometry, scale float64) *Grid {
	moments := v.spec().moments
	a1 := acc[moments[0]]
	a2 := acc[moments[1]]

	out := make([]float64, len(a1.value))
	for i := range out {
		w := a1.weight[i]
		if w <= 0 {
			continue
		}
		m1 := a1.value[i] / w
		m2 := a2.value[i] / a2.weight[i]
		if d := m2 - m1*m1; d > 0 {
			out[i] = math.Sqrt(d)
		}
	}
	grid := gridOver(g.nx, g.ny, out)
	if scale != 1 {
		grid.Scale(scale)
	}
	return grid
}

// geometricMap computes a radius or angle map analytically from pixel
// centers; no cell data is involved. The center defaults to the
// request center's in-plane coordinates and can be overridden with
// WithDataCenter.
func geometricMap(v Variable, g *gridGeometry, o *requestOptions, hc, vc float64) *Grid {
	ch, cv := hc*g.boxLen, vc*g.boxLen
	if o.hasDataCtr {
		ch = o.dataCenter[0] * g.boxLen
		cv = o.dataCenter[1] * g.boxLen
	}

	out := make([]float64, g.pixels())
	for py := 0; py < g.ny; py++ {
		y := g.extent[2] + (float64(py)+0.5)*g.pixelSize - cv
		for px := 0; px < g.nx; px++ {
			x := g.extent[0] + (float64(px)+0.5)*g.pixelSize - ch
			if v == VarRadius {
				out[py*g.nx+px] = math.Hypot(x, y)
			} else {
				out[py*g.nx+px] = azimuth(x, y)
			}
		}
	}
	return gridOver(g.nx, g.ny, out)
}

// azimuth maps the four-quadrant angle of (x, y) into [0, 2*pi).
// The x == 0 column resolves to pi/2 or 3*pi/2 by sign of y.
func azimuth(x, y float64) float64 {
	if x == 0 {
		switch {
		case y > 0:
			return math.Pi / 2
		case y < 0:
			return 3 * math.Pi / 2
		default:
			return 0
		}
	}
	phi := math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}
