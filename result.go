package amrproj

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Map is one finalized output map and the settings that produced it.
type Map struct {
	// Grid holds the finalized pixel values, exclusively owned by the
	// caller.
	Grid *Grid

	// Unit is the caller-supplied unit label ("code" when unset).
	Unit string

	// Weighting and Mode record how cells were combined.
	Weighting Weighting
	Mode      Mode
}

// Result bundles the per-variable maps of one projection with the
// shared grid metadata.
type Result struct {
	// Maps holds one entry per requested variable, including derived
	// dispersions and geometric maps. Internally-added moment grids
	// are absent.
	Maps map[Variable]*Map

	// Direction is the projected axis.
	Direction Direction

	// MaxLevel is the highest refinement level that contributed.
	MaxLevel int32

	// LevelMin, LevelMax are the dataset's level bounds.
	LevelMin, LevelMax int32

	// Range is the requested selection in normalized units.
	Range Range

	// Extent is the covered physical extent {hmin, hmax, vmin, vmax},
	// relative to the request center.
	Extent [4]float64

	// PixelSize is the physical pixel edge length; the grid is Nx×Ny.
	PixelSize float64
	Nx, Ny    int

	// BoxLen is the physical domain size.
	BoxLen float64
}

// summaryPrinter formats counts with grouping separators.
var summaryPrinter = message.NewPrinter(language.English)

// Summary returns a short human-readable description of the result,
// for logs and interactive use.
func (r *Result) Summary() string {
	var b strings.Builder
	summaryPrinter.Fprintf(&b, "projection along %s: %d x %d pixels (%d total), pixel size %.6g\n",
		r.Direction, r.Nx, r.Ny, r.Nx*r.Ny, r.PixelSize)
	summaryPrinter.Fprintf(&b, "levels %d..%d (max projected %d), extent [%.4g, %.4g] x [%.4g, %.4g]\n",
		r.LevelMin, r.LevelMax, r.MaxLevel,
		r.Extent[0], r.Extent[1], r.Extent[2], r.Extent[3])
	for v := Variable(0); v < numVariables; v++ {
		m, ok := r.Maps[v]
		if !ok {
			continue
		}
		summaryPrinter.Fprintf(&b, "  %-8s [%s] %s/%s: min %.6g max %.6g\n",
			v.String(), m.Unit, m.Mode, m.Weighting.Quantity, m.Grid.Min(), m.Grid.Max())
	}
	return b.String()
}
