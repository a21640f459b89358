package amrproj

import (
	"math"

	"github.com/astroviz/amrproj/internal/raster"
)

// selection is the masked, level-sorted view of the dataset shared by
// every variable of one request. It is built once: the combined
// predicate (caller mask AND projected-axis membership) is evaluated a
// single time into an index list, and every per-cell array is gathered
// through that same list, so all rows stay aligned by construction.
type selection struct {
	// idx maps selected-cell rows back to dataset rows, stably sorted
	// by refinement level (lowest first).
	idx []int32

	h, v   []int32
	levels []int32
	weight []float64

	// lmin, lmax bound the levels actually present in the selection;
	// start[k] is the first row of level lmin+k, start[span+1] == n.
	lmin, lmax int32
	start      []int
}

// n returns the selected cell count.
func (s *selection) n() int { return len(s.idx) }

// cellsAt returns the raster view of one level's cells. Empty levels
// yield zero-length slices.
func (s *selection) cellsAt(level int32) raster.Cells {
	k := level - s.lmin
	lo, hi := s.start[k], s.start[k+1]
	return raster.Cells{H: s.h[lo:hi], V: s.v[lo:hi], Weight: s.weight[lo:hi]}
}

// valuesAt slices a gathered value array to one level's rows.
func (s *selection) valuesAt(vals []float64, level int32) []float64 {
	if vals == nil {
		return nil
	}
	k := level - s.lmin
	return vals[s.start[k]:s.start[k+1]]
}

// checkLen verifies a dataset-returned array length against the shared
// cell count.
func checkLen(name string, got, want int) error {
	if got != want {
		return &DataConsistencyError{Array: name, Got: got, Want: want}
	}
	return nil
}

// buildSelection applies the combined selection predicate and gathers
// the shared arrays. The projected-axis slab uses cell centers; a
// degenerate slab (min == max, a thin slice) is widened by half a
// finest-level cell so the enclosing cells are still selected.
func buildSelection(ds Dataset, g *gridGeometry, mask []bool) (*selection, error) {
	ncells := ds.CellCount()

	levels := ds.Levels()
	if err := checkLen("levels", len(levels), ncells); err != nil {
		return nil, err
	}
	pc := ds.Coords(g.pAxis)
	if err := checkLen("projected-axis coordinates", len(pc), ncells); err != nil {
		return nil, err
	}

	_, dsMax := ds.LevelBounds()
	lo, hi := g.pMin, g.pMax
	if hi-lo < 1e-12*g.boxLen {
		// Thin slice: tolerance of half a finest-level cell keeps the
		// result non-empty.
		tol := 0.5 * g.boxLen / float64(int64(1)<<dsMax)
		lo -= tol
		hi += tol
	}

	// Pass 1: evaluate the predicate, track present levels, and count
	// cells per level for the stable level sort.
	keep := make([]bool, ncells)
	var lmin, lmax int32
	first := true
	for i := 0; i < ncells; i++ {
		if mask != nil && !mask[i] {
			continue
		}
		cs := g.boxLen / float64(int64(1)<<levels[i])
		center := (float64(pc[i]) - 0.5) * cs
		if center < lo || center > hi {
			continue
		}
		keep[i] = true
		if first || levels[i] < lmin {
			lmin = levels[i]
		}
		if first || levels[i] > lmax {
			lmax = levels[i]
		}
		first = false
	}

	if first {
		// Empty selection: lmin > lmax makes level loops vacuous.
		return &selection{lmin: 0, lmax: -1, start: []int{0, 0}}, nil
	}
	s := &selection{lmin: lmin, lmax: lmax}
	span := int(lmax-lmin) + 1

	counts := make([]int, span+1)
	for i := 0; i < ncells; i++ {
		if keep[i] {
			counts[levels[i]-lmin+1]++
		}
	}
	for k := 1; k <= span; k++ {
		counts[k] += counts[k-1]
	}
	n := counts[span]

	s.start = make([]int, span+1)
	copy(s.start, counts)

	// Pass 2: counting sort of dataset rows by level. Stable, so the
	// dataset's cell order is preserved within each level and results
	// are reproducible.
	s.idx = make([]int32, n)
	next := make([]int, span)
	copy(next, counts[:span])
	for i := 0; i < ncells; i++ {
		if keep[i] {
			k := levels[i] - lmin
			s.idx[next[k]] = int32(i)
			next[k]++
		}
	}

	// Gather the shared arrays through the index list.
	hc := ds.Coords(g.hAxis)
	if err := checkLen("column-axis coordinates", len(hc), ncells); err != nil {
		return nil, err
	}
	vc := ds.Coords(g.vAxis)
	if err := checkLen("row-axis coordinates", len(vc), ncells); err != nil {
		return nil, err
	}

	s.h = make([]int32, n)
	s.v = make([]int32, n)
	s.levels = make([]int32, n)
	for j, i := range s.idx {
		s.h[j] = hc[i]
		s.v[j] = vc[i]
		s.levels[j] = levels[i]
	}
	return s, nil
}

// gatherWeights fills the selection's shared weight array from the
// weighting quantity.
func (s *selection) gatherWeights(ds Dataset, w Weighting) error {
	vals, err := ds.Values(w.Quantity)
	if err != nil {
		return err
	}
	if err := checkLen(w.Quantity.String(), len(vals), ds.CellCount()); err != nil {
		return err
	}
	s.weight = make([]float64, s.n())
	for j, i := range s.idx {
		s.weight[j] = vals[i]
	}
	return nil
}

// gatherValues returns one variable's per-cell values through the
// selection, in the shared row order. Mass-proxy variables return nil:
// the rasterizer reads their contribution from the weight array.
// Squared moments and combined variables are computed per row from
// their source components.
func (s *selection) gatherValues(ds Dataset, v Variable) ([]float64, error) {
	spec := v.spec()
	switch spec.kind {
	case kindMassProxy:
		return nil, nil

	case kindMoment2:
		src, err := s.gatherValues(ds, spec.source)
		if err != nil {
			return nil, err
		}
		for j, x := range src {
			src[j] = x * x
		}
		return src, nil

	case kindCombined:
		out := make([]float64, s.n())
		for _, comp := range spec.combine {
			cv, err := ds.Values(comp)
			if err != nil {
				return nil, err
			}
			if err := checkLen(comp.String(), len(cv), ds.CellCount()); err != nil {
				return nil, err
			}
			for j, i := range s.idx {
				out[j] += cv[i] * cv[i]
			}
		}
		for j, x := range out {
			out[j] = math.Sqrt(x)
		}
		return out, nil

	default:
		raw, err := ds.Values(v)
		if err != nil {
			return nil, err
		}
		if err := checkLen(v.String(), len(raw), ds.CellCount()); err != nil {
			return nil, err
		}
		out := make([]float64, s.n())
		for j, i := range s.idx {
			out[j] = raw[i]
		}
		return out, nil
	}
}
