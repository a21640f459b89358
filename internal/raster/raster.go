// Package raster implements the cell-to-pixel overlap rasterizer: one
// refinement level's cells are distributed across an output grid in
// proportion to the exact rectangular intersection area between each
// cell and each pixel.
//
// Two implementations exist. Direct walks every cell against its
// overlapping pixel range. Binned partitions the grid into square
// pixel bins, pre-assigns cells to the bins their bounding boxes
// touch, and processes bin by bin for cache locality. Both produce the
// same per-pixel sums up to floating-point summation order.
package raster

import "math"

// Algorithm identifies which rasterizer implementation ran.
type Algorithm uint8

const (
	// Direct iterates cells against the full pixel range.
	Direct Algorithm = iota

	// Binned processes cells grouped into square pixel bins.
	Binned
)

// String returns "direct" or "binned".
func (a Algorithm) String() string {
	if a == Binned {
		return "binned"
	}
	return "direct"
}

// Cells holds one refinement level's gathered cell arrays. H and V are
// 1-based integer grid coordinates along the pixel plane's column and
// row axes, at this level's resolution. Weight is the per-cell weight.
// All slices have equal length and shared row correspondence.
type Cells struct {
	H, V   []int32
	Weight []float64
}

// Len returns the cell count.
func (c Cells) Len() int { return len(c.H) }

// Params describes the target grid and the level being rasterized.
// Origin coordinates and sizes are physical lengths in the pixel
// plane; OriginH/OriginV locate the low corner of pixel (0, 0).
type Params struct {
	Nx, Ny    int
	PixelSize float64
	OriginH   float64
	OriginV   float64

	// CellSize is the physical cell size at this level
	// (boxlen / 2^level).
	CellSize float64

	// DH, DV are optional per-level center-correction offsets added
	// to every cell center.
	DH, DV float64

	// MassProxy marks a surface-density pass: each cell contributes
	// its weight (mass) directly as the value, so total mass on the
	// grid matches total cell mass exactly.
	MassProxy bool
}

// Accumulate rasterizes one level into the value and weight buffers
// (row-major, Nx*Ny), adding to whatever the buffers already hold.
// vals carries the per-cell variable values; it is ignored when
// Params.MassProxy is set. The spatially-binned implementation is
// chosen when the level exceeds minCells cells and the grid exceeds
// minPixels pixels; the two implementations differ only in summation
// order. The chosen algorithm is returned for diagnostics.
func Accumulate(value, weight, vals []float64, c Cells, p Params, minCells, minPixels int) Algorithm {
	if c.Len() > minCells && p.Nx*p.Ny > minPixels {
		AccumulateBinned(value, weight, vals, c, p)
		return Binned
	}
	AccumulateDirect(value, weight, vals, c, p)
	return Direct
}

// AccumulateDirect is the straightforward implementation: every cell
// is clipped against the grid and spread over its overlapping pixels.
func AccumulateDirect(value, weight, vals []float64, c Cells, p Params) {
	for i := range c.H {
		spreadCell(value, weight, cellValue(vals, c, p, i), c.Weight[i], c.H[i], c.V[i], p,
			0, p.Nx, 0, p.Ny)
	}
}

// BinSide returns the bin edge length in pixels for a level with n
// cells: max(8, ceil(sqrt(n)/16)).
func BinSide(n int) int {
	side := int(math.Ceil(math.Sqrt(float64(n)) / 16))
	if side < 8 {
		side = 8
	}
	return side
}

// AccumulateBinned partitions the grid into square pixel bins, assigns
// each cell to every bin its bounding box may overlap, then rasterizes
// bin by bin. Each bin clips cells to its own pixel range, so a cell
// spanning several bins contributes each of its pixels exactly once.
func AccumulateBinned(value, weight, vals []float64, c Cells, p Params) {
	n := c.Len()
	if n == 0 {
		return
	}
	side := BinSide(n)
	binsX := (p.Nx + side - 1) / side
	binsY := (p.Ny + side - 1) / side
	nbins := binsX * binsY

	// Pass 1: per-cell pixel ranges and bin occupancy counts.
	px0 := make([]int32, n)
	px1 := make([]int32, n)
	py0 := make([]int32, n)
	py1 := make([]int32, n)
	counts := make([]int32, nbins+1)
	for i := 0; i < n; i++ {
		x0, x1, y0, y1 := pixelRange(c.H[i], c.V[i], p)
		px0[i], px1[i], py0[i], py1[i] = int32(x0), int32(x1), int32(y0), int32(y1)
		if x0 >= x1 || y0 >= y1 {
			continue
		}
		for by := y0 / side; by*side < y1; by++ {
			for bx := x0 / side; bx*side < x1; bx++ {
				counts[by*binsX+bx+1]++
			}
		}
	}
	for b := 1; b <= nbins; b++ {
		counts[b] += counts[b-1]
	}

	// Pass 2: bucket cell indices per bin. The counting sort keeps
	// cell order within each bin deterministic.
	members := make([]int32, counts[nbins])
	next := make([]int32, nbins)
	copy(next, counts[:nbins])
	for i := 0; i < n; i++ {
		x0, x1, y0, y1 := int(px0[i]), int(px1[i]), int(py0[i]), int(py1[i])
		if x0 >= x1 || y0 >= y1 {
			continue
		}
		for by := y0 / side; by*side < y1; by++ {
			for bx := x0 / side; bx*side < x1; bx++ {
				b := by*binsX + bx
				members[next[b]] = int32(i)
				next[b]++
			}
		}
	}

	// Pass 3: rasterize bin by bin, clipping each cell to the bin.
	for by := 0; by < binsY; by++ {
		binY0 := by * side
		binY1 := min(binY0+side, p.Ny)
		for bx := 0; bx < binsX; bx++ {
			binX0 := bx * side
			binX1 := min(binX0+side, p.Nx)
			b := by*binsX + bx
			for _, mi := range members[counts[b]:counts[b+1]] {
				i := int(mi)
				spreadCell(value, weight, cellValue(vals, c, p, i), c.Weight[i],
					c.H[i], c.V[i], p, binX0, binX1, binY0, binY1)
			}
		}
	}
}

// cellValue returns the value a cell contributes before the overlap
// fraction is applied. Mass-proxy passes contribute the mass itself;
// everything else contributes value*weight and is finalized later by
// a per-pixel weight division.
func cellValue(vals []float64, c Cells, p Params, i int) float64 {
	if p.MassProxy {
		return c.Weight[i]
	}
	return vals[i] * c.Weight[i]
}

// pixelRange returns the half-open pixel index range [x0,x1)×[y0,y1)
// a cell's bounding box overlaps, clipped to the grid.
func pixelRange(h, v int32, p Params) (x0, x1, y0, y1 int) {
	half := 0.5 * p.CellSize
	ch := (float64(h)-0.5)*p.CellSize + p.DH - p.OriginH
	cv := (float64(v)-0.5)*p.CellSize + p.DV - p.OriginV
	inv := 1 / p.PixelSize

	x0 = int(math.Floor((ch - half) * inv))
	x1 = int(math.Ceil((ch + half) * inv))
	y0 = int(math.Floor((cv - half) * inv))
	y1 = int(math.Ceil((cv + half) * inv))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > p.Nx {
		x1 = p.Nx
	}
	if y1 > p.Ny {
		y1 = p.Ny
	}
	return x0, x1, y0, y1
}

// spreadCell accumulates one cell over the pixels it overlaps within
// the clip window [clipX0,clipX1)×[clipY0,clipY1). val is the cell's
// pre-fraction value contribution, wgt its weight.
func spreadCell(value, weight []float64, val, wgt float64, h, v int32, p Params,
	clipX0, clipX1, clipY0, clipY1 int) {

	x0, x1, y0, y1 := pixelRange(h, v, p)
	x0 = max(x0, clipX0)
	y0 = max(y0, clipY0)
	x1 = min(x1, clipX1)
	y1 = min(y1, clipY1)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	half := 0.5 * p.CellSize
	ch := (float64(h)-0.5)*p.CellSize + p.DH - p.OriginH
	cv := (float64(v)-0.5)*p.CellSize + p.DV - p.OriginV
	loH := ch - half
	hiH := ch + half
	loV := cv - half
	hiV := cv + half
	invArea := 1 / (p.CellSize * p.CellSize)

	for py := y0; py < y1; py++ {
		pLoV := float64(py) * p.PixelSize
		pHiV := pLoV + p.PixelSize
		ov := math.Min(hiV, pHiV) - math.Max(loV, pLoV)
		if ov <= 0 {
			continue
		}
		row := py * p.Nx
		for px := x0; px < x1; px++ {
			pLoH := float64(px) * p.PixelSize
			pHiH := pLoH + p.PixelSize
			oh := math.Min(hiH, pHiH) - math.Max(loH, pLoH)
			if oh <= 0 {
				continue
			}
			frac := oh * ov * invArea
			value[row+px] += val * frac
			weight[row+px] += wgt * frac
		}
	}
}
