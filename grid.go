package amrproj

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Grid is a rectangular float64 pixel buffer. Pixel (0, 0) is the
// corner with the smallest physical coordinates; x indexes columns
// (the h plane axis), y indexes rows.
//
// A Grid returned from a projection is exclusively owned by the
// caller. Grid is not safe for concurrent mutation.
type Grid struct {
	nx   int
	ny   int
	data []float64
}

// NewGrid creates a zeroed nx×ny grid.
func NewGrid(nx, ny int) *Grid {
	return &Grid{nx: nx, ny: ny, data: make([]float64, nx*ny)}
}

// gridOver wraps an existing row-major buffer without copying.
// len(data) must be nx*ny.
func gridOver(nx, ny int, data []float64) *Grid {
	return &Grid{nx: nx, ny: ny, data: data}
}

// Nx returns the number of columns.
func (g *Grid) Nx() int { return g.nx }

// Ny returns the number of rows.
func (g *Grid) Ny() int { return g.ny }

// Data returns the backing row-major slice.
func (g *Grid) Data() []float64 { return g.data }

// At returns the value at column x, row y.
func (g *Grid) At(x, y int) float64 { return g.data[y*g.nx+x] }

// Set stores v at column x, row y.
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.nx+x] = v }

// Sum returns the sum over all pixels.
func (g *Grid) Sum() float64 { return floats.Sum(g.data) }

// Min returns the smallest pixel value. Zero for an empty grid.
func (g *Grid) Min() float64 {
	if len(g.data) == 0 {
		return 0
	}
	return floats.Min(g.data)
}

// Max returns the largest pixel value. Zero for an empty grid.
func (g *Grid) Max() float64 {
	if len(g.data) == 0 {
		return 0
	}
	return floats.Max(g.data)
}

// Mean returns the unweighted mean pixel value. Zero for an empty grid.
func (g *Grid) Mean() float64 {
	if len(g.data) == 0 {
		return 0
	}
	return stat.Mean(g.data, nil)
}

// Scale multiplies every pixel by c.
func (g *Grid) Scale(c float64) { floats.Scale(c, g.data) }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.nx, g.ny)
	copy(out.data, g.data)
	return out
}
