package amrproj

import "math"

// Axis indexes the three world axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Direction selects the projection (integration) axis. The remaining
// two axes span the output pixel plane.
type Direction uint8

const (
	// DirX projects along x; the pixel plane is (y, z).
	DirX Direction = iota

	// DirY projects along y; the pixel plane is (x, z).
	DirY

	// DirZ projects along z; the pixel plane is (x, y).
	DirZ
)

// String returns "x", "y" or "z".
func (d Direction) String() string {
	switch d {
	case DirX:
		return "x"
	case DirY:
		return "y"
	case DirZ:
		return "z"
	}
	return "invalid"
}

// axes returns the plane axes (h maps to pixel columns, v to pixel
// rows) and the projected axis for the direction.
func (d Direction) axes() (h, v, p Axis) {
	switch d {
	case DirX:
		return AxisY, AxisZ, AxisX
	case DirY:
		return AxisX, AxisZ, AxisY
	default:
		return AxisX, AxisY, AxisZ
	}
}

// Range is a spatial selection in normalized domain units: 0 is the
// domain origin, 1 the far edge, per axis. Min == Max along the
// projected axis requests a thin slice (see the extractor's
// half-finest-cell tolerance).
type Range struct {
	Min [3]float64
	Max [3]float64
}

// FullDomain selects the entire domain.
func FullDomain() Range {
	return Range{Min: [3]float64{0, 0, 0}, Max: [3]float64{1, 1, 1}}
}

// clamp01 limits a normalized coordinate to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// gridGeometry is the resolved output-grid layout for one request:
// axis mapping, pixel resolution, physical extent, and the projected
// axis slab. All lengths are physical (normalized range × boxlen).
type gridGeometry struct {
	hAxis Axis // pixel columns
	vAxis Axis // pixel rows
	pAxis Axis // integrated axis

	nx, ny    int
	pixelSize float64

	// extent is {hmin, hmax, vmin, vmax}, covering exactly nx×ny
	// pixels of pixelSize.
	extent [4]float64

	// pMin, pMax bound the slab along the projected axis.
	pMin, pMax float64

	boxLen float64
}

// pixelArea returns the physical area of one pixel.
func (g *gridGeometry) pixelArea() float64 { return g.pixelSize * g.pixelSize }

// pixels returns the total pixel count.
func (g *gridGeometry) pixels() int { return g.nx * g.ny }

// buildGeometry resolves direction, range and resolution into a pixel
// grid layout. An explicit pixel size overrides the requested
// resolution by recomputing it as ceil(boxlen/pixelSize); a zero
// resolution defaults to the finest AMR level (2^levelmax pixels
// across the domain).
func buildGeometry(dir Direction, rng Range, res int, pixelSize, boxLen float64, maxLevel int32) (gridGeometry, error) {
	if dir > DirZ {
		return gridGeometry{}, configErrorf("direction",
			"%d is not a principal axis (want DirX, DirY or DirZ)", dir)
	}
	if boxLen <= 0 {
		return gridGeometry{}, configErrorf("domain", "non-positive domain size %g", boxLen)
	}

	h, v, p := dir.axes()
	for _, a := range [2]Axis{h, v} {
		if rng.Min[a] >= rng.Max[a] {
			return gridGeometry{}, configErrorf("range",
				"empty plane-axis range [%g, %g]", rng.Min[a], rng.Max[a])
		}
	}
	if rng.Min[p] > rng.Max[p] {
		return gridGeometry{}, configErrorf("range",
			"inverted projected-axis range [%g, %g]", rng.Min[p], rng.Max[p])
	}

	if res <= 0 {
		res = 1 << maxLevel
	}
	if pixelSize > 0 {
		res = int(math.Ceil(boxLen / pixelSize))
	}
	if res < 1 {
		res = 1
	}
	dx := boxLen / float64(res)

	hmin := clamp01(rng.Min[h]) * boxLen
	hmax := clamp01(rng.Max[h]) * boxLen
	vmin := clamp01(rng.Min[v]) * boxLen
	vmax := clamp01(rng.Max[v]) * boxLen

	// Round up so the grid never undercovers the requested range; the
	// tiny slack absorbs ranges that are an exact pixel multiple.
	nx := int(math.Ceil((hmax-hmin)/dx - 1e-9))
	ny := int(math.Ceil((vmax-vmin)/dx - 1e-9))
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}

	return gridGeometry{
		hAxis:     h,
		vAxis:     v,
		pAxis:     p,
		nx:        nx,
		ny:        ny,
		pixelSize: dx,
		extent: [4]float64{
			hmin, hmin + float64(nx)*dx,
			vmin, vmin + float64(ny)*dx,
		},
		pMin:   clamp01(rng.Min[p]) * boxLen,
		pMax:   clamp01(rng.Max[p]) * boxLen,
		boxLen: boxLen,
	}, nil
}
