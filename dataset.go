package amrproj

// Dataset serves the per-cell arrays a projection reads. All accessors
// must use one consistent cell ordering: row i of every returned slice
// refers to the same cell. Violations of that contract are detected by
// length checks before rasterization and reported as
// DataConsistencyError; value-level misalignment cannot be detected
// and is the caller's responsibility.
//
// Returned slices are read-only for the duration of a projection call
// and may be shared across concurrent workers. Implementations must be
// safe for concurrent reads.
type Dataset interface {
	// CellCount returns the number of cells.
	CellCount() int

	// Levels returns the refinement level of every cell. Uniform
	// (non-AMR) datasets return a constant-filled slice.
	Levels() []int32

	// Coords returns the 1-based integer grid coordinate of every
	// cell along the given axis, at each cell's own level.
	Coords(axis Axis) []int32

	// Values returns the per-cell values of a base variable, in the
	// shared cell ordering.
	Values(v Variable) ([]float64, error)

	// Has reports whether Values can serve v.
	Has(v Variable) bool

	// BoxLen returns the physical size of the (cubic) domain.
	BoxLen() float64

	// LevelBounds returns the minimum and maximum refinement level
	// present in the dataset.
	LevelBounds() (min, max int32)
}

// CellData is an in-memory Dataset. It is the natural target when cell
// arrays are already loaded; snapshot readers can implement Dataset
// directly instead to avoid a copy.
type CellData struct {
	boxLen float64
	lmin   int32
	lmax   int32
	levels []int32
	coords [3][]int32
	vars   map[Variable][]float64
}

// NewCellData builds a CellData over caller-provided arrays. The
// arrays are referenced, not copied; the caller must not mutate them
// while projections run. Levels and all three coordinate slices must
// have equal length. Variables are attached with SetValues.
func NewCellData(boxLen float64, levels []int32, cx, cy, cz []int32) *CellData {
	lmin, lmax := int32(0), int32(0)
	for i, l := range levels {
		if i == 0 || l < lmin {
			lmin = l
		}
		if i == 0 || l > lmax {
			lmax = l
		}
	}
	return &CellData{
		boxLen: boxLen,
		lmin:   lmin,
		lmax:   lmax,
		levels: levels,
		coords: [3][]int32{cx, cy, cz},
		vars:   make(map[Variable][]float64),
	}
}

// SetValues attaches (or replaces) a base variable's per-cell values.
// The slice is referenced, not copied.
func (d *CellData) SetValues(v Variable, values []float64) {
	d.vars[v] = values
}

// CellCount returns the number of cells.
func (d *CellData) CellCount() int { return len(d.levels) }

// Levels returns the per-cell refinement levels.
func (d *CellData) Levels() []int32 { return d.levels }

// Coords returns the 1-based grid coordinates along axis.
func (d *CellData) Coords(axis Axis) []int32 { return d.coords[axis] }

// Values returns the per-cell values for v.
func (d *CellData) Values(v Variable) ([]float64, error) {
	vals, ok := d.vars[v]
	if !ok {
		return nil, configErrorf("variables", "dataset has no %q variable", v)
	}
	return vals, nil
}

// Has reports whether v was attached.
func (d *CellData) Has(v Variable) bool {
	_, ok := d.vars[v]
	return ok
}

// BoxLen returns the physical domain size.
func (d *CellData) BoxLen() float64 { return d.boxLen }

// LevelBounds returns the level range present in the data.
func (d *CellData) LevelBounds() (min, max int32) { return d.lmin, d.lmax }
