package amrproj

// Mode selects how accumulated pixel sums are finalized.
type Mode uint8

const (
	// ModeStandard divides each pixel's accumulated value by its
	// accumulated weight (weighted average). Zero-weight pixels
	// finalize to zero, never NaN.
	ModeStandard Mode = iota

	// ModeSum returns the raw accumulated sums.
	ModeSum
)

// String returns "standard" or "sum".
func (m Mode) String() string {
	if m == ModeSum {
		return "sum"
	}
	return "standard"
}

// Weighting describes how cells are combined into a pixel: the
// per-cell weight quantity and an optional unit scale applied at
// finalization. A zero Scale means 1.
type Weighting struct {
	Quantity Variable
	Scale    float64
}

// scale returns the effective unit scale.
func (w Weighting) scale() float64 {
	if w.Scale == 0 {
		return 1
	}
	return w.Scale
}

// CenterCorrection optionally shifts cell centers in the pixel plane
// before rasterization, per refinement level. It is an alignment
// debugging hook; offsets are physical lengths added to the (h, v)
// cell center.
type CenterCorrection func(level int32) (dh, dv float64)

// Option configures a projection request.
//
// Example:
//
//	res, err := amrproj.Project(ctx, data, vars,
//		amrproj.WithDirection(amrproj.DirX),
//		amrproj.WithPixelSize(0.5),
//		amrproj.WithMode(amrproj.ModeSum),
//	)
type Option func(*requestOptions)

// requestOptions holds the resolved configuration of one request.
type requestOptions struct {
	direction  Direction
	rng        Range
	center     [3]float64
	dataCenter [2]float64
	hasDataCtr bool
	resolution int
	pixelSize  float64
	mode       Mode
	weighting  Weighting
	mask       []bool
	units      map[Variable]string
	tuning     Tuning
	pool       *BufferPool
	correction CenterCorrection
}

// defaultRequestOptions returns the defaults: projection along z over
// the full domain, mass weighting, weighted-average mode, resolution
// matching the finest level, box-center data center.
func defaultRequestOptions() requestOptions {
	return requestOptions{
		direction: DirZ,
		rng:       FullDomain(),
		center:    [3]float64{0.5, 0.5, 0.5},
		mode:      ModeStandard,
		weighting: Weighting{Quantity: VarMass},
		tuning:    DefaultTuning(),
	}
}

// WithDirection sets the projection axis.
func WithDirection(d Direction) Option {
	return func(o *requestOptions) { o.direction = d }
}

// WithRange restricts the projection to a sub-volume, in normalized
// domain units. A degenerate projected-axis range (min == max)
// requests a thin slice.
func WithRange(r Range) Option {
	return func(o *requestOptions) { o.rng = r }
}

// WithCenter sets the reference center, in normalized domain units.
// Reported extents are relative to it, and it is the default data
// center for the radius and angle maps.
func WithCenter(c [3]float64) Option {
	return func(o *requestOptions) { o.center = c }
}

// WithDataCenter overrides the in-plane center used by the radius and
// angle maps, in normalized units along the (h, v) plane axes.
func WithDataCenter(h, v float64) Option {
	return func(o *requestOptions) {
		o.dataCenter = [2]float64{h, v}
		o.hasDataCtr = true
	}
}

// WithResolution sets the pixel count across the full domain.
// Zero (the default) uses 2^levelmax.
func WithResolution(res int) Option {
	return func(o *requestOptions) { o.resolution = res }
}

// WithPixelSize sets an explicit physical pixel size. It overrides
// WithResolution: the effective resolution becomes
// ceil(boxlen/pixelSize).
func WithPixelSize(size float64) Option {
	return func(o *requestOptions) { o.pixelSize = size }
}

// WithMode selects weighted-average or raw-sum finalization.
func WithMode(m Mode) Option {
	return func(o *requestOptions) { o.mode = m }
}

// WithWeighting sets the weighting scheme.
func WithWeighting(w Weighting) Option {
	return func(o *requestOptions) { o.weighting = w }
}

// WithMask restricts the projection to cells where mask is true. The
// mask must align 1:1 with the dataset's cell ordering; a length
// mismatch is a ConfigurationError.
func WithMask(mask []bool) Option {
	return func(o *requestOptions) { o.mask = mask }
}

// WithUnit attaches a unit label to a variable's output map. Labels
// are carried through untouched; unit conversion is the weighting
// scale's job.
func WithUnit(v Variable, label string) Option {
	return func(o *requestOptions) {
		if o.units == nil {
			o.units = make(map[Variable]string)
		}
		o.units[v] = label
	}
}

// WithTuning overrides the performance heuristics.
func WithTuning(t Tuning) Option {
	return func(o *requestOptions) { o.tuning = t }
}

// WithWorkers caps the parallel scheduler's worker count.
func WithWorkers(n int) Option {
	return func(o *requestOptions) { o.tuning.Workers = n }
}

// WithBufferPool supplies a scratch pool reused across calls on the
// sequential path. Parallel workers always use their own pools.
func WithBufferPool(p *BufferPool) Option {
	return func(o *requestOptions) { o.pool = p }
}

// WithCenterCorrection installs a per-level cell-center correction.
func WithCenterCorrection(fn CenterCorrection) Option {
	return func(o *requestOptions) { o.correction = fn }
}
