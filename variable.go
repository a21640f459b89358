package amrproj

// Variable identifies a projectable quantity. The set is closed:
// derived quantities (velocity dispersions, geometric maps) are part of
// the enumeration, so dependency resolution is an exhaustive table
// lookup rather than open-ended name matching.
type Variable uint8

const (
	// VarMass is the cell mass. It doubles as the weighting quantity
	// for mass-weighted projections and as the mass proxy behind
	// VarSurfaceDensity.
	VarMass Variable = iota

	// VarSurfaceDensity is projected mass per physical pixel area.
	VarSurfaceDensity

	// VarVx, VarVy, VarVz are the velocity components (first moments).
	VarVx
	VarVy
	VarVz

	// VarSpeed is the velocity magnitude |v|, combined per cell from
	// the three components.
	VarSpeed

	// VarVx2, VarVy2, VarVz2, VarSpeed2 are the squared velocities
	// (second moments). They exist so dispersion maps can be derived;
	// they may also be requested directly.
	VarVx2
	VarVy2
	VarVz2
	VarSpeed2

	// VarSigmaX, VarSigmaY, VarSigmaZ, VarSigma are velocity
	// dispersions, derived per pixel from the finalized first and
	// second moments: sigma = sqrt(max(m2 - m1*m1, 0)).
	VarSigmaX
	VarSigmaY
	VarSigmaZ
	VarSigma

	// VarRadius is the in-plane Euclidean distance of each pixel
	// center from the data center. It depends on grid geometry only
	// and never enters the rasterization pass.
	VarRadius

	// VarAngle is the in-plane azimuthal angle of each pixel center
	// around the data center, in [0, 2*pi). Geometry-only, like
	// VarRadius.
	VarAngle

	numVariables
)

// varKind classifies how a variable is produced.
type varKind uint8

const (
	// kindBase is rasterized from per-cell values served by the Dataset.
	kindBase varKind = iota

	// kindMassProxy is rasterized from the cell mass itself and
	// finalized by pixel-area division, preserving total mass exactly.
	kindMassProxy

	// kindCombined is rasterized from a per-cell combination of other
	// base variables (e.g. |v| from vx, vy, vz).
	kindCombined

	// kindMoment2 is rasterized from the square of another variable's
	// per-cell values.
	kindMoment2

	// kindDispersion is derived per pixel from two finalized moment
	// grids after rasterization.
	kindDispersion

	// kindGeometric is computed analytically from grid geometry alone.
	kindGeometric
)

// varSpec describes one Variable: its wire name, how it is produced,
// and what it depends on.
type varSpec struct {
	name string
	kind varKind

	// source is the variable whose per-cell values are squared
	// (kindMoment2 only).
	source Variable

	// combine lists the base variables combined per cell
	// (kindCombined only).
	combine []Variable

	// moments holds the first and second moment (kindDispersion only).
	moments [2]Variable
}

// registry is the closed dispatch table for all variables. Indexed by
// Variable value; keep in enum order.
var registry = [numVariables]varSpec{
	VarMass:           {name: "mass", kind: kindBase},
	VarSurfaceDensity: {name: "sd", kind: kindMassProxy},
	VarVx:             {name: "vx", kind: kindBase},
	VarVy:             {name: "vy", kind: kindBase},
	VarVz:             {name: "vz", kind: kindBase},
	VarSpeed:          {name: "v", kind: kindCombined, combine: []Variable{VarVx, VarVy, VarVz}},
	VarVx2:            {name: "vx2", kind: kindMoment2, source: VarVx},
	VarVy2:            {name: "vy2", kind: kindMoment2, source: VarVy},
	VarVz2:            {name: "vz2", kind: kindMoment2, source: VarVz},
	VarSpeed2:         {name: "v2", kind: kindMoment2, source: VarSpeed},
	VarSigmaX:         {name: "sigma_x", kind: kindDispersion, moments: [2]Variable{VarVx, VarVx2}},
	VarSigmaY:         {name: "sigma_y", kind: kindDispersion, moments: [2]Variable{VarVy, VarVy2}},
	VarSigmaZ:         {name: "sigma_z", kind: kindDispersion, moments: [2]Variable{VarVz, VarVz2}},
	VarSigma:          {name: "sigma", kind: kindDispersion, moments: [2]Variable{VarSpeed, VarSpeed2}},
	VarRadius:         {name: "radius", kind: kindGeometric},
	VarAngle:          {name: "angle", kind: kindGeometric},
}

// String returns the variable's wire name ("sd", "vx", "sigma_x", ...).
func (v Variable) String() string {
	if v >= numVariables {
		return "unknown"
	}
	return registry[v].name
}

// spec returns the registry entry for v.
func (v Variable) spec() varSpec { return registry[v] }

// Dependencies returns the variables v needs before it can be
// produced. Base and geometric variables have none; dispersions need
// their two moments; squared moments need their source.
func (v Variable) Dependencies() []Variable {
	if v >= numVariables {
		return nil
	}
	s := registry[v]
	switch s.kind {
	case kindDispersion:
		return []Variable{s.moments[0], s.moments[1]}
	case kindMoment2:
		return []Variable{s.source}
	case kindCombined:
		return append([]Variable(nil), s.combine...)
	default:
		return nil
	}
}

// resolvedVars is the output of dependency resolution: the variables
// that go through the rasterization pass, the dispersions derived
// afterwards, and the geometry-only maps.
type resolvedVars struct {
	// raster lists rasterized variables in ascending enum order, so
	// parallel task assignment is deterministic.
	raster []Variable

	// derived lists requested dispersion variables.
	derived []Variable

	// geometric lists requested geometry-only maps.
	geometric []Variable

	// requested marks the variables the caller actually asked for.
	// Moments added only to support a dispersion stay out of the
	// final result.
	requested [numVariables]bool
}

// resolveVariables expands the requested variable list into the
// minimal rasterization set. Dispersions pull in their moment
// variables; geometry-only maps are routed around the rasterizer;
// mass weighting and the surface-density mass proxy both require the
// dataset to serve a mass variable.
func resolveVariables(vars []Variable, w Weighting, ds Dataset) (resolvedVars, error) {
	var rv resolvedVars
	if len(vars) == 0 {
		return rv, configErrorf("variables", "empty variable list")
	}

	inRaster := [numVariables]bool{}
	needMass := w.Quantity == VarMass

	for _, v := range vars {
		if v >= numVariables {
			return rv, configErrorf("variables", "unknown variable id %d", v)
		}
		rv.requested[v] = true
		switch v.spec().kind {
		case kindGeometric:
			rv.geometric = append(rv.geometric, v)
		case kindDispersion:
			rv.derived = append(rv.derived, v)
			for _, m := range v.Dependencies() {
				inRaster[m] = true
			}
		case kindMassProxy:
			needMass = true
			inRaster[v] = true
		default:
			inRaster[v] = true
		}
	}

	if needMass && !ds.Has(VarMass) {
		return rv, configErrorf("weighting",
			"mass weighting or surface density requested but dataset has no %q variable", VarMass)
	}

	// Enum-order walk keeps the rasterized set deterministic.
	for v := Variable(0); v < numVariables; v++ {
		if inRaster[v] {
			rv.raster = append(rv.raster, v)
		}
	}
	return rv, nil
}
