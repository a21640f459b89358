// Package amrproj projects adaptive-mesh-refinement (AMR) simulation
// data onto uniform 2D pixel grids.
//
// # Overview
//
// AMR datasets store cells at mixed refinement levels: a cell at level
// L has physical size boxlen/2^L and sits at 1-based integer grid
// coordinates within its level. amrproj collapses such a dataset along
// one of the three principal axes into per-variable pixel maps,
// distributing each cell's contribution over the pixels it
// geometrically overlaps in proportion to the intersection area.
// Mass-like quantities are conserved exactly (up to floating-point
// rounding).
//
// # Quick Start
//
//	import "github.com/astroviz/amrproj"
//
//	res, err := amrproj.Project(ctx, data,
//		[]amrproj.Variable{amrproj.VarSurfaceDensity, amrproj.VarVz},
//		amrproj.WithDirection(amrproj.DirZ),
//		amrproj.WithResolution(512),
//	)
//	if err != nil {
//		return err
//	}
//	sd := res.Maps[amrproj.VarSurfaceDensity].Grid
//
// # Architecture
//
// The library is organized into:
//   - Public API: Project, Dataset, Variable, Grid, Result, BufferPool
//   - internal/raster: the cell-to-pixel overlap rasterizer (direct and
//     spatially binned implementations, chosen adaptively)
//   - internal/parallel: the per-variable worker group
//   - render: optional colormapped quick-look images of finalized maps
//
// # Coordinate System
//
// Spatial ranges are given in normalized domain units in [0, 1]; the
// physical domain spans [0, boxlen] on every axis. Cell centers follow
// the AMR convention center = (index - 0.5) * cellsize. Pixel (0, 0)
// is the corner with the smallest coordinates on both plane axes.
//
// # Concurrency
//
// Projection requests are independent; a Dataset may serve concurrent
// requests as long as its accessors are safe for concurrent reads.
// Within one request, work is split per output variable, never per
// chunk of cells, so no cross-worker merge step exists.
package amrproj

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
