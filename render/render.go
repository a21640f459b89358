// Package render turns finalized projection maps into quick-look
// images. It exists for diagnostics and notebooks, not publication
// plots: values are normalized, colormapped, and optionally rescaled,
// with no axes or annotations.
package render

import (
	"image"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/astroviz/amrproj"
)

// Options control the value-to-color mapping.
type Options struct {
	// Colormap defaults to Heat.
	Colormap Colormap

	// Log maps values through log10 before normalizing. Non-positive
	// values clamp to the smallest positive value in the grid; an
	// all-non-positive grid falls back to linear mapping.
	Log bool

	// Min, Max override the normalization range. Both zero means
	// use the grid's own min and max.
	Min, Max float64
}

// Heatmap renders a grid to an RGBA image, one pixel per grid cell.
// Row 0 of the grid (smallest plane coordinate) becomes the bottom
// image row, so the image is oriented like a plot, not like screen
// memory.
func Heatmap(g *amrproj.Grid, opts Options) *image.RGBA {
	cm := opts.Colormap
	if cm == nil {
		cm = Heat
	}

	data := g.Data()
	transform := func(v float64) float64 { return v }
	if opts.Log {
		if floor := smallestPositive(data); floor > 0 {
			transform = func(v float64) float64 {
				if v < floor {
					v = floor
				}
				return math.Log10(v)
			}
		}
	}

	lo, hi := opts.Min, opts.Max
	if lo == 0 && hi == 0 {
		first := true
		for _, v := range data {
			t := transform(v)
			if first || t < lo {
				lo = t
			}
			if first || t > hi {
				hi = t
			}
			first = false
		}
	} else {
		lo, hi = transform(lo), transform(hi)
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, g.Nx(), g.Ny()))
	for y := 0; y < g.Ny(); y++ {
		for x := 0; x < g.Nx(); x++ {
			t := (transform(g.At(x, y)) - lo) / span
			img.SetRGBA(x, g.Ny()-1-y, cm(clamp01(t)))
		}
	}
	return img
}

// Scale resamples an image to w×h. Nearest-neighbor keeps pixel edges
// sharp (the honest view of a low-resolution grid); set smooth for
// Catmull-Rom interpolation.
func Scale(src image.Image, w, h int, smooth bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG writes an image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}

// smallestPositive returns the smallest value > 0, or 0 if none.
func smallestPositive(data []float64) float64 {
	out := 0.0
	for _, v := range data {
		if v > 0 && (out == 0 || v < out) {
			out = v
		}
	}
	return out
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
