package amrproj

import (
	"math"
	"testing"
)

func TestAzimuth(t *testing.T) {
	tests := []struct {
		x, y float64
		want float64
	}{
		{1, 0, 0},
		{1, 1, math.Pi / 4},
		{0, 1, math.Pi / 2},
		{-1, 0, math.Pi},
		{0, -1, 3 * math.Pi / 2},
		{1, -1, 7 * math.Pi / 4},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := azimuth(tt.x, tt.y)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("azimuth(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("azimuth(%v, %v) = %v outside [0, 2pi)", tt.x, tt.y, got)
		}
	}
}

func TestFinalizeGridStandard(t *testing.T) {
	g := &gridGeometry{nx: 2, ny: 1, pixelSize: 0.5}
	a := &accGrids{value: []float64{6, 0}, weight: []float64{2, 0}}

	out := finalizeGrid(VarVx, a, ModeStandard, g, 1)
	if out.At(0, 0) != 3 {
		t.Errorf("weighted pixel = %v, want 3", out.At(0, 0))
	}
	if out.At(1, 0) != 0 {
		t.Errorf("zero-weight pixel = %v, want 0", out.At(1, 0))
	}
}

func TestFinalizeGridMassProxyDividesByArea(t *testing.T) {
	g := &gridGeometry{nx: 1, ny: 1, pixelSize: 0.5}
	a := &accGrids{value: []float64{2}, weight: []float64{2}}

	out := finalizeGrid(VarSurfaceDensity, a, ModeStandard, g, 1)
	if got := out.At(0, 0); math.Abs(got-8) > 1e-15 {
		t.Errorf("surface density = %v, want 8 (mass 2 / area 0.25)", got)
	}
}

func TestFinalizeGridSumModeAndScale(t *testing.T) {
	g := &gridGeometry{nx: 1, ny: 1, pixelSize: 0.5}
	a := &accGrids{value: []float64{6}, weight: []float64{2}}

	out := finalizeGrid(VarVx, a, ModeSum, g, 10)
	if got := out.At(0, 0); math.Abs(got-60) > 1e-15 {
		t.Errorf("scaled sum = %v, want 60", got)
	}
}

func TestDeriveDispersionClampsNegative(t *testing.T) {
	// A single-valued pixel: m2 == m1^2 up to rounding, and the clamp
	// must yield 0, not NaN.
	g := &gridGeometry{nx: 2, ny: 1, pixelSize: 1}
	acc := map[Variable]*accGrids{
		VarVx:  {value: []float64{0.3 * 2, 0}, weight: []float64{2, 0}},
		VarVx2: {value: []float64{0.09 * 2, 0}, weight: []float64{2, 0}},
	}

	out := deriveDispersion(VarSigmaX, acc, g, 1)
	if got := out.At(0, 0); math.IsNaN(got) || got > 1e-8 {
		t.Errorf("single-valued dispersion = %v, want 0", got)
	}
	if got := out.At(1, 0); got != 0 {
		t.Errorf("empty-pixel dispersion = %v, want 0", got)
	}
}

func TestDeriveDispersionTwoValues(t *testing.T) {
	// Weights 1 and 3 with values 2 and 4: m1 = 3.5, m2 = 13,
	// sigma = sqrt(13 - 12.25) = sqrt(0.75).
	g := &gridGeometry{nx: 1, ny: 1, pixelSize: 1}
	acc := map[Variable]*accGrids{
		VarVx:  {value: []float64{2*1 + 4*3}, weight: []float64{4}},
		VarVx2: {value: []float64{4*1 + 16*3}, weight: []float64{4}},
	}

	out := deriveDispersion(VarSigmaX, acc, g, 1)
	want := math.Sqrt(0.75)
	if got := out.At(0, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("dispersion = %v, want %v", got, want)
	}
}

func TestModeAndWeightingStrings(t *testing.T) {
	if ModeStandard.String() != "standard" || ModeSum.String() != "sum" {
		t.Error("mode names wrong")
	}
	if (Weighting{}).scale() != 1 {
		t.Error("zero scale must mean 1")
	}
	if (Weighting{Scale: 2.5}).scale() != 2.5 {
		t.Error("explicit scale dropped")
	}
}
