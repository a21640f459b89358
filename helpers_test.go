package amrproj

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"
)

// singleCellData builds a dataset with one cell at the given level and
// 1-based grid index, with the given mass.
func singleCellData(level int32, ix, iy, iz int32, mass float64) *CellData {
	d := NewCellData(1.0,
		[]int32{level},
		[]int32{ix}, []int32{iy}, []int32{iz})
	d.SetValues(VarMass, []float64{mass})
	return d
}

// randomAMRData spreads n cells per level over the unit domain, with
// random masses and velocities. Deterministic for a given seed.
func randomAMRData(nPerLevel int, levels []int32, seed int64) *CellData {
	rng := rand.New(rand.NewSource(seed))
	n := nPerLevel * len(levels)
	lv := make([]int32, 0, n)
	cx := make([]int32, 0, n)
	cy := make([]int32, 0, n)
	cz := make([]int32, 0, n)
	mass := make([]float64, 0, n)
	vx := make([]float64, 0, n)
	vy := make([]float64, 0, n)
	vz := make([]float64, 0, n)

	for _, l := range levels {
		side := int32(1) << l
		for i := 0; i < nPerLevel; i++ {
			lv = append(lv, l)
			cx = append(cx, 1+rng.Int31n(side))
			cy = append(cy, 1+rng.Int31n(side))
			cz = append(cz, 1+rng.Int31n(side))
			mass = append(mass, rng.Float64()+0.05)
			vx = append(vx, rng.NormFloat64())
			vy = append(vy, rng.NormFloat64())
			vz = append(vz, rng.NormFloat64())
		}
	}

	d := NewCellData(1.0, lv, cx, cy, cz)
	d.SetValues(VarMass, mass)
	d.SetValues(VarVx, vx)
	d.SetValues(VarVy, vy)
	d.SetValues(VarVz, vz)
	return d
}

// captureLogs installs a debug-level logger for the duration of the
// test and returns the buffer it writes to.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

// totalMass sums the dataset's mass over cells where mask is true
// (nil mask selects all).
func totalMass(t *testing.T, d *CellData, mask []bool) float64 {
	t.Helper()
	m, err := d.Values(VarMass)
	if err != nil {
		t.Fatalf("mass values: %v", err)
	}
	var sum float64
	for i, v := range m {
		if mask == nil || mask[i] {
			sum += v
		}
	}
	return sum
}
