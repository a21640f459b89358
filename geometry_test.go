package amrproj

import (
	"errors"
	"math"
	"testing"
)

func TestDirectionAxes(t *testing.T) {
	tests := []struct {
		dir     Direction
		h, v, p Axis
	}{
		{DirX, AxisY, AxisZ, AxisX},
		{DirY, AxisX, AxisZ, AxisY},
		{DirZ, AxisX, AxisY, AxisZ},
	}
	for _, tt := range tests {
		h, v, p := tt.dir.axes()
		if h != tt.h || v != tt.v || p != tt.p {
			t.Errorf("%s.axes() = (%d, %d, %d), want (%d, %d, %d)",
				tt.dir, h, v, p, tt.h, tt.v, tt.p)
		}
	}
}

func TestBuildGeometryFullDomain(t *testing.T) {
	g, err := buildGeometry(DirZ, FullDomain(), 64, 0, 1.0, 8)
	if err != nil {
		t.Fatalf("buildGeometry: %v", err)
	}
	if g.nx != 64 || g.ny != 64 {
		t.Errorf("grid is %dx%d, want 64x64", g.nx, g.ny)
	}
	if math.Abs(g.pixelSize-1.0/64) > 1e-15 {
		t.Errorf("pixel size = %v, want %v", g.pixelSize, 1.0/64)
	}
	want := [4]float64{0, 1, 0, 1}
	for i := range want {
		if math.Abs(g.extent[i]-want[i]) > 1e-12 {
			t.Errorf("extent[%d] = %v, want %v", i, g.extent[i], want[i])
		}
	}
}

func TestBuildGeometryDefaultResolution(t *testing.T) {
	g, err := buildGeometry(DirZ, FullDomain(), 0, 0, 1.0, 4)
	if err != nil {
		t.Fatalf("buildGeometry: %v", err)
	}
	if g.nx != 16 || g.ny != 16 {
		t.Errorf("default resolution gave %dx%d, want 16x16 (2^4)", g.nx, g.ny)
	}
}

func TestBuildGeometryPixelSizeOverride(t *testing.T) {
	// Explicit pixel size wins over the requested resolution:
	// resolution becomes ceil(boxlen/pixelSize).
	g, err := buildGeometry(DirZ, FullDomain(), 512, 0.3, 1.0, 8)
	if err != nil {
		t.Fatalf("buildGeometry: %v", err)
	}
	if g.nx != 4 || g.ny != 4 {
		t.Errorf("grid is %dx%d, want 4x4", g.nx, g.ny)
	}
	if math.Abs(g.pixelSize-0.25) > 1e-15 {
		t.Errorf("pixel size = %v, want 0.25", g.pixelSize)
	}
}

func TestBuildGeometrySubRange(t *testing.T) {
	rng := Range{Min: [3]float64{0.25, 0.5, 0}, Max: [3]float64{0.5, 0.75, 1}}
	g, err := buildGeometry(DirZ, rng, 8, 0, 1.0, 8)
	if err != nil {
		t.Fatalf("buildGeometry: %v", err)
	}
	if g.nx != 2 || g.ny != 2 {
		t.Errorf("grid is %dx%d, want 2x2", g.nx, g.ny)
	}
	if g.extent[0] != 0.25 || g.extent[2] != 0.5 {
		t.Errorf("extent origin = (%v, %v), want (0.25, 0.5)", g.extent[0], g.extent[2])
	}
}

func TestBuildGeometryProjectedSlab(t *testing.T) {
	rng := Range{Min: [3]float64{0, 0, 0.2}, Max: [3]float64{1, 1, 0.6}}
	g, err := buildGeometry(DirZ, rng, 8, 0, 2.0, 8)
	if err != nil {
		t.Fatalf("buildGeometry: %v", err)
	}
	if math.Abs(g.pMin-0.4) > 1e-12 || math.Abs(g.pMax-1.2) > 1e-12 {
		t.Errorf("slab = [%v, %v], want [0.4, 1.2]", g.pMin, g.pMax)
	}
}

func TestBuildGeometryInvalidDirection(t *testing.T) {
	_, err := buildGeometry(Direction(7), FullDomain(), 8, 0, 1.0, 8)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Fatalf("got %v, want ConfigurationError", err)
	}
}

func TestBuildGeometryEmptyPlaneRange(t *testing.T) {
	rng := FullDomain()
	rng.Max[AxisX] = rng.Min[AxisX]
	if _, err := buildGeometry(DirZ, rng, 8, 0, 1.0, 8); err == nil {
		t.Error("empty plane range accepted")
	}
}

func TestDirectionString(t *testing.T) {
	if DirX.String() != "x" || DirY.String() != "y" || DirZ.String() != "z" {
		t.Error("direction names wrong")
	}
	if Direction(9).String() != "invalid" {
		t.Error("out-of-range direction not flagged")
	}
}
