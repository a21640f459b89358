package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/astroviz/amrproj"
)

// rampGrid returns a 4x2 grid increasing along x in the top row.
func rampGrid() *amrproj.Grid {
	g := amrproj.NewGrid(4, 2)
	for x := 0; x < 4; x++ {
		g.Set(x, 1, float64(x))
	}
	return g
}

func TestHeatmapDimensionsAndOrientation(t *testing.T) {
	img := Heatmap(rampGrid(), Options{Colormap: Gray})
	b := img.Bounds()
	if b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("image is %dx%d, want 4x2", b.Dx(), b.Dy())
	}

	// Grid row 1 (largest v coordinate) must land on image row 0.
	bright := img.RGBAAt(3, 0)
	if bright.R != 255 {
		t.Errorf("max-value pixel rendered as %v, want white", bright)
	}
	dark := img.RGBAAt(3, 1)
	if dark.R != 0 {
		t.Errorf("min-value pixel rendered as %v, want black", dark)
	}
}

func TestHeatmapLogFallsBackOnNonPositive(t *testing.T) {
	g := amrproj.NewGrid(2, 2)
	g.Set(0, 0, -1)
	g.Set(1, 1, -2)
	// Must not panic or produce NaN-driven garbage.
	img := Heatmap(g, Options{Log: true, Colormap: Gray})
	if img.Bounds().Dx() != 2 {
		t.Fatal("unexpected image size")
	}
}

func TestHeatmapConstantGrid(t *testing.T) {
	g := amrproj.NewGrid(3, 3)
	for i := range g.Data() {
		g.Data()[i] = 5
	}
	img := Heatmap(g, Options{Colormap: Gray})
	// Zero span: all pixels map to t = 0.
	if c := img.RGBAAt(1, 1); c.R != 0 {
		t.Errorf("constant grid rendered as %v", c)
	}
}

func TestScale(t *testing.T) {
	img := Heatmap(rampGrid(), Options{})
	for _, smooth := range []bool{false, true} {
		out := Scale(img, 16, 8, smooth)
		if out.Bounds().Dx() != 16 || out.Bounds().Dy() != 8 {
			t.Errorf("scaled image is %dx%d, want 16x8",
				out.Bounds().Dx(), out.Bounds().Dy())
		}
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sd.png")
	if err := SavePNG(path, Heatmap(rampGrid(), Options{})); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("PNG not written: %v", err)
	}
}

func TestColormapEndpoints(t *testing.T) {
	if Gray(0) != (color.RGBA{0, 0, 0, 255}) {
		t.Error("Gray(0) not black")
	}
	if Gray(1) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Gray(1) not white")
	}
	lo, hi := Heat(0), Heat(1)
	if lo.A != 255 || hi.A != 255 {
		t.Error("Heat endpoints not opaque")
	}
	if lo.R+lo.G >= hi.R {
		t.Error("Heat ramp not increasing in brightness")
	}
}
