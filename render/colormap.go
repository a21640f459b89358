package render

import "image/color"

// Colormap maps a normalized value in [0, 1] to a color.
type Colormap func(t float64) color.RGBA

// Gray is the linear grayscale colormap.
func Gray(t float64) color.RGBA {
	v := uint8(t*255 + 0.5)
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// heatStops are the control points of the Heat colormap:
// black, purple, red, orange, near-white.
var heatStops = [...][3]float64{
	{0.00, 0.00, 0.05},
	{0.35, 0.00, 0.45},
	{0.85, 0.20, 0.10},
	{1.00, 0.65, 0.00},
	{1.00, 1.00, 0.85},
}

// Heat is the default colormap, a dark-to-bright ramp suited to
// surface-density maps spanning several decades.
func Heat(t float64) color.RGBA {
	if t <= 0 {
		return stopColor(heatStops[0])
	}
	if t >= 1 {
		return stopColor(heatStops[len(heatStops)-1])
	}
	scaled := t * float64(len(heatStops)-1)
	i := int(scaled)
	f := scaled - float64(i)
	a, b := heatStops[i], heatStops[i+1]
	return stopColor([3]float64{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	})
}

func stopColor(c [3]float64) color.RGBA {
	return color.RGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: 255,
	}
}
