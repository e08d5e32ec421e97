// Package colorscale maps scalar values to colors via piecewise-linear
// gradients over ordered (position, color) stop tables. One family of
// palettes covers the grid variables; a shared green-yellow-red palette
// covers normalized city metrics, with an inversion flag so "high is good"
// and "high is bad" metrics both read intuitively.
package colorscale

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Kind selects the stop table for a lookup. The set is closed: an
// unsupported kind has no palette and no way to sneak in at runtime.
type Kind int

const (
	Temperature Kind = iota
	Precipitation
	Sunshine
	Goodness
)

// RGB is an 8-bit color without opacity.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA attaches a context-dependent opacity to an RGB color.
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// WithAlpha fixes the opacity for a usage context. Alpha never participates
// in interpolation.
func (c RGB) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Opacity per usage context: area fills stay translucent so basemap detail
// shows through; point markers render more opaque.
const (
	AlphaFill   = 0.6
	AlphaMarker = 0.85
)

// NoData is the neutral gray returned for missing goodness values. It is
// distinct from every gradient output so absence never reads as worst/best.
var NoData = RGB{R: 128, G: 128, B: 128}

// Stop is one gradient keypoint. Pos lives in [0,1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Palette is an ordered stop table. Stops must be sorted by position.
type Palette []Stop

// At returns the palette color for a ratio in [0,1]. Ratios at or beyond the
// endpoint stops return the endpoint colors exactly; between two stops the
// channels blend linearly.
func (p Palette) At(ratio float64) colorful.Color {
	if ratio <= p[0].Pos {
		return p[0].Color
	}
	last := p[len(p)-1]
	if ratio >= last.Pos {
		return last.Color
	}
	for i := 0; i < len(p)-1; i++ {
		lo, hi := p[i], p[i+1]
		if ratio >= lo.Pos && ratio <= hi.Pos {
			t := (ratio - lo.Pos) / (hi.Pos - lo.Pos)
			return lo.Color.BlendRgb(hi.Color, t).Clamped()
		}
	}
	return last.Color
}

var palettes = map[Kind]Palette{
	// Diverging cold-mild-hot scale for mean temperature. The white pivot
	// sits slightly warm of center so mid-domain values keep a cool tint
	// instead of washing out to pure white.
	Temperature: {
		{0, hex("#2166ac")},
		{0.25, hex("#67a9cf")},
		{0.55, hex("#f7f7f7")},
		{0.75, hex("#ef8a62")},
		{1, hex("#b2182b")},
	},
	// Sequential light-to-dark wet scale.
	Precipitation: {
		{0, hex("#f7fbff")},
		{0.25, hex("#c6dbef")},
		{0.5, hex("#6baed6")},
		{0.75, hex("#2171b5")},
		{1, hex("#08306b")},
	},
	// Six-stop sunshine scale, overcast blue through golden.
	Sunshine: {
		{0, hex("#313695")},
		{0.2, hex("#74add1")},
		{0.4, hex("#e0f3f8")},
		{0.6, hex("#fee090")},
		{0.8, hex("#fdae61")},
		{1, hex("#f46d43")},
	},
	// Shared goodness gradient: green (good) to red (bad).
	Goodness: {
		{0, hex("#1a9850")},
		{0.5, hex("#fee08b")},
		{1, hex("#d73027")},
	},
}

// PaletteFor returns the stop table for a kind.
func PaletteFor(kind Kind) Palette {
	return palettes[kind]
}

// ColorFor maps a value within [domainMin, domainMax] to a color on the
// kind's palette. Values outside the domain saturate to the nearest endpoint
// color. A degenerate domain (min == max) maps to the midpoint color.
func ColorFor(kind Kind, value, domainMin, domainMax float64) RGB {
	c := palettes[kind].At(Ratio(value, domainMin, domainMax))
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// GoodnessFor maps a nullable metric value onto the shared goodness
// gradient. nil returns NoData. When invert is set the ratio is reflected so
// the domain maximum lands on green.
func GoodnessFor(value *float64, domainMin, domainMax float64, invert bool) RGB {
	if value == nil {
		return NoData
	}
	ratio := Ratio(*value, domainMin, domainMax)
	if invert {
		ratio = 1 - ratio
	}
	c := palettes[Goodness].At(ratio)
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Ratio normalizes a value into [0,1] over a domain, clamping out-of-domain
// values. A degenerate domain is defined as 0.5 to avoid dividing by zero.
func Ratio(value, domainMin, domainMax float64) float64 {
	if domainMax == domainMin {
		return 0.5
	}
	ratio := (value - domainMin) / (domainMax - domainMin)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("colorscale: bad palette hex " + s)
	}
	return c
}
