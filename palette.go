package fractal

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of entries in a Palette.
const PaletteSize = 256

// Palette is a fixed lookup table from colour index to display colour.
type Palette [PaletteSize]color.RGBA

// HSVPalette returns a full-saturation hue sweep, red at index 0.
func HSVPalette() Palette {
	var p Palette
	for i := range p {
		c := colorful.Hsv(float64(i)*360/PaletteSize, 1, 1)
		r, g, b := c.Clamped().RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// At returns the colour at index i, clamped to [0, PaletteSize).
func (p *Palette) At(i int) color.RGBA {
	switch {
	case i < 0:
		i = 0
	case i >= PaletteSize:
		i = PaletteSize - 1
	}
	return p[i]
}

// Mix blends p towards other by t in CIE-L*a*b* space.
// t = 0 keeps p, t = 1 yields other.
func (p Palette) Mix(other Palette, t float64) Palette {
	var out Palette
	for i := range p {
		c := toColorful(p[i]).BlendLab(toColorful(other[i]), t)
		out[i] = fromColorful(c)
	}
	return out
}

// Lighten raises the HSL lightness of every entry by light, a fraction of
// the remaining distance to white. light = 0 returns p unchanged.
func (p Palette) Lighten(light float64) Palette {
	if light <= 0 {
		return p
	}
	if light > 1 {
		light = 1
	}

	var out Palette
	for i := range p {
		h, s, l := toColorful(p[i]).Hsl()
		l += (1 - l) * light
		out[i] = fromColorful(colorful.Hsl(h, s, l))
	}
	return out
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
