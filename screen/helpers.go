package screen

import (
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

// hexPalette builds a palette from "#RRGGBB" strings. It panics on a bad
// colour since every caller passes constants.
func hexPalette(hex ...string) color.Palette {
	pal := make(color.Palette, len(hex))
	for i, h := range hex {
		c, err := clr.Hex(h)
		if err != nil {
			panic(err)
		}
		r, g, b := c.RGB255()
		pal[i] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return pal
}
