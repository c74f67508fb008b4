package screen

import (
	"image/color"
)

// Transparent is the palette index masked pixels use when their mask bit is
// set.
const Transparent = 16

var ega = hexPalette(
	"#000000", "#0000AA", "#00AA00", "#00AAAA",
	"#AA0000", "#AA00AA", "#AA5500", "#AAAAAA",

	"#555555", "#5555FF", "#55FF55", "#55FFFF",
	"#FF5555", "#FF55FF", "#FFFF55", "#FFFFFF",
)

var DefaultPalettes = struct {
	EGA       color.Palette
	MaskedEGA color.Palette
}{
	EGA:       ega,
	MaskedEGA: append(append(color.Palette{}, ega...), color.Transparent),
}
