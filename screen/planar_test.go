package screen

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/dopefish/resource"
)

func TestCombinePlanes(t *testing.T) {
	pixels := CombinePlanes([]byte{0x80, 0x40, 0x20, 0x10}, 1, 1, 4)
	assert.Equal(t, []uint8{1, 2, 4, 8, 0, 0, 0, 0}, pixels)
}

func TestCombinePlanesRows(t *testing.T) {
	// Two rows of 16 pixels: every plane is two bytes per row.
	data := []byte{
		0xFF, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x80, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	pixels := CombinePlanes(data, 2, 2, 4)
	require.Len(t, pixels, 32)
	assert.Equal(t, uint8(1), pixels[7])
	assert.Equal(t, uint8(0), pixels[8])
	assert.Equal(t, uint8(1), pixels[31])
	assert.Equal(t, uint8(4), pixels[16])
}

func TestCombinePlanesMissingData(t *testing.T) {
	pixels := CombinePlanes([]byte{0xFF, 0xF0}, 1, 1, 4)
	assert.Equal(t, []uint8{3, 3, 3, 3, 1, 1, 1, 1}, pixels)

	assert.Equal(t, make([]uint8, 8), CombinePlanes(nil, 1, 1, 4))
}

func TestUnmasked(t *testing.T) {
	b := resource.NewBitmap(1, 1, false, []byte{0xFF, 0x00, 0xFF, 0x0F})
	img := Unmasked(b)

	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
	assert.Equal(t, uint8(5), img.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(13), img.ColorIndexAt(7, 0))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0x55, B: 0xFF, A: 0xFF}, img.At(7, 0))
}

func TestMasked(t *testing.T) {
	b := resource.NewBitmap(1, 1, true, []byte{0x0F, 0xFF, 0x00, 0x00, 0x00})
	img := Masked(b)

	assert.Len(t, img.Palette, 17)
	for x := 0; x < 4; x++ {
		assert.Equal(t, uint8(1), img.ColorIndexAt(x, 0))
	}
	for x := 4; x < 8; x++ {
		assert.Equal(t, uint8(Transparent), img.ColorIndexAt(x, 0))
		_, _, _, a := img.At(x, 0).RGBA()
		assert.Zero(t, a)
	}

	assert.Equal(t, img, Image(b))
}

func TestPalettes(t *testing.T) {
	require.Len(t, DefaultPalettes.EGA, 16)
	assert.Equal(t, color.RGBA{A: 0xFF}, DefaultPalettes.EGA[0])
	assert.Equal(t, color.RGBA{R: 0xAA, G: 0x55, A: 0xFF}, DefaultPalettes.EGA[6])
	assert.Equal(t, DefaultPalettes.EGA, DefaultPalettes.MaskedEGA[:16])
}

func solid(masked bool, planes ...byte) *resource.Bitmap {
	var data []byte
	for _, fill := range planes {
		data = append(data, bytes.Repeat([]byte{fill}, 2*TileSize)...)
	}
	return resource.NewBitmap(2, TileSize, masked, data)
}
