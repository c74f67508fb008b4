package screen

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/32bitkid/dopefish/resource"
)

func TestRenderMap(t *testing.T) {
	red := solid(false, 0x00, 0x00, 0xFF, 0x00)

	// Only the top left pixel is visible, and it is white.
	dot := solid(true, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	dot.Data[0] = 0x7F

	m := &resource.Map{
		Width:  3,
		Height: 1,
		Tiles: [][]resource.MapTile{{
			{Background: 0, Foreground: 1},
			{Background: 5},
			{Background: 1, Foreground: 2},
		}},
	}

	img := RenderMap(m, []*resource.Bitmap{red, nil}, []*resource.Bitmap{dot})

	assert.Equal(t, 3*TileSize, img.Bounds().Dx())
	assert.Equal(t, TileSize, img.Bounds().Dy())

	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	darkRed := color.RGBA{R: 0xAA, A: 0xFF}

	assert.Equal(t, white, img.At(0, 0))
	assert.Equal(t, darkRed, img.At(1, 0))
	assert.Equal(t, darkRed, img.At(15, 15))
	assert.Equal(t, color.RGBA{}, img.At(TileSize, 0), "missing tiles are skipped")
	assert.Equal(t, color.RGBA{}, img.At(2*TileSize, 0), "empty slots are skipped")
}
