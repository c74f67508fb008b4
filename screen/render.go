package screen

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/32bitkid/dopefish/resource"
)

// TileSize is the width and height of a map cell in pixels.
const TileSize = 16

// RenderMap draws every cell of m: the background tile from tiles, then the
// foreground tile from masked over it. Cells that point past the end of a
// tile list, or at an empty slot, are left alone.
func RenderMap(m *resource.Map, tiles, masked []*resource.Bitmap) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, m.Width*TileSize, m.Height*TileSize))

	for y, row := range m.Tiles {
		for x, tile := range row {
			at := image.Pt(x*TileSize, y*TileSize)

			if b := lookup(tiles, int(tile.Background)); b != nil {
				drawTile(canvas, at, Unmasked(b))
			}
			if fg, ok := tile.ForegroundTile(); ok {
				if b := lookup(masked, fg); b != nil {
					drawTile(canvas, at, Masked(b))
				}
			}
		}
	}
	return canvas
}

func lookup(tiles []*resource.Bitmap, i int) *resource.Bitmap {
	if i < 0 || i >= len(tiles) {
		return nil
	}
	return tiles[i]
}

func drawTile(dst draw.Image, at image.Point, src image.Image) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(at)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}
