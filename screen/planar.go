package screen

import (
	"bytes"
	"image"

	"github.com/32bitkid/bitreader"

	"github.com/32bitkid/dopefish/resource"
)

// CombinePlanes merges planar EGA data into one colour index per pixel.
// Each plane holds widthDiv8 bytes per row with the leftmost pixel in the
// most significant bit, and plane i supplies bit i of the index. Planes
// missing from data contribute 0.
func CombinePlanes(data []byte, widthDiv8, height, planes int) []uint8 {
	planeSize := widthDiv8 * height
	pixels := make([]uint8, planeSize*8)

	for p := 0; p < planes; p++ {
		start := p * planeSize
		if start >= len(data) {
			break
		}
		end := start + planeSize
		if end > len(data) {
			end = len(data)
		}

		bits := bitreader.NewReader(bytes.NewReader(data[start:end]))
		for i := 0; i < (end-start)*8; i++ {
			set, err := bits.Read1()
			if err != nil {
				break
			}
			if set {
				pixels[i] |= 1 << uint(p)
			}
		}
	}
	return pixels
}

// Unmasked draws a four plane bitmap with the EGA palette.
func Unmasked(b *resource.Bitmap) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width(), b.Height), DefaultPalettes.EGA)
	copy(img.Pix, CombinePlanes(b.Data, b.WidthDiv8, b.Height, resource.UnmaskedPlanes))
	return img
}

// Masked draws a five plane bitmap. The first plane is the mask; pixels
// whose mask bit is set are transparent and the other four planes give the
// colour of the rest.
func Masked(b *resource.Bitmap) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width(), b.Height), DefaultPalettes.MaskedEGA)
	for i, v := range CombinePlanes(b.Data, b.WidthDiv8, b.Height, resource.MaskedPlanes) {
		if v&1 != 0 {
			img.Pix[i] = Transparent
		} else {
			img.Pix[i] = v >> 1
		}
	}
	return img
}

// Image picks Masked or Unmasked to suit b.
func Image(b *resource.Bitmap) *image.Paletted {
	if b.Masked {
		return Masked(b)
	}
	return Unmasked(b)
}
