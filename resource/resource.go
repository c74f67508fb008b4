package resource

const (
	// UnmaskedPlanes is the number of planes in an unmasked bitmap
	// (blue, green, red, intensity).
	UnmaskedPlanes = 4
	// MaskedPlanes adds a transparency plane in front of the colour planes.
	MaskedPlanes = 5
)

// Bitmap is raw planar EGA data. Each plane holds WidthDiv8 bytes per row,
// one bit per pixel, and planes follow each other.
type Bitmap struct {
	WidthDiv8 int
	Height    int
	Masked    bool
	Data      []byte
}

func NewBitmap(widthDiv8, height int, masked bool, data []byte) *Bitmap {
	if widthDiv8 <= 0 || height <= 0 || len(data) == 0 {
		return nil
	}
	return &Bitmap{
		WidthDiv8: widthDiv8,
		Height:    height,
		Masked:    masked,
		Data:      data,
	}
}

func (b *Bitmap) Width() int { return b.WidthDiv8 * 8 }

func (b *Bitmap) Planes() int {
	if b.Masked {
		return MaskedPlanes
	}
	return UnmaskedPlanes
}

// PlaneSize is the number of bytes in a single plane.
func (b *Bitmap) PlaneSize() int { return b.WidthDiv8 * b.Height }

// Size is the number of bytes needed for every plane.
func (b *Bitmap) Size() int { return b.PlaneSize() * b.Planes() }
