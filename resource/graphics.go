package resource

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	fontChunks = 3

	tile8Size       = 1 * 8 * UnmaskedPlanes
	maskedTile8Size = 1 * 8 * MaskedPlanes
)

var log = logrus.WithField("pkg", "resource")

// TileRanges decide which 16x16 tile section an auto-length chunk belongs to.
// The graph head does not say how many tiles there are, so a chunk whose
// decoded length falls in a range is taken to be a tile of that kind. The
// upper bounds allow for padding decoded past the end of a tile.
type TileRanges struct {
	UnmaskedMin int `toml:"unmasked_min"`
	UnmaskedMax int `toml:"unmasked_max"`
	MaskedMin   int `toml:"masked_min"`
	MaskedMax   int `toml:"masked_max"`
}

// DefaultTileRanges fit every known release of Keen 4-6.
var DefaultTileRanges = TileRanges{
	UnmaskedMin: 2 * 16 * UnmaskedPlanes,
	UnmaskedMax: 159,
	MaskedMin:   2 * 16 * MaskedPlanes,
	MaskedMax:   2*16*MaskedPlanes + 16,
}

func (r TileRanges) Unmasked(n int) bool { return r.UnmaskedMin <= n && n <= r.UnmaskedMax }

func (r TileRanges) Masked(n int) bool { return r.MaskedMin <= n && n <= r.MaskedMax }

func (r TileRanges) Validate() error {
	if r.UnmaskedMin < 2*16*UnmaskedPlanes {
		return errors.Errorf("unmasked_min must be at least %d", 2*16*UnmaskedPlanes)
	}
	if r.MaskedMin < 2*16*MaskedPlanes {
		return errors.Errorf("masked_min must be at least %d", 2*16*MaskedPlanes)
	}
	if r.UnmaskedMax < r.UnmaskedMin {
		return errors.New("unmasked_max must not be less than unmasked_min")
	}
	if r.MaskedMax < r.MaskedMin {
		return errors.New("masked_max must not be less than masked_min")
	}
	if r.UnmaskedMax >= r.MaskedMin && r.MaskedMax >= r.UnmaskedMin {
		return errors.New("unmasked and masked tile ranges overlap")
	}
	return nil
}

type PictureTableEntry struct {
	WidthDiv8 uint16
	Height    uint16
}

type SpriteTableEntry struct {
	WidthDiv8  uint16
	Height     uint16
	XOffset    int16
	YOffset    int16
	ClipLeft   int16
	ClipTop    int16
	ClipRight  int16
	ClipBottom int16
	Shifts     uint16
}

// ParsePictureTable reads 4-byte entries. A trailing partial entry is
// ignored.
func ParsePictureTable(b []byte) ([]PictureTableEntry, error) {
	entries := make([]PictureTableEntry, len(b)/4)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseSpriteTable reads 18-byte entries. A trailing partial entry is
// ignored.
func ParseSpriteTable(b []byte) ([]SpriteTableEntry, error) {
	entries := make([]SpriteTableEntry, len(b)/18)
	if err := binary.Read(bytes.NewReader(b), binary.LittleEndian, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Graphics holds every bitmap in EGAGRAPH. A nil entry is an empty slot;
// slots are kept so that map tile numbers still line up.
type Graphics struct {
	Pictures       []*Bitmap
	MaskedPictures []*Bitmap
	Sprites        []*Bitmap
	SpriteTable    []SpriteTableEntry
	Tiles8         []*Bitmap
	MaskedTiles8   []*Bitmap
	Tiles16        []*Bitmap
	MaskedTiles16  []*Bitmap
}

// Section returns the bitmaps of s.
func (g *Graphics) Section(s Section) []*Bitmap {
	switch s {
	case SectionPicture:
		return g.Pictures
	case SectionMaskedPicture:
		return g.MaskedPictures
	case SectionSprite:
		return g.Sprites
	case SectionTile8:
		return g.Tiles8
	case SectionMaskedTile8:
		return g.MaskedTiles8
	case SectionTile16:
		return g.Tiles16
	case SectionMaskedTile16:
		return g.MaskedTiles16
	}
	return nil
}

// ParseGraphics walks the chunks in the order Keen stores them: three
// tables, three fonts, pictures, masked pictures, sprites, two chunks of 8x8
// tiles and then one chunk per 16x16 tile.
func ParseGraphics(idx *ChunkIndex, ranges TileRanges) (*Graphics, error) {
	llog := log.WithFields(logrus.Fields{
		"method": "ParseGraphics",
	})

	if err := ranges.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tile ranges")
	}

	pictureTable, err := readPictureTable(idx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read picture table")
	}

	maskedPictureTable, err := readPictureTable(idx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read masked picture table")
	}

	spriteChunk, err := idx.Next()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read sprite table chunk")
	}
	spriteTable, err := ParseSpriteTable(spriteChunk)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse sprite table")
	}

	llog.Debugf("found %d pictures, %d masked pictures, %d sprites",
		len(pictureTable), len(maskedPictureTable), len(spriteTable))

	for i := 0; i < fontChunks; i++ {
		if err := idx.Advance(); err != nil {
			return nil, errors.Wrapf(err, "unable to skip font %d", i)
		}
	}

	g := &Graphics{SpriteTable: spriteTable}

	for i, p := range pictureTable {
		bitmap, err := readBitmap(idx, int(p.WidthDiv8), int(p.Height), false)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read picture %d", i)
		}
		g.Pictures = append(g.Pictures, bitmap)
	}

	for i, p := range maskedPictureTable {
		bitmap, err := readBitmap(idx, int(p.WidthDiv8), int(p.Height), true)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read masked picture %d", i)
		}
		g.MaskedPictures = append(g.MaskedPictures, bitmap)
	}

	for i, s := range spriteTable {
		bitmap, err := readBitmap(idx, int(s.WidthDiv8), int(s.Height), true)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read sprite %d", i)
		}
		g.Sprites = append(g.Sprites, bitmap)
	}

	if g.Tiles8, err = readTiles8(idx, false); err != nil {
		return nil, errors.Wrap(err, "unable to read 8x8 tiles")
	}
	if g.MaskedTiles8, err = readTiles8(idx, true); err != nil {
		return nil, errors.Wrap(err, "unable to read masked 8x8 tiles")
	}

	if g.Tiles16, err = readTiles16(idx, ranges.Unmasked, false); err != nil {
		return nil, errors.Wrap(err, "unable to read 16x16 tiles")
	}
	if g.MaskedTiles16, err = readTiles16(idx, ranges.Masked, true); err != nil {
		return nil, errors.Wrap(err, "unable to read masked 16x16 tiles")
	}

	llog.Debugf("found %d 8x8 tiles, %d masked 8x8 tiles, %d 16x16 tiles, %d masked 16x16 tiles",
		len(g.Tiles8), len(g.MaskedTiles8), len(g.Tiles16), len(g.MaskedTiles16))
	llog.Debugf("stopped at chunk %d of %d", idx.Position(), idx.Len())

	return g, nil
}

func readPictureTable(idx *ChunkIndex) ([]PictureTableEntry, error) {
	chunk, err := idx.Next()
	if err != nil {
		return nil, err
	}
	return ParsePictureTable(chunk)
}

func readBitmap(idx *ChunkIndex, widthDiv8, height int, masked bool) (*Bitmap, error) {
	data, err := idx.Next()
	if err != nil {
		return nil, err
	}
	return NewBitmap(widthDiv8, height, masked, data), nil
}

// readTiles8 splits the single chunk holding every 8x8 tile. Any padding
// left over after the last whole tile is dropped.
func readTiles8(idx *ChunkIndex, masked bool) ([]*Bitmap, error) {
	chunk, err := idx.NextWithAutoLength()
	if err != nil {
		return nil, err
	}

	size := tile8Size
	if masked {
		size = maskedTile8Size
	}

	tiles := make([]*Bitmap, 0, len(chunk)/size)
	for offset := 0; offset+size <= len(chunk); offset += size {
		tiles = append(tiles, NewBitmap(1, 8, masked, chunk[offset:offset+size]))
	}
	return tiles, nil
}

// readTiles16 reads one chunk per tile while the decoded length matches. The
// first chunk that does not match is left for the next reader.
func readTiles16(idx *ChunkIndex, matches func(int) bool, masked bool) ([]*Bitmap, error) {
	var tiles []*Bitmap
	for !idx.AtEnd() {
		chunk, err := idx.NextWithAutoLength()
		if err != nil {
			return nil, err
		}

		switch n := len(chunk); {
		case matches(n):
			tiles = append(tiles, NewBitmap(2, 16, masked, chunk))
		case n == 0:
			tiles = append(tiles, nil)
		default:
			if err := idx.RewindOne(); err != nil {
				return nil, err
			}
			return tiles, nil
		}
	}
	return tiles, nil
}
