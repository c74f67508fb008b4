package resource

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/32bitkid/dopefish/decompression"
)

const (
	// MapHeaderSize is the size of a map header in GAMEMAPS.
	MapHeaderSize = 38
	// PlaneCount is the number of planes in every map.
	PlaneCount = 3

	// MapSlots is the number of map offsets in the map head. Tile info
	// follows them and is not used.
	MapSlots = 100

	mapNameSize  = 16
	missingMap   = 0xFFFFFFFF
	mapHeadStart = 2
)

const (
	PlaneBackground = iota
	PlaneForeground
	PlaneInfo
)

// MapHead is stored in the executable and locates every map in GAMEMAPS.
type MapHead struct {
	RLEWKey uint16
	Offsets []int
}

// ParseMapHead reads the RLEW key followed by up to MapSlots 32-bit map
// offsets. Unused map slots, stored as 0 or -1, are skipped.
func ParseMapHead(b []byte) (*MapHead, error) {
	if len(b) < mapHeadStart {
		return nil, decompression.NewError(decompression.MalformedContainer, 0, len(b), "map head is missing its RLEW key")
	}

	head := &MapHead{RLEWKey: binary.LittleEndian.Uint16(b)}
	end := mapHeadStart + MapSlots*4
	if end > len(b) {
		end = len(b)
	}
	for pos := mapHeadStart; pos+4 <= end; pos += 4 {
		offset := binary.LittleEndian.Uint32(b[pos:])
		if offset == 0 || offset == missingMap {
			continue
		}
		head.Offsets = append(head.Offsets, int(offset))
	}
	return head, nil
}

type mapHeader struct {
	PlaneOffsets [PlaneCount]uint32
	PlaneLengths [PlaneCount]uint16
	Width        uint16
	Height       uint16
	Name         [mapNameSize]byte
}

// MapHeader describes one map in GAMEMAPS.
type MapHeader struct {
	PlaneOffsets [PlaneCount]int
	PlaneLengths [PlaneCount]int
	Width        int
	Height       int
	Name         string
}

func ParseMapHeader(gamemaps []byte, offset int) (MapHeader, error) {
	if offset < 0 || offset+MapHeaderSize > len(gamemaps) {
		return MapHeader{}, decompression.NewError(decompression.OutOfRange, offset, len(gamemaps),
			"map header does not fit in the map data")
	}

	var raw mapHeader
	r := bytes.NewReader(gamemaps[offset : offset+MapHeaderSize])
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return MapHeader{}, err
	}

	header := MapHeader{
		Width:  int(raw.Width),
		Height: int(raw.Height),
		Name:   asciiz(raw.Name[:]),
	}
	for i := 0; i < PlaneCount; i++ {
		header.PlaneOffsets[i] = int(raw.PlaneOffsets[i])
		header.PlaneLengths[i] = int(raw.PlaneLengths[i])
	}
	return header, nil
}

func asciiz(b []byte) string {
	if end := bytes.IndexByte(b, 0); end >= 0 {
		b = b[:end]
	}
	return strings.TrimSpace(string(b))
}

// MapTile is one cell of a map. Foreground and Info hold the raw plane
// values, where 0 means nothing is there.
type MapTile struct {
	Background uint16
	Foreground uint16
	Info       uint16
}

// ForegroundTile is the masked 16x16 tile drawn over the background.
func (t MapTile) ForegroundTile() (int, bool) {
	if t.Foreground == 0 {
		return 0, false
	}
	return int(t.Foreground) - 1, true
}

// InfoSprite is the actor or marker placed on this cell.
func (t MapTile) InfoSprite() (int, bool) {
	if t.Info == 0 {
		return 0, false
	}
	return int(t.Info) - 1, true
}

type Map struct {
	Name   string
	Width  int
	Height int
	// Tiles is indexed by row, then column.
	Tiles [][]MapTile
}

// ParsePlane expands one plane: Carmack first, then RLEW. Both stages start
// with their expanded size.
func ParsePlane(gamemaps []byte, offset, length int, key uint16) ([]uint16, error) {
	if offset < 0 || length < 0 || offset+length > len(gamemaps) {
		return nil, decompression.NewError(decompression.OutOfRange, offset, length,
			"plane does not fit in the map data")
	}

	half, err := decompression.CarmackExpandFramed(gamemaps[offset : offset+length])
	if err != nil {
		return nil, errors.Wrap(err, "unable to expand carmack data")
	}

	expanded, err := decompression.RLEWExpandFramed(half, key)
	if err != nil {
		return nil, errors.Wrap(err, "unable to expand RLEW data")
	}

	words := make([]uint16, len(expanded)/2)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(expanded[i*2:])
	}
	return words, nil
}

func ParseMap(gamemaps []byte, header MapHeader, key uint16) (*Map, error) {
	cells := header.Width * header.Height

	var planes [PlaneCount][]uint16
	for i := range planes {
		plane, err := ParsePlane(gamemaps, header.PlaneOffsets[i], header.PlaneLengths[i], key)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse plane %d", i)
		}
		if len(plane) != cells {
			return nil, decompression.NewError(decompression.MalformedContainer, header.PlaneOffsets[i], len(plane)*2,
				"plane %d expanded to %d tiles, expected %dx%d", i, len(plane), header.Width, header.Height)
		}
		planes[i] = plane
	}

	m := &Map{
		Name:   header.Name,
		Width:  header.Width,
		Height: header.Height,
		Tiles:  make([][]MapTile, header.Height),
	}
	for y := range m.Tiles {
		row := make([]MapTile, header.Width)
		for x := range row {
			i := y*header.Width + x
			row[x] = MapTile{
				Background: planes[PlaneBackground][i],
				Foreground: planes[PlaneForeground][i],
				Info:       planes[PlaneInfo][i],
			}
		}
		m.Tiles[y] = row
	}
	return m, nil
}

// ParseMaps decodes every map listed in the map head. Offsets past the end
// of gamemaps are junk slots and are skipped.
func ParseMaps(gamemaps, mapHead []byte) ([]*Map, error) {
	llog := log.WithFields(logrus.Fields{
		"method": "ParseMaps",
	})

	head, err := ParseMapHead(mapHead)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse map head")
	}
	llog.Debugf("map head lists %d maps, RLEW key 0x%04X", len(head.Offsets), head.RLEWKey)

	maps := make([]*Map, 0, len(head.Offsets))
	for i, offset := range head.Offsets {
		if offset >= len(gamemaps) {
			llog.Debugf("skipping map %d: offset 0x%X is past the end of the map data", i, offset)
			continue
		}

		header, err := ParseMapHeader(gamemaps, offset)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read header of map %d", i)
		}

		m, err := ParseMap(gamemaps, header, head.RLEWKey)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to parse map %d (%s)", i, header.Name)
		}

		llog.Debugf("map %d: %q %dx%d", i, m.Name, m.Width, m.Height)
		maps = append(maps, m)
	}
	return maps, nil
}
