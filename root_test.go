package dopefish

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/dopefish/decompression"
	"github.com/32bitkid/dopefish/resource"
)

const testKey = 0xFEFE

// testEpisode builds an episode with no bitmaps and a single 1x1 map. The
// only non-empty chunk is the picture table, which decodes to nothing.
func testEpisode() (exe, graph, maps []byte, offsets ExeOffsets) {
	graph = []byte{0, 0, 0, 0}

	head := []byte{0, 0, 0}
	for i := 0; i < 7; i++ {
		head = append(head, 0xFF, 0xFF, 0xFF)
	}
	head = append(head, byte(len(graph)), 0, 0)

	plane := func(word uint16) []byte {
		return []byte{4, 0, 2, 0, byte(word), byte(word >> 8)}
	}
	maps = []byte("TED5v1.0")
	var planeOffsets [3]int
	for i, w := range []uint16{7, 0, 0} {
		planeOffsets[i] = len(maps)
		maps = append(maps, plane(w)...)
	}
	header := make([]byte, resource.MapHeaderSize)
	for i, o := range planeOffsets {
		binary.LittleEndian.PutUint32(header[i*4:], uint32(o))
		binary.LittleEndian.PutUint16(header[12+i*2:], 6)
	}
	binary.LittleEndian.PutUint16(header[18:], 1)
	binary.LittleEndian.PutUint16(header[20:], 1)
	copy(header[22:], "Tiny")
	mapOffset := len(maps)
	maps = append(maps, header...)

	mapHead := make([]byte, mapHeadPrefix)
	binary.LittleEndian.PutUint16(mapHead, testKey)
	binary.LittleEndian.PutUint32(mapHead[2:], uint32(mapOffset))

	exe = []byte("MZ")
	offsets.GraphHeadOffset, offsets.GraphHeadLength = len(exe), len(head)
	exe = append(exe, head...)
	offsets.GraphDictOffset, offsets.GraphDictLength = len(exe), decompression.DictionarySize
	exe = append(exe, make([]byte, decompression.DictionarySize)...)
	offsets.MapHeadOffset, offsets.MapHeadLength = len(exe), len(mapHead)
	exe = append(exe, mapHead...)
	return exe, graph, maps, offsets
}

func TestRoot(t *testing.T) {
	root := NewWithOffsets(testEpisode())

	idx, err := root.ChunkIndex()
	require.NoError(t, err)
	assert.Equal(t, 8, idx.Len())

	g, err := root.Graphics(resource.DefaultTileRanges)
	require.NoError(t, err)
	assert.Empty(t, g.Pictures)
	assert.Empty(t, g.Tiles8)
	assert.Empty(t, g.Tiles16)

	maps, err := root.Maps()
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, "Tiny", maps[0].Name)
	assert.Equal(t, uint16(7), maps[0].Tiles[0][0].Background)
}

func TestRootTablesOutsideExecutable(t *testing.T) {
	exe, graph, maps, offsets := testEpisode()
	offsets.MapHeadLength = len(exe)

	root := NewWithOffsets(exe, graph, maps, offsets)
	_, err := root.Maps()
	assert.ErrorIs(t, err, decompression.OutOfRange)

	offsets.GraphDictOffset = -1
	root = NewWithOffsets(exe, graph, maps, offsets)
	_, err = root.ChunkIndex()
	assert.ErrorIs(t, err, decompression.OutOfRange)
}

func TestOpen(t *testing.T) {
	exe, graph, maps, _ := testEpisode()

	dir := t.TempDir()
	write := func(name string, b []byte) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, b, 0o644))
		return p
	}
	exePath := write("KEEN4E.EXE", exe)
	graphPath := write("EGAGRAPH.CK4", graph)
	mapsPath := write("GAMEMAPS.CK4", maps)

	_, err := Open(exePath, graphPath, mapsPath)
	assert.EqualError(t, err, fmt.Sprintf("unknown executable size: %d", len(exe)))

	_, err = Open(filepath.Join(dir, "missing"), graphPath, mapsPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewDetectsVersion(t *testing.T) {
	exe := make([]byte, 262240)
	root, err := New(exe, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Keen4v10Demo, root.Version)
	assert.Equal(t, Keen4v10Demo.Offsets(), root.Offsets)

	head, err := root.GraphHead()
	require.NoError(t, err)
	assert.Len(t, head, 18780)
}
