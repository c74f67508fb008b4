// Package dopefish extracts the graphics and maps of Commander Keen 4-6.
//
// Keen "Goodbye Galaxy" episodes keep their bitmaps in EGAGRAPH, huffman
// compressed one chunk at a time, and their levels in GAMEMAPS, compressed
// with Carmack and RLEW. The tables needed to find anything in those files
// live inside the game's executable, at places that depend on the release.
package dopefish

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/32bitkid/dopefish/decompression"
	"github.com/32bitkid/dopefish/resource"
)

var log = logrus.WithField("pkg", "dopefish")

// Root holds the three files of one Keen episode.
type Root struct {
	Version  ExeVersion
	Offsets  ExeOffsets
	Exe      []byte
	EGAGraph []byte
	GameMaps []byte
}

// Open reads the unpacked executable, EGAGRAPH and GAMEMAPS from disk.
func Open(exePath, graphPath, mapsPath string) (*Root, error) {
	exe, err := os.ReadFile(exePath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read executable")
	}
	graph, err := os.ReadFile(graphPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read graphics")
	}
	maps, err := os.ReadFile(mapsPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read maps")
	}
	return New(exe, graph, maps)
}

// New detects the release from the size of exe.
func New(exe, graph, maps []byte) (*Root, error) {
	version, err := DetectVersion(len(exe))
	if err != nil {
		return nil, err
	}
	log.WithField("version", version).Debug("detected executable")

	root := NewWithOffsets(exe, graph, maps, version.Offsets())
	root.Version = version
	return root, nil
}

// NewWithOffsets skips detection, for executables that aren't a known
// release.
func NewWithOffsets(exe, graph, maps []byte, offsets ExeOffsets) *Root {
	return &Root{
		Offsets:  offsets,
		Exe:      exe,
		EGAGraph: graph,
		GameMaps: maps,
	}
}

func (r *Root) slice(what string, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(r.Exe) {
		return nil, decompression.NewError(decompression.OutOfRange, offset, length,
			"%s lies outside the executable", what)
	}
	return r.Exe[offset : offset+length], nil
}

func (r *Root) GraphHead() ([]byte, error) {
	return r.slice("graph head", r.Offsets.GraphHeadOffset, r.Offsets.GraphHeadLength)
}

func (r *Root) GraphDict() ([]byte, error) {
	return r.slice("graph dictionary", r.Offsets.GraphDictOffset, r.Offsets.GraphDictLength)
}

func (r *Root) MapHead() ([]byte, error) {
	return r.slice("map head", r.Offsets.MapHeadOffset, r.Offsets.MapHeadLength)
}

// ChunkIndex returns a fresh index over EGAGRAPH with its cursor at the first
// chunk.
func (r *Root) ChunkIndex() (*resource.ChunkIndex, error) {
	head, err := r.GraphHead()
	if err != nil {
		return nil, err
	}
	dict, err := r.GraphDict()
	if err != nil {
		return nil, err
	}
	return resource.NewChunkIndex(r.EGAGraph, head, dict)
}

func (r *Root) Graphics(ranges resource.TileRanges) (*resource.Graphics, error) {
	idx, err := r.ChunkIndex()
	if err != nil {
		return nil, errors.Wrap(err, "unable to index graphics")
	}
	return resource.ParseGraphics(idx, ranges)
}

func (r *Root) Maps() ([]*resource.Map, error) {
	head, err := r.MapHead()
	if err != nil {
		return nil, err
	}
	return resource.ParseMaps(r.GameMaps, head)
}
