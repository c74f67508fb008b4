package dopefish

import (
	"github.com/pkg/errors"
)

// ExeVersion is a known release of a Keen 4-6 executable. The executables
// carry the graph head, the graph dictionary and the map head, at places
// that differ between releases.
type ExeVersion uint8

const (
	Keen4v10Demo ExeVersion = iota
	Keen4v10
	Keen4v11
	Keen4v12
	Keen4v14
	Keen4v14g
	Keen5v10
	Keen5v14
	Keen5v14g
	Keen6v10Demo
	Keen6v10Promo
	Keen6v10
	Keen6v14
	Keen6v15
)

// mapHeadPrefix is the RLEW key and 100 map offsets, ahead of tile info.
const mapHeadPrefix = 402

// ExeOffsets locate the tables inside an unpacked executable.
type ExeOffsets struct {
	MapHeadOffset   int
	MapHeadLength   int
	GraphHeadOffset int
	GraphHeadLength int
	GraphDictOffset int
	GraphDictLength int
}

type versionInfo struct {
	name    string
	size    int
	offsets ExeOffsets
}

var versions = map[ExeVersion]versionInfo{
	Keen4v10Demo:  {"Keen 4 v1.0 demo", 262240, ExeOffsets{136336, mapHeadPrefix + 23004, 159744, 18780, 229382, 1024}},
	Keen4v10:      {"Keen 4 v1.0", 258064, ExeOffsets{156592, mapHeadPrefix + 23004, 142352, 14232, 225782, 1024}},
	Keen4v11:      {"Keen 4 v1.1", 259232, ExeOffsets{157568, mapHeadPrefix + 23004, 143328, 14232, 226946, 1024}},
	Keen4v12:      {"Keen 4 v1.2", 259920, ExeOffsets{158176, mapHeadPrefix + 23004, 143920, 14256, 227636, 1024}},
	Keen4v14:      {"Keen 4 v1.4", 263488, ExeOffsets{161328, mapHeadPrefix + 23004, 147072, 14256, 231158, 1024}},
	Keen4v14g:     {"Keen 4 v1.4g", 264864, ExeOffsets{162576, mapHeadPrefix + 23004, 148320, 14256, 232406, 1024}},
	Keen5v10:      {"Keen 5 v1.0", 262176, ExeOffsets{161664, mapHeadPrefix + 23688, 146864, 14796, 229258, 1024}},
	Keen5v14:      {"Keen 5 v1.4", 266096, ExeOffsets{165264, mapHeadPrefix + 23688, 150464, 14796, 233156, 1024}},
	Keen5v14g:     {"Keen 5 v1.4g", 267616, ExeOffsets{166640, mapHeadPrefix + 23688, 151840, 14796, 234532, 1024}},
	Keen6v10Demo:  {"Keen 6 v1.0 demo", 236112, ExeOffsets{137568, mapHeadPrefix + 19152, 124464, 13098, 204352, 1024}},
	Keen6v10Promo: {"Keen 6 v1.0 promo", 238368, ExeOffsets{139920, mapHeadPrefix + 19152, 126816, 13098, 206614, 1024}},
	Keen6v10:      {"Keen 6 v1.0", 266032, ExeOffsets{157776, mapHeadPrefix + 23904, 141088, 16683, 231698, 1024}},
	Keen6v14:      {"Keen 6 v1.4", 271696, ExeOffsets{162944, mapHeadPrefix + 23904, 146256, 16683, 237294, 1024}},
	Keen6v15:      {"Keen 6 v1.5", 270896, ExeOffsets{181984, mapHeadPrefix + 23904, 165296, 16683, 236366, 1024}},
}

func (v ExeVersion) String() string {
	if info, ok := versions[v]; ok {
		return info.name
	}
	return "ExeVersion(UNKNOWN)"
}

// Offsets returns where v keeps its tables.
func (v ExeVersion) Offsets() ExeOffsets {
	return versions[v].offsets
}

// DetectVersion identifies a release by the size of its unpacked executable.
func DetectVersion(exeSize int) (ExeVersion, error) {
	for v, info := range versions {
		if info.size == exeSize {
			return v, nil
		}
	}
	return 0, errors.Errorf("unknown executable size: %d", exeSize)
}
