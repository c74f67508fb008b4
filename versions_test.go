package dopefish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectVersion(t *testing.T) {
	var tests = []struct {
		size    int
		version ExeVersion
		name    string
	}{
		{262240, Keen4v10Demo, "Keen 4 v1.0 demo"},
		{263488, Keen4v14, "Keen 4 v1.4"},
		{267616, Keen5v14g, "Keen 5 v1.4g"},
		{270896, Keen6v15, "Keen 6 v1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DetectVersion(tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.version, v)
			assert.Equal(t, tt.name, v.String())
		})
	}
}

func TestDetectVersionUnknown(t *testing.T) {
	_, err := DetectVersion(12345)
	assert.EqualError(t, err, "unknown executable size: 12345")
}

func TestVersionTable(t *testing.T) {
	sizes := map[int]ExeVersion{}
	for v, info := range versions {
		prev, dup := sizes[info.size]
		assert.False(t, dup, "%s and %s share a size", v, prev)
		sizes[info.size] = v

		o := v.Offsets()
		assert.Equal(t, 1024, o.GraphDictLength, v.String())
		assert.Zero(t, o.GraphHeadLength%3, v.String())
		assert.Greater(t, o.MapHeadLength, mapHeadPrefix, v.String())
		assert.Less(t, o.GraphDictOffset+o.GraphDictLength, info.size, v.String())
	}
	assert.Len(t, versions, int(Keen6v15)+1)
}

func TestExeVersionStringUnknown(t *testing.T) {
	assert.Equal(t, "ExeVersion(UNKNOWN)", ExeVersion(200).String())
}
