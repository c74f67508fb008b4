package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/32bitkid/dopefish/decompression"
	"github.com/32bitkid/dopefish/resource"
)

// An all-zero dictionary turns every bit into a 0 byte.
func testIndex(t *testing.T, head []byte, dataLen int) *resource.ChunkIndex {
	idx, err := resource.NewChunkIndex(make([]byte, dataLen), head, make([]byte, decompression.DictionarySize))
	require.NoError(t, err)
	return idx
}

func TestChunkLengths(t *testing.T) {
	idx := testIndex(t, []byte{
		0x00, 0x00, 0x00,
		0xFF, 0xFF, 0xFF,
		0x02, 0x00, 0x00,
		0x07, 0x00, 0x00,
	}, 7)

	chunks, lengths := ChunkLengths(idx)
	assert.Equal(t, []float64{0, 1, 2}, chunks)
	assert.Equal(t, []float64{16, 0, 40}, lengths)
}

func TestChunkChart(t *testing.T) {
	idx := testIndex(t, []byte{
		0x00, 0x00, 0x00,
		0x02, 0x00, 0x00,
		0x07, 0x00, 0x00,
	}, 7)

	var buf bytes.Buffer
	require.NoError(t, ChunkChart(&buf, idx))
	assert.Contains(t, buf.String(), "<svg")
}

func TestChunkChartTooFewChunks(t *testing.T) {
	idx := testIndex(t, []byte{
		0x00, 0x00, 0x00,
		0x03, 0x00, 0x00,
	}, 3)

	var buf bytes.Buffer
	assert.Error(t, ChunkChart(&buf, idx))
}
