package resource

import (
	"github.com/pkg/errors"

	"github.com/32bitkid/dopefish/decompression"
)

// EmptyChunk is the graph head offset of a chunk with no data.
const EmptyChunk = 0xFFFFFF

// Mode selects how a chunk's decoded length is determined.
type Mode uint8

const (
	// LengthPrefixed chunks start with a 32-bit decoded length.
	LengthPrefixed Mode = iota
	// ExplicitLength chunks have no header; the caller knows the length.
	ExplicitLength
	// AutoLength chunks have no header and are decoded until their bits run
	// out, which may produce a few bytes of padding at the end.
	AutoLength
)

func (m Mode) String() string {
	switch m {
	case LengthPrefixed:
		return "Mode(LengthPrefixed)"
	case ExplicitLength:
		return "Mode(ExplicitLength)"
	case AutoLength:
		return "Mode(AutoLength)"
	}
	return "Mode(UNKNOWN)"
}

// Span is the region of the graphics data holding one chunk.
type Span struct {
	Index int
	Start int
	End   int
	Empty bool
}

// ChunkIndex pairs the graphics data with its graph head and huffman
// dictionary. Chunks can be decoded by index or in order using a cursor.
type ChunkIndex struct {
	data    []byte
	offsets []int
	tree    *decompression.Tree
	pos     int
}

func NewChunkIndex(data, head, dict []byte) (*ChunkIndex, error) {
	offsets, err := ParseGraphHead(head, len(data))
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse graph head")
	}

	tree, err := decompression.ParseTree(dict)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse graph dictionary")
	}

	return &ChunkIndex{
		data:    data,
		offsets: offsets,
		tree:    tree,
	}, nil
}

// ParseGraphHead reads the table of 3-byte little-endian chunk offsets. The
// table starts at 0 and ends with the length of the graphics data; that last
// entry is only a check and is not returned.
func ParseGraphHead(head []byte, dataLen int) ([]int, error) {
	if len(head)%3 != 0 {
		return nil, decompression.NewError(decompression.MalformedContainer, 0, len(head),
			"graph head isn't a multiple of 3 bytes")
	}
	if len(head) == 0 {
		return nil, decompression.NewError(decompression.MalformedContainer, 0, 0, "graph head is empty")
	}

	offsets := make([]int, len(head)/3)
	for i := range offsets {
		offsets[i] = int(head[i*3]) | int(head[i*3+1])<<8 | int(head[i*3+2])<<16
	}

	if offsets[0] != 0 {
		return nil, decompression.NewError(decompression.MalformedContainer, 0, offsets[0],
			"graph head does not start with 0")
	}
	if last := offsets[len(offsets)-1]; last != dataLen {
		return nil, decompression.NewError(decompression.MalformedContainer, last, dataLen,
			"graph head does not end with the graphics data length")
	}

	return offsets[:len(offsets)-1], nil
}

// Len is the number of chunks.
func (c *ChunkIndex) Len() int { return len(c.offsets) }

// Position is the index of the chunk the cursor reads next.
func (c *ChunkIndex) Position() int { return c.pos }

func (c *ChunkIndex) AtEnd() bool { return c.pos >= len(c.offsets) }

// Locate finds the data region of chunk i. A chunk runs until the next
// chunk that starts after it, or to the end of the data.
func (c *ChunkIndex) Locate(i int) (Span, error) {
	if i < 0 || i >= len(c.offsets) {
		return Span{}, decompression.NewError(decompression.OutOfRange, i, len(c.offsets), "chunk index out of range")
	}

	start := c.offsets[i]
	if start == EmptyChunk {
		return Span{Index: i, Start: start, End: start, Empty: true}, nil
	}
	if start > len(c.data) {
		return Span{}, decompression.NewError(decompression.OutOfRange, start, len(c.data),
			"chunk %d starts past the end of the graphics data", i)
	}

	end := len(c.data)
	for _, next := range c.offsets[i+1:] {
		if next != EmptyChunk && next > start {
			if next < end {
				end = next
			}
			break
		}
	}

	return Span{Index: i, Start: start, End: end}, nil
}

// Decode decodes chunk i. length is only used by ExplicitLength.
func (c *ChunkIndex) Decode(i int, mode Mode, length int) ([]byte, error) {
	span, err := c.Locate(i)
	if err != nil {
		return nil, err
	}
	return c.decode(span, mode, length)
}

func (c *ChunkIndex) decode(span Span, mode Mode, length int) ([]byte, error) {
	if span.Empty {
		return []byte{}, nil
	}

	body := c.data[span.Start:span.End]
	switch mode {
	case LengthPrefixed:
		if len(body) < 4 {
			return nil, decompression.NewError(decompression.OutOfRange, span.Start, len(body),
				"chunk %d is too short for its length header", span.Index)
		}
		n, rest, err := decompression.SplitLength32(body)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read length of chunk %d", span.Index)
		}
		return c.tree.Decode(rest, n), nil
	case ExplicitLength:
		return c.tree.Decode(body, length), nil
	case AutoLength:
		return c.tree.Decode(body, decompression.Unbounded), nil
	}
	return nil, errors.Errorf("unknown chunk mode: %s", mode)
}

// Chunk decodes length-prefixed chunk i.
func (c *ChunkIndex) Chunk(i int) ([]byte, error) {
	return c.Decode(i, LengthPrefixed, 0)
}

// ChunkWithLength decodes chunk i, which has no header, to length bytes.
func (c *ChunkIndex) ChunkWithLength(i, length int) ([]byte, error) {
	return c.Decode(i, ExplicitLength, length)
}

// PeekNext locates the chunk under the cursor without moving it.
func (c *ChunkIndex) PeekNext() (Span, error) {
	if c.AtEnd() {
		return Span{}, decompression.NewError(decompression.OutOfRange, c.pos, len(c.offsets), "no chunks left")
	}
	return c.Locate(c.pos)
}

// Advance moves the cursor past the next chunk without decoding it.
func (c *ChunkIndex) Advance() error {
	if _, err := c.PeekNext(); err != nil {
		return err
	}
	c.pos++
	return nil
}

// RewindOne moves the cursor back one chunk.
func (c *ChunkIndex) RewindOne() error {
	if c.pos == 0 {
		return decompression.NewError(decompression.OutOfRange, -1, len(c.offsets), "cannot rewind before the first chunk")
	}
	c.pos--
	return nil
}

// Next decodes the length-prefixed chunk under the cursor and advances.
func (c *ChunkIndex) Next() ([]byte, error) {
	return c.next(LengthPrefixed, 0)
}

// NextWithLength decodes the header-less chunk under the cursor to length
// bytes and advances.
func (c *ChunkIndex) NextWithLength(length int) ([]byte, error) {
	return c.next(ExplicitLength, length)
}

// NextWithAutoLength decodes the header-less chunk under the cursor until
// its data runs out and advances.
func (c *ChunkIndex) NextWithAutoLength() ([]byte, error) {
	return c.next(AutoLength, 0)
}

func (c *ChunkIndex) next(mode Mode, length int) ([]byte, error) {
	span, err := c.PeekNext()
	if err != nil {
		return nil, err
	}

	out, err := c.decode(span, mode, length)
	if err != nil {
		return nil, err
	}

	c.pos++
	return out, nil
}
