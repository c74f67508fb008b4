package resource

import (
	"encoding/binary"

	"github.com/32bitkid/dopefish/decompression"
)

// fixedDictionary builds a complete tree in which every byte has an 8-bit
// code equal to its own value, most significant bit first. Internal nodes are
// laid out as a heap whose first node lives in the root slot.
func fixedDictionary() []byte {
	slot := func(heap int) int {
		if heap == 0 {
			return decompression.RootNode
		}
		return heap - 1
	}

	dict := make([]byte, decompression.DictionarySize)
	for heap := 0; heap < 255; heap++ {
		rec := dict[slot(heap)*4:]
		for side, kid := range []int{2*heap + 1, 2*heap + 2} {
			if kid < 255 {
				rec[side*2] = byte(slot(kid))
				rec[side*2+1] = 1
			} else {
				rec[side*2] = byte(kid - 255)
				rec[side*2+1] = 0
			}
		}
	}
	return dict
}

// encode packs data with the codes of fixedDictionary.
func encode(data []byte) []byte {
	out := make([]byte, len(data))
	for i, v := range data {
		var packed byte
		for b := 0; b < 8; b++ {
			if v&(0x80>>uint(b)) != 0 {
				packed |= 1 << uint(b)
			}
		}
		out[i] = packed
	}
	return out
}

type testChunk struct {
	data     []byte
	prefixed bool
	empty    bool
}

func prefixed(data []byte) testChunk { return testChunk{data: data, prefixed: true} }

func headerless(data []byte) testChunk { return testChunk{data: data} }

func empty() testChunk { return testChunk{empty: true} }

// buildGraph lays chunks out one after another and returns the graphics data
// and its graph head.
func buildGraph(chunks ...testChunk) (data, head []byte) {
	put24 := func(v int) {
		head = append(head, byte(v), byte(v>>8), byte(v>>16))
	}

	for _, c := range chunks {
		if c.empty {
			put24(EmptyChunk)
			continue
		}
		put24(len(data))
		if c.prefixed {
			var n [4]byte
			binary.LittleEndian.PutUint32(n[:], uint32(len(c.data)))
			data = append(data, n[:]...)
		}
		data = append(data, encode(c.data)...)
	}
	put24(len(data))
	return data, head
}

func sequence(n int, start byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = start + byte(i)
	}
	return b
}

// framedPlane stores words as a Carmack stream wrapping an RLEW stream, both
// with length headers and neither using any compression.
func framedPlane(words []uint16) []byte {
	rlew := make([]byte, 2+len(words)*2)
	binary.LittleEndian.PutUint16(rlew, uint16(len(words)*2))
	for i, w := range words {
		binary.LittleEndian.PutUint16(rlew[2+i*2:], w)
	}

	carmack := make([]byte, 2, 2+len(rlew))
	binary.LittleEndian.PutUint16(carmack, uint16(len(rlew)))
	return append(carmack, rlew...)
}
