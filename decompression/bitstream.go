package decompression

// BitStream walks the bits of a byte slice, least-significant bit first.
type BitStream struct {
	data  []byte
	index int
	mask  uint8
}

func NewBitStream(data []byte) *BitStream {
	return &BitStream{data: data, mask: 1}
}

// Next returns the next bit. ok is false once the slice is exhausted.
func (bs *BitStream) Next() (bit bool, ok bool) {
	if bs.index >= len(bs.data) {
		return false, false
	}

	bit = bs.data[bs.index]&bs.mask != 0
	if bs.mask == 0x80 {
		bs.index++
		bs.mask = 1
	} else {
		bs.mask <<= 1
	}
	return bit, true
}

// Bits drains the remaining bits.
func (bs *BitStream) Bits() []bool {
	remaining := (len(bs.data) - bs.index) * 8
	if remaining < 0 {
		remaining = 0
	}
	bits := make([]bool, 0, remaining)
	for {
		bit, ok := bs.Next()
		if !ok {
			return bits
		}
		bits = append(bits, bit)
	}
}
