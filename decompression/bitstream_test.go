package decompression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitStream(t *testing.T) {
	const (
		o = false
		X = true
	)
	expected := []bool{
		o, o, o, o, o, o, o, o, // 0
		X, o, o, o, o, o, o, o, // 1
		o, o, o, o, o, o, o, X, // 128
		o, X, X, X, X, X, X, X, // 254
		X, X, X, X, X, X, X, X, // 255
	}

	bits := NewBitStream([]byte{0, 1, 128, 254, 255}).Bits()
	assert.Len(t, bits, 40)
	assert.Equal(t, expected, bits)
}

func TestBitStreamEmpty(t *testing.T) {
	bs := NewBitStream(nil)
	_, ok := bs.Next()
	assert.False(t, ok)
	assert.Empty(t, bs.Bits())
}

func TestBitStreamStaysExhausted(t *testing.T) {
	bs := NewBitStream([]byte{0x80})
	for i := 0; i < 7; i++ {
		bit, ok := bs.Next()
		assert.True(t, ok)
		assert.False(t, bit)
	}

	bit, ok := bs.Next()
	assert.True(t, ok)
	assert.True(t, bit)

	for i := 0; i < 3; i++ {
		_, ok = bs.Next()
		assert.False(t, ok)
	}
}
