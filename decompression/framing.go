package decompression

import (
	"encoding/binary"
	"math"
)

// SplitLength16 splits a little-endian 16-bit length header from its body.
func SplitLength16(b []byte) (int, []byte, error) {
	if len(b) < 2 {
		return 0, nil, NewError(TruncatedStream, 0, len(b), "16-bit length header missing")
	}
	return int(binary.LittleEndian.Uint16(b)), b[2:], nil
}

// SplitLength32 splits a little-endian 32-bit length header from its body.
func SplitLength32(b []byte) (int, []byte, error) {
	if len(b) < 4 {
		return 0, nil, NewError(TruncatedStream, 0, len(b), "32-bit length header missing")
	}
	n := binary.LittleEndian.Uint32(b)
	if uint64(n) > math.MaxInt {
		return 0, nil, NewError(MalformedContainer, 0, len(b), "32-bit length %d does not fit in an int", n)
	}
	return int(n), b[4:], nil
}

// CarmackExpandFramed expands a Carmack stream that starts with its expanded
// size in bytes.
func CarmackExpandFramed(b []byte) ([]byte, error) {
	length, body, err := SplitLength16(b)
	if err != nil {
		return nil, err
	}
	out, err := CarmackExpand(body)
	if err != nil {
		return nil, err
	}
	return fitLength(out, length)
}

// RLEWExpandFramed expands an RLEW stream that starts with its expanded size
// in bytes.
func RLEWExpandFramed(b []byte, key uint16) ([]byte, error) {
	length, body, err := SplitLength16(b)
	if err != nil {
		return nil, err
	}
	out, err := RLEWExpand(body, key)
	if err != nil {
		return nil, err
	}
	return fitLength(out, length)
}

// fitLength trims padding past the declared length. Coming up short means
// the stream was cut off.
func fitLength(out []byte, length int) ([]byte, error) {
	if len(out) < length {
		return nil, NewError(TruncatedStream, len(out), length, "expanded to fewer bytes than declared")
	}
	return out[:length], nil
}
