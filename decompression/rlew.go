package decompression

// RLEWExpand undoes id Software's word-oriented run-length encoding. Words
// are little-endian; a word equal to key is followed by a count and a value
// word, and stands for value repeated count times. Any other word is copied.
// A single byte left at the end is emitted as-is.
func RLEWExpand(compressed []byte, key uint16) ([]byte, error) {
	out := make([]byte, 0, len(compressed))

	pos := 0
	for {
		remaining := len(compressed) - pos
		if remaining == 0 {
			return out, nil
		}
		if remaining == 1 {
			return append(out, compressed[pos]), nil
		}

		lo, hi := compressed[pos], compressed[pos+1]
		pos += 2

		if uint16(lo)|uint16(hi)<<8 != key {
			out = append(out, lo, hi)
			continue
		}

		if pos+4 > len(compressed) {
			return nil, NewError(TruncatedStream, pos, len(compressed), "count and value missing after RLEW key")
		}
		count := int(compressed[pos]) | int(compressed[pos+1])<<8
		valueLo, valueHi := compressed[pos+2], compressed[pos+3]
		pos += 4

		for i := 0; i < count; i++ {
			out = append(out, valueLo, valueHi)
		}
	}
}
