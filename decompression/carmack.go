package decompression

const (
	// NearTag marks a back-reference relative to the end of the output.
	NearTag = 0xA7
	// FarTag marks a back-reference to an absolute word in the output.
	FarTag = 0xA8
)

// CarmackExpand undoes Carmack compression. The input is read as
// (count, tag) byte pairs:
//
//   tag  | count | payload            | emits
//   0xA7 |   0   | byte b             | b, 0xA7
//   0xA7 |   n   | distance d         | n words from d words back
//   0xA8 |   0   | byte b             | b, 0xA8
//   0xA8 |   n   | word offset o (LE) | n words from word o
//   else |   c   | -                  | c, tag
//
// A single byte left at the end is emitted as-is.
func CarmackExpand(compressed []byte) ([]byte, error) {
	out := make([]byte, 0, len(compressed)*2)

	pos := 0
	for {
		remaining := len(compressed) - pos
		if remaining == 0 {
			return out, nil
		}
		if remaining == 1 {
			return append(out, compressed[pos]), nil
		}

		count, tag := compressed[pos], compressed[pos+1]
		pos += 2

		switch tag {
		case NearTag:
			if pos >= len(compressed) {
				return nil, NewError(TruncatedStream, pos, len(compressed), "distance byte missing after near pointer")
			}
			distance := compressed[pos]
			pos++

			if count == 0 {
				out = append(out, distance, tag)
				continue
			}

			start := len(out) - int(distance)*2
			var err error
			if out, err = copyWithin(out, start, int(count)*2); err != nil {
				return nil, err
			}

		case FarTag:
			if count == 0 {
				if pos >= len(compressed) {
					return nil, NewError(TruncatedStream, pos, len(compressed), "escaped byte missing after far pointer")
				}
				out = append(out, compressed[pos], tag)
				pos++
				continue
			}

			if pos+2 > len(compressed) {
				return nil, NewError(TruncatedStream, pos, len(compressed), "offset missing after far pointer")
			}
			offset := int(compressed[pos]) | int(compressed[pos+1])<<8
			pos += 2

			var err error
			if out, err = copyWithin(out, offset*2, int(count)*2); err != nil {
				return nil, err
			}

		default:
			out = append(out, count, tag)
		}
	}
}

// copyWithin appends n bytes read from out starting at start. The copy runs
// one byte at a time so a source overlapping the destination repeats the
// bytes just written.
func copyWithin(out []byte, start, n int) ([]byte, error) {
	if start < 0 || start >= len(out) {
		return nil, NewError(OutOfRange, start, len(out), "back-reference outside of expanded data")
	}
	for i := 0; i < n; i++ {
		out = append(out, out[start+i])
	}
	return out, nil
}
