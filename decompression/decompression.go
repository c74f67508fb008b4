// Package decompression implements the decompressors used by the id Software
// "Galaxy" engine (Commander Keen 4-6) to pack graphics and maps.
//
// Graphics chunks are Huffman coded against a 256-node dictionary that ships
// inside the game executable. Map planes are compressed twice: first with
// RLEW, then with Carmack near/far back-references, so they are expanded in
// the opposite order.
package decompression

import "fmt"

// ErrorKind classifies a decompression failure. An ErrorKind is itself an
// error so callers can match with errors.Is.
type ErrorKind uint8

const (
	// MalformedContainer means a structural invariant of the container was
	// violated, e.g. a graph head with the wrong size or bounds.
	MalformedContainer ErrorKind = iota + 1
	// TruncatedStream means a token promised more bytes than remained.
	TruncatedStream
	// OutOfRange means a chunk index or back-reference address fell outside
	// its buffer.
	OutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedContainer:
		return "Error(MalformedContainer)"
	case TruncatedStream:
		return "Error(TruncatedStream)"
	case OutOfRange:
		return "Error(OutOfRange)"
	}
	return "Error(UNKNOWN)"
}

func (k ErrorKind) Error() string { return k.String() }

// Error is returned by every operation in this package. Offset and Length
// locate the offending data so that a bad version table can be diagnosed.
type Error struct {
	Kind   ErrorKind
	Offset int
	Length int
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (offset %d, length %d)", e.Kind, e.Reason, e.Offset, e.Length)
}

func (e *Error) Unwrap() error { return e.Kind }

// NewError builds an Error, formatting its reason.
func NewError(kind ErrorKind, offset, length int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Length: length,
		Reason: fmt.Sprintf(format, args...),
	}
}
