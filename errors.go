package mummy

import "errors"

// Encode-side sentinel errors (spec §7).
var (
	// ErrOutOfMemory is returned when the output buffer cannot grow to
	// hold the next write. Go surfaces host allocation failure as a
	// panic from make/append rather than a recoverable error; Dumps
	// recovers that panic at the API boundary and reports it as
	// ErrOutOfMemory so callers see the documented sentinel either way.
	ErrOutOfMemory = errors.New("mummy: out of memory")

	// ErrDepthExceeded is returned when a container nests more than 256
	// levels deep.
	ErrDepthExceeded = errors.New("mummy: maximum nesting depth exceeded")

	// ErrUnsupportedType is returned when a Value's Kind is outside the
	// closed set and no default handler produced a substitute (or the
	// default handler already fired for this value or an enclosing one).
	ErrUnsupportedType = errors.New("mummy: unsupported value kind")

	// ErrInvalidDigit is returned when a Decimal's Digits slice contains
	// a byte outside [0, 9].
	ErrInvalidDigit = errors.New("mummy: invalid decimal digit")
)

// Decode-side sentinel errors (spec §7).
var (
	// ErrTruncated is returned when the input ends before a required
	// field or body has been fully read.
	ErrTruncated = errors.New("mummy: truncated input")

	// ErrBadTag is returned when a tag byte does not name a defined
	// variant.
	ErrBadTag = errors.New("mummy: undefined tag")

	// ErrBadUtf8 is returned when a Utf8 body is not well-formed UTF-8.
	ErrBadUtf8 = errors.New("mummy: invalid utf-8")

	// ErrBadDecimalDigit is returned when a decoded nibble exceeds 9.
	ErrBadDecimalDigit = errors.New("mummy: invalid decimal digit on wire")

	// ErrBadSpecialNum is returned when a SpecialNum flag byte does not
	// identify one of the four defined cases.
	ErrBadSpecialNum = errors.New("mummy: invalid specialnum flags")

	// ErrDecompressionFailed is returned when the compression envelope's
	// LZF payload does not decompress cleanly to its declared length.
	ErrDecompressionFailed = errors.New("mummy: decompression failed")
)
