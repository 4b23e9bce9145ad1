package mummy

import (
	"github.com/mummyfmt/mummy/internal/lzfcodec"
)

// minCompressibleLen is the smallest encoded length worth compressing:
// below it the envelope's own 4-byte size header can't pay for itself
// (spec §4.4's compression policy).
const minCompressibleLen = 7

// maybeCompress wraps encoded in the compression envelope if compress is
// true, encoded is long enough to be worth it, and LZF actually shrinks
// it. Otherwise it returns encoded unchanged.
func maybeCompress(encoded []byte, compress bool) []byte {
	if !compress || len(encoded) < minCompressibleLen {
		return encoded
	}

	rest := encoded[1:]
	compressed, ok := lzfcodec.Compress(rest)
	if !ok || len(compressed) >= len(rest) {
		return encoded
	}

	out := make([]byte, 0, 1+4+len(compressed))
	out = append(out, encoded[0]|compressedFlag)
	out = append(out, byte(len(rest)>>24), byte(len(rest)>>16), byte(len(rest)>>8), byte(len(rest)))
	out = append(out, compressed...)
	return out
}

// maybeDecompress reverses maybeCompress. If the high bit of stream[0] is
// not set, stream is returned unchanged (it is already the raw encoded
// form). Otherwise it reconstructs the original encoded bytes.
func maybeDecompress(stream []byte) ([]byte, error) {
	if len(stream) == 0 {
		return stream, nil
	}
	if stream[0]&compressedFlag == 0 {
		return stream, nil
	}
	if len(stream) < 5 {
		return nil, ErrTruncated
	}

	restLen := int(stream[1])<<24 | int(stream[2])<<16 | int(stream[3])<<8 | int(stream[4])
	rest, err := lzfcodec.Decompress(stream[5:], restLen)
	if err != nil {
		return nil, ErrDecompressionFailed
	}

	out := make([]byte, 0, 1+restLen)
	out = append(out, stream[0]&^compressedFlag)
	out = append(out, rest...)
	return out, nil
}
