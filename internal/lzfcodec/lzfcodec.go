// Package lzfcodec adapts github.com/zhuyie/golzf's single-shot LZF
// compressor to the black-box contract mummy's compression envelope
// needs: compress a buffer into a caller-sized destination, reporting
// failure (rather than growing the destination or guessing) when the
// compressed form would not fit, and decompress into a destination of
// exactly the known original size.
//
// This mirrors liblzf's own lzf_compress/lzf_decompress contract (zero
// return means "didn't fit" / "corrupt"), which is the contract the
// format's spec calls out explicitly as an external, swappable
// dependency — mummy never implements the LZF algorithm itself.
package lzfcodec

import (
	"fmt"

	"github.com/zhuyie/golzf"
)

// Compress attempts to compress src into a buffer no larger than
// len(src)-1 (the envelope only pays for compression that actually
// shrinks the payload). ok is false if the compressed form did not fit
// or offered no savings; in that case dst is nil and the caller should
// fall back to the uncompressed form.
func Compress(src []byte) (dst []byte, ok bool) {
	if len(src) == 0 {
		return nil, false
	}
	out := make([]byte, len(src)-1)
	n, err := golzf.Compress(src, out)
	if err != nil || n <= 0 {
		return nil, false
	}
	return out[:n], true
}

// Decompress expands src, which must decompress to exactly wantLen
// bytes. An error is returned if the compressed stream is corrupt or
// decompresses to a different length than declared.
func Decompress(src []byte, wantLen int) ([]byte, error) {
	if wantLen < 0 {
		return nil, fmt.Errorf("lzfcodec: negative want length %d", wantLen)
	}
	out := make([]byte, wantLen)
	n, err := golzf.Decompress(src, out)
	if err != nil {
		return nil, fmt.Errorf("lzfcodec: decompress: %w", err)
	}
	if n != wantLen {
		return nil, fmt.Errorf("lzfcodec: decompressed %d bytes, want %d", n, wantLen)
	}
	return out, nil
}
