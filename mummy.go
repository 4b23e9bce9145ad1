package mummy

import (
	"fmt"

	"github.com/mummyfmt/mummy/internal/buffer"
)

// initialBufferCapacity is Dumps' starting allocation, per spec §4.5.
const initialBufferCapacity = 4096

// Option configures a Dumps call.
type Option func(*dumpOptions)

type dumpOptions struct {
	compress bool
	def      DefaultFunc
}

// WithCompression enables or disables the LZF compression envelope.
// Compression is enabled by default.
func WithCompression(enabled bool) Option {
	return func(o *dumpOptions) { o.compress = enabled }
}

// WithDefault installs a handler invoked once per Value whose Kind falls
// outside the closed set, to obtain an in-model substitute.
func WithDefault(def DefaultFunc) Option {
	return func(o *dumpOptions) { o.def = def }
}

// Dumps encodes v into a mummy byte string. By default the result is
// wrapped in the LZF compression envelope whenever doing so shrinks the
// output (see WithCompression to disable this).
func Dumps(v Value, opts ...Option) (b []byte, err error) {
	o := dumpOptions{compress: true}
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()

	w := buffer.NewWriter(initialBufferCapacity)
	if err := encodeValue(w, v, o.def, 1, false); err != nil {
		return nil, err
	}

	return maybeCompress(w.Bytes(), o.compress), nil
}

// Loads decodes a single Value from b, reversing the compression
// envelope first if it is present.
func Loads(b []byte) (Value, error) {
	if len(b) == 0 {
		return Value{}, ErrTruncated
	}

	raw, err := maybeDecompress(b)
	if err != nil {
		return Value{}, err
	}

	r := buffer.NewReader(raw)
	return decodeValue(r, 1)
}
