package io

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"

	errs "github.com/matzehuels/witness/pkg/errors"
)

// compressedExt marks witness files stored zstd-compressed.
const compressedExt = ".zst"

// IsCompressed reports whether path names a zstd-compressed witness.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, compressedExt)
}

// decompress wraps r in a zstd decoder when path is compressed. The returned
// close function releases the decoder and must always be called.
func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	if !IsCompressed(path) {
		return r, func() {}, nil
	}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeMalformedMarkup, err, "create zstd decoder for %s", path)
	}
	return dec, dec.Close, nil
}

// compress wraps w in a zstd encoder when path is compressed. The returned
// close function flushes the encoder and reports any write error.
func compress(path string, w io.Writer) (io.Writer, func() error, error) {
	if !IsCompressed(path) {
		return w, func() error { return nil }, nil
	}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, nil, errs.Wrap(errs.ErrCodeWriteFailed, err, "create zstd encoder for %s", path)
	}
	return enc, enc.Close, nil
}
