package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Supported content encodings.
const (
	Gzip    = "gzip"
	Deflate = "deflate"
	Brotli  = "br"
	Zstd    = "zstd"
)

// ErrTooLarge is returned when decompressed output exceeds the configured limit.
var ErrTooLarge = errors.New("decompressed size exceeds limit")

// NewCompressReader returns a reader decoding body, or nil for an unknown
// content encoding.
func NewCompressReader(body io.ReadCloser, contentEncoding string) io.ReadCloser {
	switch contentEncoding {
	case Gzip:
		return NewGzipReader(body)
	case Deflate:
		return NewDeflateReader(body)
	case Brotli:
		return NewBrotliReader(body)
	case Zstd:
		return NewZstdReader(body)
	}
	return nil
}

// Decompress decodes data compressed with contentEncoding in one shot.
// A limit <= 0 means no limit.
func Decompress(data []byte, contentEncoding string, limit int64) ([]byte, error) {
	cr := NewCompressReader(io.NopCloser(bytes.NewReader(data)), contentEncoding)
	if cr == nil {
		return nil, fmt.Errorf("unknown content encoding %q", contentEncoding)
	}
	defer cr.Close()

	var r io.Reader = cr
	if limit > 0 {
		r = io.LimitReader(cr, limit+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}

// HasMagic reports whether the encoding has a fixed magic number,
// and if so whether data starts with it.
func HasMagic(data []byte, contentEncoding string) (known, match bool) {
	switch contentEncoding {
	case Gzip:
		return true, len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
	case Zstd:
		return true, len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd
	case Deflate:
		// zlib CMF/FLG: CM=8, and the 16-bit header is a multiple of 31.
		return true, len(data) >= 2 && data[0]&0x0f == 8 && (uint16(data[0])<<8|uint16(data[1]))%31 == 0
	}
	return false, false
}
