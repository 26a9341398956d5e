package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// NewCompressWriter returns a writer compressing into w with contentEncoding.
// Close must be called to flush the trailer.
func NewCompressWriter(w io.Writer, contentEncoding string) (io.WriteCloser, error) {
	switch contentEncoding {
	case Gzip:
		return gzip.NewWriterLevel(w, gzip.DefaultCompression)
	case Deflate:
		return zlib.NewWriterLevel(w, zlib.DefaultCompression)
	case Brotli:
		return brotli.NewWriterLevel(w, brotli.DefaultCompression), nil
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	}
	return nil, fmt.Errorf("unknown content encoding %q", contentEncoding)
}

// Compress encodes data with contentEncoding in one shot.
func Compress(data []byte, contentEncoding string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewCompressWriter(&buf, contentEncoding)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
