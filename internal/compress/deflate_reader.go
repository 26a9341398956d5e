package compress

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// DeflateReader reads the zlib-wrapped deflate stream that HTTP calls "deflate".
type DeflateReader struct {
	Body io.ReadCloser // underlying body
	dr   io.ReadCloser // lazily-initialized zlib reader
	derr error         // sticky error
}

func NewDeflateReader(body io.ReadCloser) *DeflateReader {
	return &DeflateReader{Body: body}
}

func (df *DeflateReader) Read(p []byte) (n int, err error) {
	if df.derr != nil {
		return 0, df.derr
	}
	if df.dr == nil {
		df.dr, err = zlib.NewReader(df.Body)
		if err != nil {
			df.derr = err
			return 0, err
		}
	}
	return df.dr.Read(p)
}

func (df *DeflateReader) Close() error {
	if df.dr != nil {
		df.dr.Close()
	}
	return df.Body.Close()
}
