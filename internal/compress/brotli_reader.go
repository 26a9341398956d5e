package compress

import (
	"io"

	"github.com/andybalholm/brotli"
)

type BrotliReader struct {
	Body io.ReadCloser // underlying body
	br   io.Reader     // lazily-initialized brotli reader
}

func NewBrotliReader(body io.ReadCloser) *BrotliReader {
	return &BrotliReader{Body: body}
}

func (br *BrotliReader) Read(p []byte) (n int, err error) {
	if br.br == nil {
		br.br = brotli.NewReader(br.Body)
	}
	return br.br.Read(p)
}

func (br *BrotliReader) Close() error {
	return br.Body.Close()
}
