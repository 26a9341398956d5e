package compress

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ohif-tools/mpseg/internal/tests"
)

var encodings = []string{Gzip, Deflate, Brotli, Zstd}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("segment ", 1000))
	for _, enc := range encodings {
		c, err := Compress(data, enc)
		tests.AssertNoError(t, err)
		tests.AssertEqual(t, true, len(c) < len(data))

		d, err := Decompress(c, enc, 0)
		tests.AssertNoError(t, err)
		tests.AssertEqual(t, true, bytes.Equal(data, d))

		_, err = Decompress(c, enc, int64(len(data)-1))
		tests.AssertEqual(t, true, errors.Is(err, ErrTooLarge))

		d, err = Decompress(c, enc, int64(len(data)))
		tests.AssertNoError(t, err)
		tests.AssertEqual(t, len(data), len(d))
	}
}

func TestHasMagic(t *testing.T) {
	data := []byte("plain text")
	for _, enc := range []string{Gzip, Deflate, Zstd} {
		c, err := Compress(data, enc)
		tests.AssertNoError(t, err)
		known, match := HasMagic(c, enc)
		tests.AssertEqual(t, true, known)
		tests.AssertEqual(t, true, match)
		_, match = HasMagic(data, enc)
		tests.AssertEqual(t, false, match)
		_, match = HasMagic(nil, enc)
		tests.AssertEqual(t, false, match)
	}
	known, _ := HasMagic([]byte{0x1f, 0x8b}, Brotli)
	tests.AssertEqual(t, false, known)
}

func TestUnknownEncoding(t *testing.T) {
	tests.AssertIsNil(t, NewCompressReader(io.NopCloser(bytes.NewReader(nil)), "lzw"))
	_, err := Decompress([]byte("x"), "lzw", 0)
	tests.AssertErrorContains(t, err, "unknown content encoding")
	_, err = Compress([]byte("x"), "lzw")
	tests.AssertErrorContains(t, err, "unknown content encoding")
}

func TestCorruptInput(t *testing.T) {
	for _, enc := range []string{Gzip, Deflate, Zstd} {
		_, err := Decompress([]byte("definitely not compressed"), enc, 0)
		if err == nil {
			t.Errorf("%s: expected error on corrupt input", enc)
		}
	}
}
