package mpseg

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"github.com/ohif-tools/mpseg/internal/tests"
)

func TestEncodingTokens(t *testing.T) {
	for _, tc := range []struct {
		ce   string
		want []string
	}{
		{"", nil},
		{"gzip", []string{"gzip"}},
		{"GZIP", []string{"gzip"}},
		{"x-gzip", []string{"gzip"}},
		{"identity", nil},
		{"deflate, gzip", []string{"deflate", "gzip"}},
		{" br ,zstd", []string{"br", "zstd"}},
	} {
		tests.AssertEqual(t, tc.want, encodingTokens(tc.ce))
	}
}

func TestMaybeDecompressWhole(t *testing.T) {
	plain := []byte("--b\r\n\r\nplain body")
	d := tdc().EnableAllDecompressors()
	for _, enc := range []string{"gzip", "deflate", "br", "zstd"} {
		h := http.Header{}
		h.Set("Content-Encoding", enc)
		out, err := d.MaybeDecompressWhole(mustCompress(t, plain, enc), h)
		tests.AssertNoError(t, err)
		tests.AssertBytesEqual(t, plain, out)

		if enc == "br" {
			continue
		}
		// Already decoded upstream, detected by the missing magic number.
		out, err = d.MaybeDecompressWhole(plain, h)
		tests.AssertNoError(t, err)
		tests.AssertBytesEqual(t, plain, out)
	}

	out, err := d.MaybeDecompressWhole(plain, http.Header{})
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, plain, out)

	// Applied in order, undone in reverse.
	h := http.Header{}
	h.Set("Content-Encoding", "gzip, zstd")
	out, err = d.MaybeDecompressWhole(mustCompress(t, mustCompress(t, plain, "gzip"), "zstd"), h)
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, plain, out)

	// Codings sent on separate header lines.
	h = http.Header{}
	h.Add("Content-Encoding", "identity")
	h.Add("Content-Encoding", "gzip")
	out, err = tdc().MaybeDecompressWhole(mustCompress(t, plain, "gzip"), h)
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, plain, out)
}

func TestMaybeDecompressWholeCorrupt(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Encoding", "gzip")
	_, err := tdc().MaybeDecompressWhole([]byte{0x1f, 0x8b, 0x08, 0, 0}, h)
	tests.AssertErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestDecompressPart(t *testing.T) {
	plain := []byte("segmentation payload")
	out, err := tdc().DecompressPart(mustCompress(t, plain, "gzip"), Header{"content-encoding": "gzip"})
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, plain, out)

	out, err = tdc().DecompressPart(plain, Header{})
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, plain, out)

	// Not registered by default, so passed through.
	zs := mustCompress(t, plain, "zstd")
	out, err = tdc().DecompressPart(zs, Header{"content-encoding": "zstd"})
	tests.AssertNoError(t, err)
	tests.AssertBytesEqual(t, zs, out)

	_, err = tdc().SetDecompressor("gzip", nil).DecompressPart(plain, Header{"content-encoding": "gzip"})
	tests.AssertErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestCustomDecompressor(t *testing.T) {
	reverse := DecompressorFunc(func(data []byte) ([]byte, error) {
		out := make([]byte, len(data))
		for i, b := range data {
			out[len(data)-1-i] = b
		}
		return out, nil
	})
	d := tdc().SetDecompressor(" X-Reverse ", reverse)
	out, err := d.DecompressPart([]byte("cba"), Header{"content-encoding": "x-reverse"})
	tests.AssertNoError(t, err)
	tests.AssertEqual(t, "abc", string(out))

	failing := DecompressorFunc(func([]byte) ([]byte, error) {
		return nil, errors.New("boom")
	})
	_, err = tdc().SetDecompressor("gzip", failing).DecompressPart([]byte("x"), Header{"content-encoding": "gzip"})
	tests.AssertErrorIs(t, err, ErrUnsupportedEncoding)
	tests.AssertErrorContains(t, err, "boom")

	// Without a magic number a failed whole-body decode is taken as
	// already decoded.
	h := http.Header{}
	h.Set("Content-Encoding", "x-reverse")
	body := []byte("plain")
	out, err = tdc().SetDecompressor("x-reverse", failing).MaybeDecompressWhole(body, h)
	tests.AssertNoError(t, err)
	tests.AssertEqual(t, true, bytes.Equal(body, out))
}
