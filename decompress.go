package mpseg

import (
	"net/http"
	"strings"

	"github.com/ohif-tools/mpseg/internal/compress"
	"github.com/ohif-tools/mpseg/internal/header"
)

// Decompressor undoes one content encoding.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// DecompressorFunc adapts a function to a Decompressor.
type DecompressorFunc func(data []byte) ([]byte, error)

// Decompress calls f(data).
func (f DecompressorFunc) Decompress(data []byte) ([]byte, error) {
	return f(data)
}

// builtinDecompressor is one of the codecs of internal/compress.
type builtinDecompressor string

func (b builtinDecompressor) Decompress(data []byte) ([]byte, error) {
	return compress.Decompress(data, string(b), 0)
}

func (b builtinDecompressor) decompressLimit(data []byte, limit int64) ([]byte, error) {
	return compress.Decompress(data, string(b), limit)
}

// GzipDecompressor returns the built-in gzip Decompressor.
func GzipDecompressor() Decompressor {
	return builtinDecompressor(compress.Gzip)
}

// DeflateDecompressor returns the built-in deflate (zlib) Decompressor.
func DeflateDecompressor() Decompressor {
	return builtinDecompressor(compress.Deflate)
}

// BrotliDecompressor returns the built-in brotli Decompressor.
func BrotliDecompressor() Decompressor {
	return builtinDecompressor(compress.Brotli)
}

// ZstdDecompressor returns the built-in zstd Decompressor.
func ZstdDecompressor() Decompressor {
	return builtinDecompressor(compress.Zstd)
}

// encodingTokens splits a Content-Encoding value into normalized codings,
// in the order they were applied. Any coding mentioning gzip is gzip.
func encodingTokens(contentEncoding string) []string {
	var tokens []string
	for _, t := range strings.Split(strings.ToLower(contentEncoding), ",") {
		t = strings.TrimSpace(t)
		switch {
		case t == "" || t == "identity":
			continue
		case strings.Contains(t, compress.Gzip):
			t = compress.Gzip
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func (d *Decoder) decompress(dec Decompressor, data []byte) ([]byte, error) {
	if b, ok := dec.(builtinDecompressor); ok {
		return b.decompressLimit(data, d.maxDecompressedSize)
	}
	return dec.Decompress(data)
}

// MaybeDecompressWhole undoes a Content-Encoding applied to the whole
// response. Bodies that do not carry the magic number of the declared
// encoding are returned unchanged: most HTTP clients have already
// decompressed them.
func (d *Decoder) MaybeDecompressWhole(body []byte, responseHeader http.Header) ([]byte, error) {
	tokens := encodingTokens(strings.Join(responseHeader.Values(header.ContentEncoding), ","))
	for i := len(tokens) - 1; i >= 0; i-- {
		enc := tokens[i]
		known, match := compress.HasMagic(body, enc)
		if known && !match {
			d.debugf("response declares %s but is not %s-encoded, assuming it was decoded upstream", enc, enc)
			return body, nil
		}
		dec := d.decompressors[enc]
		if dec == nil {
			if enc == compress.Gzip {
				return nil, unsupported("", "no decompressor for gzip response", nil)
			}
			d.log.Warnf("no decompressor for %s response, passing body through", enc)
			return body, nil
		}
		out, err := d.decompress(dec, body)
		if err != nil {
			if !known {
				d.debugf("could not decode %s response, assuming it was decoded upstream: %v", enc, err)
				return body, nil
			}
			return nil, unsupported("", "decode "+enc+" response", err)
		}
		d.debugf("decoded %s response: %d -> %d bytes", enc, len(body), len(out))
		body = out
	}
	return body, nil
}

// DecompressPart undoes the Content-Encoding declared in a part's own
// headers.
func (d *Decoder) DecompressPart(body []byte, partHeader Header) ([]byte, error) {
	out, _, err := d.decompressPart("", body, partHeader, false)
	return out, err
}

// decompressPart returns the decoded body and the codings still applied to
// it. A body whose encoding has no decompressor is returned as is together
// with that encoding. Gzip only passes through with passthrough set.
func (d *Decoder) decompressPart(name string, body []byte, partHeader Header, passthrough bool) ([]byte, string, error) {
	tokens := encodingTokens(contentEncodingOf(partHeader))
	for i := len(tokens) - 1; i >= 0; i-- {
		enc := tokens[i]
		dec := d.decompressors[enc]
		if dec == nil {
			if passthrough {
				d.log.Warnf("part %s: no decompressor for %s, leaving it encoded", name, enc)
				return body, strings.Join(tokens[:i+1], ", "), nil
			}
			if enc == compress.Gzip {
				return nil, "", unsupported(name, "no decompressor for gzip", nil)
			}
			d.log.Warnf("part %s: no decompressor for %s, passing body through", name, enc)
			return body, strings.Join(tokens[:i+1], ", "), nil
		}
		out, err := d.decompress(dec, body)
		if err != nil {
			return nil, "", unsupported(name, "decode "+enc, err)
		}
		body = out
	}
	return body, "", nil
}
