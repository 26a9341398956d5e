package mpseg

import "net/http"

var defaultDecoder = NewDecoder()

// SetDefaultDecoder override the global default Decoder.
func SetDefaultDecoder(d *Decoder) {
	if d != nil {
		defaultDecoder = d
	}
}

// DefaultDecoder returns the global default Decoder.
func DefaultDecoder() *Decoder {
	return defaultDecoder
}

// MaybeDecompressWhole is a global wrapper methods which delegated
// to the default decoder's Decoder.MaybeDecompressWhole.
func MaybeDecompressWhole(body []byte, responseHeader http.Header) ([]byte, error) {
	return defaultDecoder.MaybeDecompressWhole(body, responseHeader)
}

// ParseMultipart is a global wrapper methods which delegated
// to the default decoder's Decoder.ParseMultipart.
func ParseMultipart(body []byte, contentType string) (*Result, error) {
	return defaultDecoder.ParseMultipart(body, contentType)
}

// DecompressPart is a global wrapper methods which delegated
// to the default decoder's Decoder.DecompressPart.
func DecompressPart(body []byte, partHeader Header) ([]byte, error) {
	return defaultDecoder.DecompressPart(body, partHeader)
}

// Decode is a global wrapper methods which delegated
// to the default decoder's Decoder.Decode.
func Decode(body []byte, responseHeader http.Header) (*Result, error) {
	return defaultDecoder.Decode(body, responseHeader)
}

// DecodeResponse is a global wrapper methods which delegated
// to the default decoder's Decoder.DecodeResponse.
func DecodeResponse(resp *http.Response) (*Result, error) {
	return defaultDecoder.DecodeResponse(resp)
}
