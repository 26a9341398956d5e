package mpseg

import (
	"strings"
)

// boundaryFrom extracts the boundary parameter of a multipart Content-Type.
// The attribute name is matched case-insensitively and surrounding quotes
// are stripped. Unlike mime.ParseMediaType, unquoted tspecials are accepted.
func boundaryFrom(contentType string) (string, error) {
	if strings.TrimSpace(contentType) == "" {
		return "", malformed("missing Content-Type")
	}
	idx := strings.Index(strings.ToLower(contentType), "boundary=")
	if idx < 0 {
		return "", malformed("no boundary in Content-Type " + contentType)
	}
	b := contentType[idx+len("boundary="):]
	if end := strings.IndexByte(b, ';'); end >= 0 {
		b = b[:end]
	}
	b = strings.TrimSpace(b)
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	if b == "" {
		return "", malformed("empty boundary in Content-Type " + contentType)
	}
	return b, nil
}

// markers are the byte strings a boundary token frames parts with.
type markers struct {
	delimiter []byte // --boundary
	terminal  []byte // --boundary--
	bodyEnd   []byte // \r\n--boundary
}

func newMarkers(boundary string) markers {
	return markers{
		delimiter: []byte("--" + boundary),
		terminal:  []byte("--" + boundary + "--"),
		bodyEnd:   []byte("\r\n--" + boundary),
	}
}
