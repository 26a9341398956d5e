package util

import (
	"bytes"
	"strings"

	"github.com/ohif-tools/mpseg/internal/header"
)

// IsJSONType method is to check JSON content type or not
func IsJSONType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), header.JsonContentType)
}

// IsOctetStreamType method is to check binary content type or not
func IsOctetStreamType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), header.OctetStreamContentType)
}

// HasPrefixAt reports whether b[i:] begins with prefix.
func HasPrefixAt(b []byte, i int, prefix []byte) bool {
	if i < 0 || i > len(b) {
		return false
	}
	return bytes.HasPrefix(b[i:], prefix)
}
