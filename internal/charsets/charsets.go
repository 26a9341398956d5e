package charsets

import (
	"bytes"
	"strings"

	htmlcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

var boms = []struct {
	bom []byte
	enc string
}{
	{[]byte{0xfe, 0xff}, "utf-16be"},
	{[]byte{0xff, 0xfe}, "utf-16le"},
	{[]byte{0xef, 0xbb, 0xbf}, "utf-8"},
}

// FindEncoding finds the encoding of content, preferring a byte order mark
// over the charset parameter of contentType. A nil encoding means UTF-8.
// An empty name means the charset label was not recognized.
// bomLen is the length of the byte order mark found, if any.
func FindEncoding(content []byte, contentType string) (enc encoding.Encoding, name string, bomLen int) {
	for _, b := range boms {
		if bytes.HasPrefix(content, b.bom) {
			enc, name = htmlcharset.Lookup(b.enc)
			if enc != nil {
				if strings.ToLower(name) == "utf-8" {
					enc = nil
				}
				return enc, name, len(b.bom)
			}
		}
	}
	label := fromContentType(contentType)
	if label == "" {
		return nil, "utf-8", 0
	}
	enc, name = htmlcharset.Lookup(label)
	if enc == nil {
		return nil, "", 0
	}
	if strings.ToLower(name) == "utf-8" {
		enc = nil
	}
	return enc, name, 0
}

// Label returns the charset parameter of contentType, if any.
func Label(contentType string) string {
	return fromContentType(contentType)
}

// DecodeText converts content to UTF-8 according to FindEncoding.
// The byte order mark, if any, is dropped. Content with an unrecognized
// charset label is taken as UTF-8.
func DecodeText(content []byte, contentType string) ([]byte, error) {
	enc, _, bomLen := FindEncoding(content, contentType)
	content = content[bomLen:]
	if enc == nil {
		return content, nil
	}
	return enc.NewDecoder().Bytes(content)
}

func fromContentType(s string) string {
	for s != "" {
		csLoc := strings.Index(strings.ToLower(s), "charset")
		if csLoc == -1 {
			return ""
		}
		s = s[csLoc+len("charset"):]
		s = strings.TrimLeft(s, " \t\n\f\r")
		if !strings.HasPrefix(s, "=") {
			continue
		}
		s = s[1:]
		s = strings.TrimLeft(s, " \t\n\f\r")
		if s == "" {
			return ""
		}
		if q := s[0]; q == '"' || q == '\'' {
			s = s[1:]
			closeQuote := strings.IndexRune(s, rune(q))
			if closeQuote == -1 {
				return ""
			}
			return s[:closeQuote]
		}

		end := strings.IndexAny(s, "; \t\n\f\r")
		if end == -1 {
			end = len(s)
		}
		return s[:end]
	}
	return ""
}
