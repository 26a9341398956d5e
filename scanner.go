package mpseg

import (
	"bytes"
	"strconv"

	"github.com/ohif-tools/mpseg/internal/header"
	"github.com/ohif-tools/mpseg/internal/util"
)

// Part is one section of a multipart body.
type Part struct {
	// Header holds the part headers keyed by lower-cased name.
	Header Header
	// Body is the raw part body, before any Content-Encoding is undone.
	Body []byte
}

// Name returns the name parameter of the part's Content-Disposition.
func (p *Part) Name() string {
	return dispositionName(p.Header[header.ContentDispositionKey])
}

// ContentType returns the part's Content-Type.
func (p *Part) ContentType() string {
	return contentTypeOf(p.Header)
}

// ContentEncoding returns the part's lower-cased Content-Encoding.
func (p *Part) ContentEncoding() string {
	return contentEncodingOf(p.Header)
}

var crlf = []byte("\r\n")

// scanParts splits body into parts in a single left-to-right pass. Bytes
// that do not start a delimiter are skipped one at a time until the next
// one is found. Part bodies alias body.
func (d *Decoder) scanParts(body []byte, boundary string) ([]*Part, error) {
	m := newMarkers(boundary)
	var (
		parts      []*Part
		skipped    int
		terminated bool
	)
	i := 0
	for i < len(body) {
		if util.HasPrefixAt(body, i, crlf) {
			i += len(crlf)
		}
		if util.HasPrefixAt(body, i, m.terminal) {
			terminated = true
			break
		}
		if !util.HasPrefixAt(body, i, m.delimiter) {
			i++
			skipped++
			continue
		}
		if skipped > 0 {
			d.debugf("skipped %d bytes before delimiter at offset %d", skipped, i)
			skipped = 0
		}

		j := i + len(m.delimiter)
		if util.HasPrefixAt(body, j, crlf) {
			j += len(crlf)
		}
		split := indexCRLFCRLF(body[j:])
		if split < 0 {
			return nil, malformed("no header/body separator in part " + strconv.Itoa(len(parts)))
		}
		hdr := parseHeaderBlock(body[j : j+split])
		bodyStart := j + split + len(crlfcrlf)

		end := bytes.Index(body[bodyStart:], m.bodyEnd)
		if end < 0 {
			end = len(body)
		} else {
			end += bodyStart
		}
		parts = append(parts, &Part{Header: hdr, Body: body[bodyStart:end]})
		// The cursor lands on the "--boundary" that follows the CRLF.
		i = end + len(crlf)
	}
	if skipped > 0 {
		d.debugf("skipped %d trailing bytes", skipped)
	}
	if len(parts) == 0 {
		return nil, malformed("no parts found")
	}
	if !terminated {
		d.debugf("body ended without terminal boundary after %d parts", len(parts))
	}
	return parts, nil
}

// repairLeakedHeader peels a second header block that a producer wrote into
// the body, once. It reports whether a repair was made.
func repairLeakedHeader(p *Part) bool {
	if !looksLikeLeakedHeader(p.Body) {
		return false
	}
	leak := indexCRLFCRLF(p.Body)
	if leak < 0 {
		return false
	}
	p.Header.Merge(parseHeaderBlock(p.Body[:leak]))
	p.Body = p.Body[leak+len(crlfcrlf):]
	return true
}
