package mpseg

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/ohif-tools/mpseg/internal/header"
)

// Header represents the headers of a multipart part, keyed by
// lower-cased header name.
type Header map[string]string

// Get returns the value of the header key, case-insensitively.
func (h Header) Get(key string) string {
	return h[strings.ToLower(key)]
}

// Set sets the header key to value.
func (h Header) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	hh := Header{}
	for k, v := range h {
		hh[k] = v
	}
	return hh
}

// Merge copies every entry of other into h, overwriting existing ones.
func (h Header) Merge(other Header) {
	for k, v := range other {
		h[k] = v
	}
}

// parseHeaderBlock parses "Name: value" lines. Lines without a colon
// are ignored and later duplicates win.
func parseHeaderBlock(block []byte) Header {
	h := Header{}
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSuffix(line, "\r")
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue
		}
		h[strings.ToLower(strings.TrimSpace(line[:idx]))] = strings.TrimSpace(line[idx+1:])
	}
	return h
}

var dispositionNameRegexp = regexp.MustCompile(`(?i)(?:^|[;\s])name="([^"]+)"`)

// dispositionName extracts the name="..." parameter of a
// Content-Disposition value.
func dispositionName(cd string) string {
	m := dispositionNameRegexp.FindStringSubmatch(cd)
	if m == nil {
		return ""
	}
	return m[1]
}

var leakedHeaderRegexp = regexp.MustCompile(`(?i)^Content-\w+`)

// leakProbeSize is how many body bytes are inspected for a leaked header.
const leakProbeSize = 16

// looksLikeLeakedHeader reports whether body starts with something that
// reads like a "Content-*" header line.
func looksLikeLeakedHeader(body []byte) bool {
	probe := body
	if len(probe) > leakProbeSize {
		probe = probe[:leakProbeSize]
	}
	return leakedHeaderRegexp.Match(probe)
}

func contentTypeOf(h Header) string {
	return h[header.ContentTypeKey]
}

func contentEncodingOf(h Header) string {
	return strings.ToLower(h[header.ContentEncodingKey])
}

var crlfcrlf = []byte("\r\n\r\n")

func indexCRLFCRLF(b []byte) int {
	return bytes.Index(b, crlfcrlf)
}
