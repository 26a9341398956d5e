package mpseg

import (
	"testing"

	"github.com/ohif-tools/mpseg/internal/tests"
)

func TestParseHeaderBlock(t *testing.T) {
	h := parseHeaderBlock([]byte("Content-Disposition: form-data; name=\"meta\"\r\n" +
		"CONTENT-TYPE :  application/json \r\n" +
		"no colon here\r\n" +
		"X-Trace: a:b:c\n" +
		"content-type: application/json; charset=utf-8"))
	tests.AssertEqual(t, Header{
		"content-disposition": `form-data; name="meta"`,
		"content-type":        "application/json; charset=utf-8",
		"x-trace":             "a:b:c",
	}, h)
	tests.AssertEqual(t, "a:b:c", h.Get("X-Trace"))
}

func TestHeaderMerge(t *testing.T) {
	h := Header{"content-type": "application/json"}
	c := h.Clone()
	c.Merge(Header{"content-type": "application/octet-stream", "content-encoding": "gzip"})
	tests.AssertEqual(t, "application/json", h.Get("Content-Type"))
	tests.AssertEqual(t, "application/octet-stream", c.Get("Content-Type"))
	tests.AssertEqual(t, "gzip", c.Get("content-encoding"))
	c.Set("Content-Encoding", "br")
	tests.AssertEqual(t, "br", c["content-encoding"])
	tests.AssertIsNil(t, Header(nil).Clone())
}

func TestDispositionName(t *testing.T) {
	for _, tc := range []struct{ cd, want string }{
		{`form-data; name="meta"; filename="meta.json"`, "meta"},
		{`form-data; NAME="seg"`, "seg"},
		{`form-data; name=seg`, ""},
		{``, ""},
		{`attachment; filename="x.bin"; name="seg"`, "seg"},
		{`form-data;name="meta"`, "meta"},
	} {
		tests.AssertEqual(t, tc.want, dispositionName(tc.cd))
	}
}

func TestLooksLikeLeakedHeader(t *testing.T) {
	tests.AssertEqual(t, true, looksLikeLeakedHeader([]byte("Content-Type: application/octet-stream\r\n\r\n")))
	tests.AssertEqual(t, true, looksLikeLeakedHeader([]byte("content-encoding: gzip")))
	tests.AssertEqual(t, false, looksLikeLeakedHeader([]byte("X-Content-Type: a")))
	tests.AssertEqual(t, false, looksLikeLeakedHeader([]byte{0x1f, 0x8b, 0x08}))
	// Only the probe is inspected.
	tests.AssertEqual(t, false, looksLikeLeakedHeader([]byte("0123456789abcdefContent-Type: a")))
}

func TestBoundaryFrom(t *testing.T) {
	for _, tc := range []struct{ ct, want string }{
		{"multipart/form-data; boundary=XYZ123", "XYZ123"},
		{`multipart/form-data; boundary="monai-abc"`, "monai-abc"},
		{"multipart/form-data; Boundary=a; charset=utf-8", "a"},
		{"multipart/form-data;boundary=  spaced  ;x=y", "spaced"},
	} {
		b, err := boundaryFrom(tc.ct)
		tests.AssertNoError(t, err)
		tests.AssertEqual(t, tc.want, b)
	}
	for _, ct := range []string{"", "   ", "multipart/form-data", "multipart/form-data; boundary=;", `multipart/form-data; boundary=""`} {
		_, err := boundaryFrom(ct)
		tests.AssertErrorIs(t, err, ErrMalformedMultipart)
	}
}
