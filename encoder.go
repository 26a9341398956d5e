package mpseg

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/segmentio/encoding/json"

	"github.com/ohif-tools/mpseg/internal/compress"
	"github.com/ohif-tools/mpseg/internal/header"
)

// Encoded is a multipart body produced by an Encoder.
type Encoded struct {
	Body        []byte
	ContentType string
	// Header holds Content-Type, and Content-Encoding when the whole body
	// is compressed.
	Header http.Header
}

// Encoder writes meta and seg parts in the wire format inference services
// respond with. It is mostly useful for tests and fixtures.
type Encoder struct {
	boundary      string
	partEncoding  string
	compressWhole bool
	jsonMarshal   func(v interface{}) ([]byte, error)
	metaName      string
	segName       string
}

// NewEncoder returns an Encoder writing uncompressed parts under a random
// boundary.
func NewEncoder() *Encoder {
	return &Encoder{
		jsonMarshal: json.Marshal,
		metaName:    DefaultMetaPartName,
		segName:     DefaultSegPartName,
	}
}

// SetBoundary sets a fixed boundary. It is validated by Encode.
func (e *Encoder) SetBoundary(boundary string) *Encoder {
	e.boundary = boundary
	return e
}

// SetPartEncoding sets the Content-Encoding applied to both parts: empty,
// gzip, deflate, br or zstd.
func (e *Encoder) SetPartEncoding(encoding string) *Encoder {
	e.partEncoding = encoding
	return e
}

// EnableWholeCompression gzips the complete body.
func (e *Encoder) EnableWholeCompression() *Encoder {
	e.compressWhole = true
	return e
}

// DisableWholeCompression leaves the complete body uncompressed.
func (e *Encoder) DisableWholeCompression() *Encoder {
	e.compressWhole = false
	return e
}

// SetJsonMarshal set the JSON marshal function used for the meta part.
func (e *Encoder) SetJsonMarshal(fn func(v interface{}) ([]byte, error)) *Encoder {
	if fn == nil {
		fn = json.Marshal
	}
	e.jsonMarshal = fn
	return e
}

// SetPartNames overrides the meta and seg part names.
func (e *Encoder) SetPartNames(meta, seg string) *Encoder {
	if meta != "" {
		e.metaName = meta
	}
	if seg != "" {
		e.segName = seg
	}
	return e
}

// Encode writes meta as a JSON part and seg as a binary part.
func (e *Encoder) Encode(meta interface{}, seg []byte) (*Encoded, error) {
	metaJSON, err := e.jsonMarshal(meta)
	if err != nil {
		return nil, fmt.Errorf("mpseg: marshal meta: %w", err)
	}
	boundary := e.boundary
	if boundary == "" {
		if boundary, err = randomBoundary(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err = w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("mpseg: %w", err)
	}
	if err = e.writePart(w, e.metaName, "meta.json", header.JsonContentType, metaJSON); err != nil {
		return nil, err
	}
	if err = e.writePart(w, e.segName, "seg.bin", header.OctetStreamContentType, seg); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	enc := &Encoded{
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
		Header:      http.Header{},
	}
	enc.Header.Set(header.ContentType, enc.ContentType)
	if e.compressWhole {
		if enc.Body, err = compress.Compress(enc.Body, compress.Gzip); err != nil {
			return nil, err
		}
		enc.Header.Set(header.ContentEncoding, compress.Gzip)
	}
	return enc, nil
}

func (e *Encoder) writePart(w *multipart.Writer, name, filename, contentType string, content []byte) error {
	h := make(textproto.MIMEHeader)
	h.Set(header.ContentDisposition, fmt.Sprintf(`form-data; name="%s"; filename="%s"`, name, filename))
	h.Set(header.ContentType, contentType)
	if e.partEncoding != "" {
		var err error
		if content, err = compress.Compress(content, e.partEncoding); err != nil {
			return err
		}
		h.Set(header.ContentEncoding, e.partEncoding)
	}
	pw, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = pw.Write(content)
	return err
}

func randomBoundary() (string, error) {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return "monai-" + hex.EncodeToString(buf[:]), nil
}
