package mpseg

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/ohif-tools/mpseg/internal/charsets"
	"github.com/ohif-tools/mpseg/internal/compress"
	"github.com/ohif-tools/mpseg/internal/header"
	"github.com/ohif-tools/mpseg/internal/util"
)

const (
	DefaultMetaPartName = "meta"
	DefaultSegPartName  = "seg"

	defaultPreviewLength       = 24
	defaultMaxDecompressedSize = 1 << 30
)

// ErrNilResponse is returned by DecodeResponse for a nil response.
var ErrNilResponse = errors.New("nil response")

// Decoder decodes segmentation inference responses. The zero value is not
// usable, create one with NewDecoder. A configured Decoder holds no per-call
// state and may be used from several goroutines; the Set/Enable/Disable
// methods must not be called concurrently with decoding.
type Decoder struct {
	log                 Logger
	debugLog            bool
	decompressors       map[string]Decompressor
	maxDecompressedSize int64
	previewLength       int
	metaName            string
	segName             string
	repairLeakedHeaders bool
	segPassthrough      bool
	jsonUnmarshal       func(data []byte, v interface{}) error
}

// NewDecoder returns a Decoder that understands gzip and logs warnings to
// stderr.
func NewDecoder() *Decoder {
	return &Decoder{
		log: createDefaultLogger(),
		decompressors: map[string]Decompressor{
			compress.Gzip: GzipDecompressor(),
		},
		maxDecompressedSize: defaultMaxDecompressedSize,
		previewLength:       defaultPreviewLength,
		metaName:            DefaultMetaPartName,
		segName:             DefaultSegPartName,
		repairLeakedHeaders: true,
		jsonUnmarshal:       json.Unmarshal,
	}
}

// Clone copies the Decoder, so the copy can be configured independently.
func (d *Decoder) Clone() *Decoder {
	cd := *d
	cd.decompressors = make(map[string]Decompressor, len(d.decompressors))
	for k, v := range d.decompressors {
		cd.decompressors[k] = v
	}
	return &cd
}

// SetLogger set the customized logger for decoder, will disable log if set to nil.
func (d *Decoder) SetLogger(log Logger) *Decoder {
	if log == nil {
		d.log = &disableLogger{}
		return d
	}
	d.log = log
	return d
}

// EnableDebugLog enables debug level log of scanning, resync and
// decompression details.
func (d *Decoder) EnableDebugLog() *Decoder {
	d.debugLog = true
	return d
}

// DisableDebugLog disables debug level log.
func (d *Decoder) DisableDebugLog() *Decoder {
	d.debugLog = false
	return d
}

// SetDecompressor registers dec for a Content-Encoding token, or removes
// the registration if dec is nil. Without a gzip decompressor, gzip
// encoded content fails with ErrUnsupportedEncoding.
func (d *Decoder) SetDecompressor(encoding string, dec Decompressor) *Decoder {
	encoding = strings.ToLower(strings.TrimSpace(encoding))
	if dec == nil {
		delete(d.decompressors, encoding)
		return d
	}
	d.decompressors[encoding] = dec
	return d
}

// EnableAllDecompressors registers the built-in gzip, deflate, br and zstd
// decompressors.
func (d *Decoder) EnableAllDecompressors() *Decoder {
	d.decompressors[compress.Gzip] = GzipDecompressor()
	d.decompressors[compress.Deflate] = DeflateDecompressor()
	d.decompressors[compress.Brotli] = BrotliDecompressor()
	d.decompressors[compress.Zstd] = ZstdDecompressor()
	return d
}

// SetMaxDecompressedSize bounds the output of the built-in decompressors.
// n <= 0 removes the bound.
func (d *Decoder) SetMaxDecompressedSize(n int64) *Decoder {
	d.maxDecompressedSize = n
	return d
}

// SetPreviewLength sets how many bytes of invalid meta text are quoted in
// ErrInvalidJSON errors.
func (d *Decoder) SetPreviewLength(n int) *Decoder {
	if n < 0 {
		n = 0
	}
	d.previewLength = n
	return d
}

// SetPartNames overrides the Content-Disposition names of the meta and seg
// parts. Empty names keep the current ones.
func (d *Decoder) SetPartNames(meta, seg string) *Decoder {
	if meta != "" {
		d.metaName = meta
	}
	if seg != "" {
		d.segName = seg
	}
	return d
}

// EnableHeaderLeakRepair enables peeling of a header block leaked into a
// part body (enabled by default).
func (d *Decoder) EnableHeaderLeakRepair() *Decoder {
	d.repairLeakedHeaders = true
	return d
}

// DisableHeaderLeakRepair disables peeling of leaked header blocks.
func (d *Decoder) DisableHeaderLeakRepair() *Decoder {
	d.repairLeakedHeaders = false
	return d
}

// EnableEncodedSegPassthrough makes a gzip seg part with no registered gzip
// decompressor come back still encoded, with Result.SegEncoding naming the
// encoding, instead of failing with ErrUnsupportedEncoding.
func (d *Decoder) EnableEncodedSegPassthrough() *Decoder {
	d.segPassthrough = true
	return d
}

// DisableEncodedSegPassthrough restores the default of failing on a seg
// part that cannot be decompressed.
func (d *Decoder) DisableEncodedSegPassthrough() *Decoder {
	d.segPassthrough = false
	return d
}

// SetJsonUnmarshal set the JSON unmarshal function used for the meta part.
func (d *Decoder) SetJsonUnmarshal(fn func(data []byte, v interface{}) error) *Decoder {
	if fn == nil {
		fn = json.Unmarshal
	}
	d.jsonUnmarshal = fn
	return d
}

func (d *Decoder) debugf(format string, v ...interface{}) {
	if d.debugLog {
		d.log.Debugf(format, v...)
	}
}

// Decode decodes a full response: the body is decompressed as a whole if
// the response headers say so, then split into its meta and seg parts.
func (d *Decoder) Decode(body []byte, responseHeader http.Header) (*Result, error) {
	body, err := d.MaybeDecompressWhole(body, responseHeader)
	if err != nil {
		return nil, err
	}
	return d.ParseMultipart(body, responseHeader.Get(header.ContentType))
}

// DecodeResponse reads and closes the body of an already received response
// and decodes it. Read errors are returned as is.
func (d *Decoder) DecodeResponse(resp *http.Response) (*Result, error) {
	if resp == nil || resp.Body == nil {
		return nil, ErrNilResponse
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return d.Decode(body, resp.Header)
}

// ParseMultipart splits an already decompressed multipart body and decodes
// its meta and seg parts. Parts are matched by name, in any order; other
// parts are ignored.
func (d *Decoder) ParseMultipart(body []byte, contentType string) (*Result, error) {
	parts, err := d.SplitParts(body, contentType)
	if err != nil {
		return nil, err
	}

	result := &Result{unmarshal: d.jsonUnmarshal}
	for _, p := range parts {
		name, ct := p.Name(), p.ContentType()
		switch {
		case name == d.metaName && util.IsJSONType(ct):
			meta, raw, err := d.decodeMeta(p)
			if err != nil {
				return nil, err
			}
			result.Meta, result.RawMeta = meta, bytes.Clone(raw)
		case name == d.segName && util.IsOctetStreamType(ct):
			seg, enc, err := d.decompressPart(name, p.Body, p.Header, d.segPassthrough)
			if err != nil {
				return nil, err
			}
			// Seg may alias the caller's body.
			result.Seg, result.SegEncoding = bytes.Clone(seg), enc
		default:
			d.debugf("ignoring part %q of type %q (%d bytes)", name, ct, len(p.Body))
		}
	}

	var missing []string
	if result.Meta == nil {
		missing = append(missing, d.metaName)
	}
	if len(result.Seg) == 0 {
		missing = append(missing, d.segName)
	}
	if len(missing) > 0 {
		return nil, &DecodeError{Kind: ErrPartNotFound, Missing: missing}
	}

	if s, ok := result.Meta.(string); ok {
		raw := []byte(s)
		var meta interface{}
		if err := d.jsonUnmarshal(raw, &meta); err != nil {
			return nil, d.invalidJSON(raw, "meta is a string holding invalid json", err)
		}
		result.Meta, result.RawMeta = meta, raw
	}
	return result, nil
}

// SplitParts splits a multipart body into its parts without decoding any of
// them. Leaked header blocks are repaired unless disabled. Part bodies alias
// body.
func (d *Decoder) SplitParts(body []byte, contentType string) ([]*Part, error) {
	boundary, err := boundaryFrom(contentType)
	if err != nil {
		return nil, err
	}
	parts, err := d.scanParts(body, boundary)
	if err != nil {
		return nil, err
	}
	if d.repairLeakedHeaders {
		for _, p := range parts {
			if repairLeakedHeader(p) {
				d.log.Warnf("peeled header block leaked into body of part %q", p.Name())
			}
		}
	}
	return parts, nil
}

func (d *Decoder) decodeMeta(p *Part) (interface{}, []byte, error) {
	body, _, err := d.decompressPart(d.metaName, p.Body, p.Header, false)
	if err != nil {
		return nil, nil, err
	}
	ct := p.ContentType()
	if _, name, _ := charsets.FindEncoding(body, ct); name == "" {
		d.log.Warnf("part %s: unknown charset %q, decoding as utf-8", d.metaName, charsets.Label(ct))
	}
	text, err := charsets.DecodeText(body, ct)
	if err != nil {
		return nil, nil, d.invalidJSON(body, "", err)
	}
	var meta interface{}
	if err := d.jsonUnmarshal(text, &meta); err != nil {
		return nil, nil, d.invalidJSON(text, "", err)
	}
	return meta, text, nil
}

func (d *Decoder) invalidJSON(text []byte, msg string, err error) *DecodeError {
	n := d.previewLength
	if n > len(text) {
		n = len(text)
	}
	return &DecodeError{
		Kind:    ErrInvalidJSON,
		Part:    d.metaName,
		Preview: strconv.Quote(string(text[:n])),
		Msg:     msg,
		Err:     err,
	}
}
