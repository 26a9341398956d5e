package mpseg

// Result is a decoded segmentation inference response.
type Result struct {
	// Meta is the structured value of the meta part. It is never a string
	// holding JSON text: such double-encoded values are parsed again.
	Meta interface{}
	// RawMeta is the UTF-8 JSON text Meta was parsed from.
	RawMeta []byte
	// Seg is the decompressed payload of the seg part, usually a DICOM-SEG.
	Seg []byte
	// SegEncoding lists the codings, in applied order, still present on Seg
	// because no decompressor was registered for them. Gzip is only left in
	// place with Decoder.EnableEncodedSegPassthrough.
	SegEncoding string

	unmarshal func(data []byte, v interface{}) error
}

// UnmarshalMeta unmarshals RawMeta into v.
func (r *Result) UnmarshalMeta(v interface{}) error {
	return r.unmarshal(r.RawMeta, v)
}
