package header

// Canonical header names.
const (
	ContentType        = "Content-Type"
	ContentEncoding    = "Content-Encoding"
	ContentDisposition = "Content-Disposition"
)

// Lower-cased keys of a parsed part header block.
const (
	ContentTypeKey        = "content-type"
	ContentEncodingKey    = "content-encoding"
	ContentDispositionKey = "content-disposition"
)

const (
	JsonContentType        = "application/json"
	OctetStreamContentType = "application/octet-stream"
)
