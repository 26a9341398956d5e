package mpseg

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned by a Decoder is a *DecodeError whose Kind
// is one of these, so errors.Is(err, ErrPartNotFound) works as expected.
var (
	// ErrMalformedMultipart means the body could not be split into parts:
	// no boundary in Content-Type, a part without a header/body separator,
	// or no part at all.
	ErrMalformedMultipart = errors.New("malformed multipart body")
	// ErrPartNotFound means the meta or seg part (or both) is missing.
	ErrPartNotFound = errors.New("part not found")
	// ErrInvalidJSON means the meta part is not valid JSON.
	ErrInvalidJSON = errors.New("invalid meta json")
	// ErrUnsupportedEncoding means a content encoding was declared that
	// could not be undone.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
)

// DecodeError describes a failed decode.
type DecodeError struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Part is the name of the part involved, empty for whole-body errors.
	Part string
	// Missing lists the part names that were not found.
	Missing []string
	// Preview is the beginning of the meta text that failed to parse.
	Preview string
	// Msg is additional detail.
	Msg string
	// Err is the underlying error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("mpseg: ")
	b.WriteString(e.Kind.Error())
	if e.Part != "" {
		b.WriteString(" (part ")
		b.WriteString(e.Part)
		b.WriteString(")")
	}
	if len(e.Missing) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Missing, ", "))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Preview != "" {
		b.WriteString(": starts with ")
		b.WriteString(e.Preview)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *DecodeError) Is(target error) bool {
	return e.Kind == target
}

func malformed(msg string) *DecodeError {
	return &DecodeError{Kind: ErrMalformedMultipart, Msg: msg}
}

func unsupported(part, msg string, err error) *DecodeError {
	return &DecodeError{Kind: ErrUnsupportedEncoding, Part: part, Msg: msg, Err: err}
}
