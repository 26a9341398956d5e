package mpseg

import (
	"errors"
	"io"
	"testing"

	"github.com/ohif-tools/mpseg/internal/tests"
)

func TestDecodeError(t *testing.T) {
	err := error(&DecodeError{Kind: ErrUnsupportedEncoding, Part: "seg", Msg: "decode gzip", Err: io.ErrUnexpectedEOF})
	tests.AssertErrorIs(t, err, ErrUnsupportedEncoding)
	tests.AssertErrorIs(t, err, io.ErrUnexpectedEOF)
	tests.AssertEqual(t, false, errors.Is(err, ErrInvalidJSON))
	tests.AssertEqual(t, "mpseg: unsupported content encoding (part seg): decode gzip: unexpected EOF", err.Error())

	err = &DecodeError{Kind: ErrPartNotFound, Missing: []string{"meta", "seg"}}
	tests.AssertEqual(t, "mpseg: part not found: meta, seg", err.Error())

	err = &DecodeError{Kind: ErrInvalidJSON, Part: "meta", Preview: `"{oops"`}
	tests.AssertEqual(t, `mpseg: invalid meta json (part meta): starts with "{oops"`, err.Error())
	tests.AssertIsNil(t, errors.Unwrap(err))
}
