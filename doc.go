/*
Package mpseg decodes the multipart/form-data responses of segmentation
inference services into a JSON meta value and a binary seg payload.

Usage:

	resp, err := http.Post(inferURL, "application/octet-stream", image)
	if err != nil {
		return err
	}
	result, err := mpseg.DecodeResponse(resp)
	if err != nil {
		return err
	}
	// result.Meta is the parsed JSON, result.Seg the DICOM-SEG bytes.

Gzip may be applied to the whole response, to each part, or not at all.
A whole response that declares gzip but has already been decompressed by
the HTTP client is detected by its magic number and left alone.

Every decoding error is a *DecodeError; use errors.Is with ErrMalformedMultipart,
ErrPartNotFound, ErrInvalidJSON or ErrUnsupportedEncoding to tell them apart.
*/
package mpseg
