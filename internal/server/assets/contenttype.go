package assets

import (
	"bytes"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLen is how much of the body is buffered for content detection.
const sniffLen = 3072

// DetectContentType returns declared unless it is empty or the generic
// octet-stream type; otherwise it sniffs the head of body. The returned
// reader yields the complete body, including the sniffed bytes.
func DetectContentType(body io.Reader, declared string) (string, io.Reader, error) {
	if declared != "" && declared != "application/octet-stream" {
		return declared, body, nil
	}

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(body, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	buf = buf[:n]

	return mimetype.Detect(buf).String(), io.MultiReader(bytes.NewReader(buf), body), nil
}
