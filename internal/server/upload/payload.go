package upload

import (
	"bytes"
	"io"
)

// Payload is a binary object waiting to be uploaded.
// Size must be the exact number of bytes Body yields.
type Payload struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// BytesPayload wraps an in-memory buffer.
func BytesPayload(name, contentType string, data []byte) Payload {
	return Payload{
		Name:        name,
		Size:        int64(len(data)),
		ContentType: contentType,
		Body:        bytes.NewReader(data),
	}
}
