// Package filex loads local files for upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize bounds files read by ReadImage; images travel inline in a
// single gRPC message.
const MaxImageSize = 8 << 20

var ErrTooLarge = errors.New("file too large")

// Image is a file read from disk together with its detected content type.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage reads path and detects its content type from the bytes.
func ReadImage(path string) (*Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxImageSize {
		return nil, fmt.Errorf("%s: %w (%d bytes, max %d)", path, ErrTooLarge, fi.Size(), MaxImageSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Image{
		Name:        filepath.Base(path),
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}, nil
}
