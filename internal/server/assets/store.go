// Package assets is the blob side of profile storage: objects addressed
// by caller-chosen keys, plus the durable references handed out for them.
//
// Three backends are provided: S3Store (aws-sdk-go-v2), MinioStore
// (minio-go) and MemoryStore for tests and local runs. All of them return
// common.ErrNotFound for missing objects.
package assets

import (
	"context"
	"io"

	"github.com/dmitrijs2005/profilesync/internal/server/models"
)

// Store is a durable binary object store.
type Store interface {
	// Put writes size bytes from body under key, replacing any existing
	// object. It returns once the backend has acknowledged the write.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (models.StoredAsset, error)
	// Delete removes the object at key, or returns common.ErrNotFound.
	Delete(ctx context.Context, key string) error
	// Resolve returns the durable reference of the object at key, or
	// common.ErrNotFound.
	Resolve(ctx context.Context, key string) (string, error)
	// Open streams the object at key. The caller closes the reader.
	Open(ctx context.Context, key string) (io.ReadCloser, models.StoredAsset, error)
	// Ping checks that the backend and its bucket are reachable.
	Ping(ctx context.Context) error
}
