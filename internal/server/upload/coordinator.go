// Package upload drives a single asset upload to completion and reports
// its progress.
//
// Progress is delivered on an unbuffered channel: the transfer does not
// move past a chunk until its ratio has been received (or the context is
// cancelled), so a slow consumer slows the upload instead of piling up
// values. Every value is below 1 while the transfer runs; exactly one 1.0
// follows the store's acknowledgement.
package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
	"github.com/dmitrijs2005/profilesync/internal/server/assets"
)

// DefaultChunkSize is used when the coordinator is built with a
// non-positive chunk size.
const DefaultChunkSize = 256 * 1024

// Coordinator uploads payloads into an asset store.
// It does not retry and does not serialize uploads to the same key;
// callers that need single-flight per key must provide it.
type Coordinator struct {
	store     assets.Store
	chunkSize int64
	logger    logging.Logger
}

func NewCoordinator(store assets.Store, chunkSize int, logger logging.Logger) *Coordinator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Coordinator{store: store, chunkSize: int64(chunkSize), logger: logger}
}

// Task is one running upload.
type Task struct {
	key      string
	progress chan float64
	ref      string
	err      error
}

// Progress yields transfer ratios. The channel is closed when the task ends.
func (t *Task) Progress() <-chan float64 {
	return t.progress
}

// Wait blocks until the upload ends and returns the durable reference of
// the stored object. Progress values nobody received are discarded.
// Failures are *common.UploadError.
func (t *Task) Wait() (string, error) {
	for range t.progress {
	}
	return t.ref, t.err
}

// Start begins uploading p under key and returns immediately.
func (c *Coordinator) Start(ctx context.Context, key string, p Payload) *Task {
	t := &Task{key: key, progress: make(chan float64)}

	if err := checkPayload(key, p); err != nil {
		t.err = &common.UploadError{Key: key, Cause: err}
		close(t.progress)
		return t
	}

	go c.run(ctx, t, p)
	return t
}

// Upload runs an upload to completion, calling onProgress (if non-nil)
// for every progress value on the caller's goroutine.
func (c *Coordinator) Upload(ctx context.Context, key string, p Payload, onProgress func(float64)) (string, error) {
	t := c.Start(ctx, key, p)
	for v := range t.Progress() {
		if onProgress != nil {
			onProgress(v)
		}
	}
	return t.Wait()
}

func (c *Coordinator) run(ctx context.Context, t *Task, p Payload) {
	defer close(t.progress)

	log := c.logger.With("key", t.key, "size", p.Size)

	contentType, body, err := assets.DetectContentType(p.Body, p.ContentType)
	if err != nil {
		t.err = &common.UploadError{Key: t.key, Cause: err}
		return
	}

	pr := &progressReader{
		ctx:       ctx,
		r:         body,
		total:     p.Size,
		chunkSize: c.chunkSize,
		emit:      t.send,
	}

	info, err := c.store.Put(ctx, t.key, pr, p.Size, contentType)
	if err != nil {
		log.Warn(ctx, "upload failed", logging.Err(err))
		t.err = &common.UploadError{Key: t.key, Cause: err}
		return
	}

	ref, err := c.store.Resolve(ctx, t.key)
	if err != nil {
		log.Warn(ctx, "uploaded object did not resolve", logging.Err(err))
		t.err = &common.UploadError{Key: t.key, Cause: err}
		return
	}
	if err := t.send(ctx, 1); err != nil {
		t.err = &common.UploadError{Key: t.key, Cause: err}
		return
	}

	log.Info(ctx, "upload complete", "etag", info.ETag, "content_type", contentType)
	t.ref = ref
}

func (t *Task) send(ctx context.Context, v float64) error {
	select {
	case t.progress <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var errNoBody = errors.New("payload has no body")

func checkPayload(key string, p Payload) error {
	if err := assets.ValidateKey(key); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPayload, err)
	}
	if p.Body == nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidPayload, errNoBody)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: size %d", common.ErrInvalidPayload, p.Size)
	}
	return nil
}
