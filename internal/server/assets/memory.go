package assets

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
)

type memoryObject struct {
	data []byte
	info models.StoredAsset
}

// MemoryStore keeps objects in process memory. It is safe for concurrent use.
type MemoryStore struct {
	refs RefBuilder

	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore returns an empty store whose references start with refs.BaseURL.
func NewMemoryStore(refs RefBuilder) *MemoryStore {
	return &MemoryStore{refs: refs, objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (models.StoredAsset, error) {
	if err := ValidateKey(key); err != nil {
		return models.StoredAsset{}, err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return models.StoredAsset{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.StoredAsset{}, err
	}
	if int64(len(data)) != size {
		return models.StoredAsset{}, fmt.Errorf("size mismatch: declared %d, got %d", size, len(data))
	}

	sum := md5.Sum(data)
	info := models.StoredAsset{
		Key:         key,
		ContentType: contentType,
		Size:        size,
		ETag:        hex.EncodeToString(sum[:]),
	}

	s.mu.Lock()
	s.objects[key] = memoryObject{data: data, info: info}
	s.mu.Unlock()

	return info, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return common.ErrNotFound
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) Resolve(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return "", common.ErrNotFound
	}
	return s.refs.Ref(key), nil
}

func (s *MemoryStore) Open(ctx context.Context, key string) (io.ReadCloser, models.StoredAsset, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, models.StoredAsset{}, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Keys lists the stored keys in no particular order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// Bytes returns a copy of the object at key.
func (s *MemoryStore) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	return bytes.Clone(obj.data), true
}
