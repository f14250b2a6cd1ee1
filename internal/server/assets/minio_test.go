package assets

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMinio struct {
	objects map[string]string
	types   map[string]string
	putErr  error
	removed []string
	bucket  bool
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{objects: map[string]string{}, types: map[string]string{}, bucket: true}
}

var errNoSuchKey = minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}

func (f *fakeMinio) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[key] = string(b)
	f.types[key] = opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: int64(len(b)), ETag: "etag-" + key}, nil
}

func (f *fakeMinio) StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	v, ok := f.objects[key]
	if !ok {
		return minio.ObjectInfo{}, errNoSuchKey
	}
	return minio.ObjectInfo{Key: key, Size: int64(len(v)), ContentType: f.types[key]}, nil
}

func (f *fakeMinio) RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeMinio) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return f.bucket, nil
}

func (f *fakeMinio) openObject(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	info, err := f.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	return io.NopCloser(strings.NewReader(f.objects[key])), info, nil
}

func TestParseEndpoint(t *testing.T) {
	host, secure, err := ParseEndpoint("http://127.0.0.1:9000/")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", host)
	assert.False(t, secure)

	host, secure, err = ParseEndpoint("https://s3.example.com")
	require.NoError(t, err)
	assert.Equal(t, "s3.example.com", host)
	assert.True(t, secure)

	_, _, err = ParseEndpoint("127.0.0.1:9000")
	require.Error(t, err)
}

func TestNewMinioStore(t *testing.T) {
	s, err := NewMinioStore(MinioConfig{
		Endpoint:  "127.0.0.1:9000",
		AccessKey: "admin",
		SecretKey: "secretpassword",
		Bucket:    "profiles",
		Region:    "us-east-1",
	}, RefBuilder{})
	require.NoError(t, err)
	assert.Equal(t, "profiles", s.bucket)
}

func TestMinioStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFakeMinio()
	s := &MinioStore{client: f, bucket: "profiles", refs: RefBuilder{BaseURL: "http://gw/assets"}}

	info, err := s.Put(ctx, "profileImages/u1", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "etag-profileImages/u1", info.ETag)
	assert.Equal(t, "image/jpeg", f.types["profileImages/u1"])

	ref, err := s.Resolve(ctx, "profileImages/u1")
	require.NoError(t, err)
	assert.Equal(t, "http://gw/assets/profileImages/u1", ref)

	rc, got, err := s.Open(ctx, "profileImages/u1")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(b))
	assert.Equal(t, "image/jpeg", got.ContentType)

	require.NoError(t, s.Delete(ctx, "profileImages/u1"))
	require.ErrorIs(t, s.Delete(ctx, "profileImages/u1"), common.ErrNotFound)
	assert.Equal(t, []string{"profileImages/u1"}, f.removed)

	_, err = s.Resolve(ctx, "profileImages/u1")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, _, err = s.Open(ctx, "profileImages/u1")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestMinioStore_PutError(t *testing.T) {
	f := newFakeMinio()
	f.putErr = errors.New("disk full")
	s := &MinioStore{client: f, bucket: "profiles"}

	_, err := s.Put(context.Background(), "profileImages/u1", strings.NewReader("x"), 1, "")
	require.ErrorContains(t, err, "put object profileImages/u1: disk full")
}

func TestMinioStore_Ping(t *testing.T) {
	f := newFakeMinio()
	s := &MinioStore{client: f, bucket: "profiles"}
	require.NoError(t, s.Ping(context.Background()))

	f.bucket = false
	require.ErrorIs(t, s.Ping(context.Background()), common.ErrNotFound)
}
