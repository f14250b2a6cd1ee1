package assets

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/server/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig holds the connection settings of a MinIO server.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// ParseEndpoint splits a URL such as "http://127.0.0.1:9000/" into the
// host:port minio-go expects and whether TLS is used.
func ParseEndpoint(raw string) (string, bool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, err
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("endpoint %q has no host", raw)
	}
	return u.Host, u.Scheme == "https", nil
}

type minioAPI interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucket, key string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	openObject(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error)
}

// minioClient adds openObject to *minio.Client.
type minioClient struct {
	*minio.Client
}

// openObject resolves the object eagerly; minio-go only reports a missing
// object on the first read or Stat.
func (c minioClient) openObject(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, minio.ObjectInfo{}, err
	}
	return obj, info, nil
}

// MinioStore stores assets in a MinIO bucket.
type MinioStore struct {
	client minioAPI
	bucket string
	refs   RefBuilder
}

// NewMinioStore connects to cfg.Endpoint. No request is made until first use.
func NewMinioStore(cfg MinioConfig, refs RefBuilder) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStore{client: minioClient{client}, bucket: cfg.Bucket, refs: refs}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (models.StoredAsset, error) {
	if err := ValidateKey(key); err != nil {
		return models.StoredAsset{}, err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return models.StoredAsset{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return models.StoredAsset{
		Key:         key,
		ContentType: contentType,
		Size:        info.Size,
		ETag:        info.ETag,
	}, nil
}

// Delete removes key. RemoveObject succeeds for missing keys, so the
// object is stat'ed first.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if _, err := s.stat(ctx, key); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *MinioStore) Resolve(ctx context.Context, key string) (string, error) {
	if _, err := s.stat(ctx, key); err != nil {
		return "", err
	}
	return s.refs.Ref(key), nil
}

func (s *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, models.StoredAsset, error) {
	rc, info, err := s.client.openObject(ctx, s.bucket, key)
	if err != nil {
		if isMinioNotFound(err) {
			return nil, models.StoredAsset{}, common.ErrNotFound
		}
		return nil, models.StoredAsset{}, fmt.Errorf("get object %s: %w", key, err)
	}
	return rc, toStoredAsset(key, info), nil
}

func (s *MinioStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s: %w", s.bucket, common.ErrNotFound)
	}
	return nil
}

func (s *MinioStore) stat(ctx context.Context, key string) (minio.ObjectInfo, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isMinioNotFound(err) {
			return minio.ObjectInfo{}, common.ErrNotFound
		}
		return minio.ObjectInfo{}, fmt.Errorf("stat object %s: %w", key, err)
	}
	return info, nil
}

func isMinioNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}

func toStoredAsset(key string, info minio.ObjectInfo) models.StoredAsset {
	return models.StoredAsset{
		Key:         key,
		ContentType: info.ContentType,
		Size:        info.Size,
		ETag:        info.ETag,
	}
}
