package minio_storage

import (
	"context"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// ContentStorage keeps lesson material in a single bucket. Keys are minted
// by the caller; uploads overwrite whatever already lives under the key.
type ContentStorage struct {
	storage    *MinioStorage
	bucket     string
	presignTTL time.Duration
}

func NewContentStorage(storage *MinioStorage, bucketName string, presignTTL time.Duration) (*ContentStorage, error) {
	exists, err := storage.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = storage.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ContentStorage{storage: storage, bucket: bucketName, presignTTL: presignTTL}, nil
}

func (s *ContentStorage) Upload(
	ctx context.Context,
	key string,
	reader io.Reader,
	size int64,
	contentType string,
) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		key,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return key, nil
}

// SignedURL mints a fresh time-limited read URL for an internal key.
// Results are never cached; every read gets its own URL.
func (s *ContentStorage) SignedURL(ctx context.Context, key string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		key,
		s.presignTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

func (s *ContentStorage) Delete(ctx context.Context, key string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
