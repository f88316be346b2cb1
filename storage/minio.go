// Package storage wraps the object store behind the narrow contract the rest
// of the service depends on. No retries here; failures propagate as typed
// errors and the caller decides what to do with them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"streaming-service/entities"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog"
)

// ErrInvalidRange is returned by GetRange when the requested byte range
// extends past the end of the object.
var ErrInvalidRange = errors.New("invalid byte range")

type ObjectStore interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetRange(ctx context.Context, key string, offset, length int64) (io.ReadCloser, error)
	GetStream(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (int64, error)
	Delete(ctx context.Context, key string) error
}

type minioStore struct {
	client *minio.Client
	bucket string
}

// NewObjectStore wraps the process-wide minio client constructed at startup.
func NewObjectStore(client *minio.Client, bucket string) ObjectStore {
	return &minioStore{
		client: client,
		bucket: bucket,
	}
}

func (s *minioStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}
	return nil
}

// GetRange returns a stream covering exactly [offset, offset+length) of the
// named object. The object is stat'ed first so an unknown key or an oversized
// range fails before any bytes are read.
func (s *minioStore) GetRange(ctx context.Context, key string, offset, length int64) (io.ReadCloser, error) {
	size, err := s.Stat(ctx, key)
	if err != nil {
		return nil, err
	}
	if offset < 0 || length <= 0 || offset+length > size {
		return nil, fmt.Errorf("range [%d, %d) of object %q (size %d): %w", offset, offset+length, key, size, ErrInvalidRange)
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(offset, offset+length-1); err != nil {
		return nil, fmt.Errorf("set range for object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, opts)
	if err != nil {
		return nil, fmt.Errorf("get object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}
	return obj, nil
}

func (s *minioStore) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	if _, err := s.Stat(ctx, key); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}
	return obj, nil
}

func (s *minioStore) Stat(ctx context.Context, key string) (int64, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return 0, fmt.Errorf("object %q: %w", key, entities.ErrNotFound)
		}
		return 0, fmt.Errorf("stat object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}
	return info.Size, nil
}

// Delete removes an object. Deleting a nonexistent key succeeds.
func (s *minioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove object %q: %v: %w", key, err, entities.ErrStorageFailure)
	}
	return nil
}

func (s *minioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %v: %w", s.bucket, err, entities.ErrStorageFailure)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// Concurrent provisioning can race; re-check before failing.
		exists, checkErr := s.client.BucketExists(ctx, s.bucket)
		if checkErr == nil && exists {
			return nil
		}
		return fmt.Errorf("make bucket %q: %v: %w", s.bucket, err, entities.ErrStorageFailure)
	}
	zerolog.Ctx(ctx).Info().Str("bucket", s.bucket).Msg("created bucket")
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == 404
}
