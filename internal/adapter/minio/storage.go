// Package minio implements the media storage collaborator over a MinIO /
// S3-compatible object store. Uploads and deletions are remote calls; their
// failures surface as domain.ErrUpstream.
package minio

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heartmarshall/viewtube-backend/internal/config"
	"github.com/heartmarshall/viewtube-backend/internal/domain"
)

// Storage stores and removes media objects (video files, thumbnails,
// avatars) in one bucket.
type Storage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// New creates a Storage and verifies the bucket exists, creating it if not.
func New(ctx context.Context, cfg config.MediaConfig) (*Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio: make bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Storage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Store uploads an object under the given prefix ("videos", "thumbnails",
// "avatars") and returns its media reference. The object key is random; the
// original filename only contributes its extension.
func (s *Storage) Store(ctx context.Context, prefix, filename, contentType string, size int64, r io.Reader) (domain.MediaRef, error) {
	key := path.Join(prefix, uuid.New().String()+path.Ext(filename))

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("minio: put %s: %v: %w", key, err, domain.ErrUpstream)
	}

	return domain.MediaRef{
		URL:       s.publicBaseURL + "/" + key,
		StorageID: key,
	}, nil
}

// Remove deletes an object by storage ID. A missing object is not an error:
// the goal state (object gone) already holds.
func (s *Storage) Remove(ctx context.Context, storageID string) error {
	if storageID == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("minio: remove %s: %v: %w", storageID, err, domain.ErrUpstream)
	}
	return nil
}
