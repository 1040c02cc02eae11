// internal/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"sloboda/internal/config"
	"sloboda/internal/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Key prefixes inside the bucket.
const (
	avatarPrefix = "avatars"
	filePrefix   = "files"
)

// S3Store writes uploads to an S3-compatible bucket. Path-style
// addressing is used so a local MinIO works the same as AWS.
type S3Store struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewS3Store connects to the object store and makes sure the bucket
// exists.
func NewS3Store(ctx context.Context, cfg *config.StorageConfig) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, utils.NewAppError(utils.ErrStorage, "failed to create storage client", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, utils.NewAppError(utils.ErrStorage, "failed to check bucket", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, utils.NewAppError(utils.ErrStorage, "failed to create bucket", err)
		}
		log.Printf("Created storage bucket %q", cfg.Bucket)
	}

	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// PutAvatar stores an avatar image and returns its object key.
func (s *S3Store) PutAvatar(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	return s.put(ctx, ObjectKey(avatarPrefix, contentType), reader, size, contentType)
}

// PutFile stores a general attachment and returns its object key.
func (s *S3Store) PutFile(ctx context.Context, reader io.Reader, size int64, contentType string) (string, error) {
	return s.put(ctx, ObjectKey(filePrefix, contentType), reader, size, contentType)
}

func (s *S3Store) put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", utils.NewAppError(utils.ErrStorage, "failed to store object", err)
	}
	return key, nil
}

// Remove deletes an object. Missing objects are not an error.
func (s *S3Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return utils.NewAppError(utils.ErrStorage, "failed to remove object", err)
	}
	return nil
}

// PublicURL returns the browser-reachable URL for an object key.
func (s *S3Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
}

// ObjectKey builds a collision-free key under the given prefix. The
// extension is derived from the content type so keys stay portable.
func ObjectKey(prefix, contentType string) string {
	return path.Join(prefix, uuid.New().String()+ExtensionFor(contentType))
}

// ExtensionFor maps a MIME type to a file extension. Unknown types get
// no extension rather than a guessed one.
func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	case "application/zip":
		return ".zip"
	}
	return ""
}
