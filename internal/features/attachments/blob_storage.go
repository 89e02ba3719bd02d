package attachments

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"taskplane-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BlobStorage stores attachment payloads. The MinIO implementation is the
// production one; tests use an in-memory fake.
type BlobStorage interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	PresignedGetURL(ctx context.Context, objectKey string, fileName string) (string, error)
}

const presignedURLLifetime = 15 * time.Minute

type MinioBlobStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioBlobStorage(cfg *config.EnvVariables) (*MinioBlobStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioBlobStorage{client: client, bucket: cfg.MinioBucket}, nil
}

// EnsureBucket creates the attachment bucket when it does not exist yet.
func (s *MinioBlobStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

func (s *MinioBlobStorage) Put(
	ctx context.Context,
	objectKey string,
	reader io.Reader,
	size int64,
	contentType string,
) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})

	return err
}

func (s *MinioBlobStorage) Remove(ctx context.Context, objectKey string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}

func (s *MinioBlobStorage) PresignedGetURL(
	ctx context.Context,
	objectKey string,
	fileName string,
) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	presigned, err := s.client.PresignedGetObject(
		ctx, s.bucket, objectKey, presignedURLLifetime, params,
	)
	if err != nil {
		return "", err
	}

	return presigned.String(), nil
}
