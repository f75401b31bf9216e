package mediastore

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maynoewai/ABC-car-sale-BE/pkg/config"
)

// Image is the stored result of one upload: the public URL handed to
// clients and the opaque identifier used for later deletion.
type Image struct {
	URL      string
	PublicID string
}

// Store provides access to the external image host.
type Store interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Image, error)
	Destroy(ctx context.Context, publicID string) error
}

// uploadFolder groups listing images inside the bucket.
const uploadFolder = "car_listings"

// MinioStore implements Store for MinIO/S3 compatible storage.
type MinioStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(cfg *config.MediaConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload stores one image under a generated key and returns its public URL
// and identifier.
func (m *MinioStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Image, error) {
	key := path.Join(uploadFolder, uuid.New().String())
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Image{}, fmt.Errorf("put object: %w", err)
	}
	return Image{URL: m.baseURL + "/" + key, PublicID: key}, nil
}

// Destroy removes an image by its public identifier.
func (m *MinioStore) Destroy(ctx context.Context, publicID string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, publicID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

var store Store

// Initialize sets up the global media store from configuration.
func Initialize(cfg *config.Config) error {
	s, err := NewMinioStore(&cfg.Media)
	if err != nil {
		return err
	}
	store = s
	return nil
}

// Get returns the media store instance.
func Get() Store {
	return store
}

// SetStore overrides the media store instance, used by tests.
func SetStore(s Store) {
	store = s
}
