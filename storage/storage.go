package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"tech-invent-api/config"
)

// UploadSignatureTTL is how long a presigned upload URL stays usable.
const UploadSignatureTTL = 15 * time.Minute

// SignedUpload is what the client needs to push a document straight to the
// object store. The API never sees the file bytes; only ObjectURL comes
// back in the proposal payload.
type SignedUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	Key       string `json:"key"`
	ExpiresAt string `json:"expires_at"`
}

// Client wraps the object store used for proposal documents.
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
	secure    bool
	endpoint  string
}

func New(cfg *config.Config) (*Client, error) {
	mc, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &Client{
		mc:        mc,
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
		secure:    cfg.S3UseSSL,
		endpoint:  cfg.S3Endpoint,
	}, nil
}

// EnsureBucket creates the document bucket when it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// SignUpload issues a presigned PUT URL for a new object under the given
// folder and returns the URL the stored document will be reachable at.
func (c *Client) SignUpload(ctx context.Context, folder string) (*SignedUpload, error) {
	key := path.Join("uploads", folder, uuid.NewString())

	signed, err := c.mc.PresignedPutObject(ctx, c.bucket, key, UploadSignatureTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &SignedUpload{
		UploadURL: signed.String(),
		ObjectURL: c.objectURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(UploadSignatureTTL).UTC().Format(time.RFC3339),
	}, nil
}

func (c *Client) objectURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	scheme := "http"
	if c.secure {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: c.endpoint, Path: path.Join(c.bucket, key)}
	return u.String()
}
