package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"outreach-backend/internal/config"
)

// StorageBackend abstracts where activity photos live. The local backend
// serves single-node deployments; the S3 backend works against AWS S3 and
// S3-compatible stores (R2, MinIO) via path-style addressing.
type StorageBackend interface {
	// Upload stores the object under key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, size int64) error
	// Download opens the object for reading. Caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, int64, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Name identifies the backend in logs.
	Name() string
}

// PhotoKey builds the object key for an uploaded activity photo. The
// original filename is sanitized and prefixed with a millisecond timestamp
// so keys sort by upload time and never collide in practice.
func PhotoKey(filename string) string {
	base := filepath.Base(filename)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		base = "photo.jpg"
	}
	return fmt.Sprintf("activities/%d-%s", time.Now().UnixMilli(), base)
}

// ContentTypeForKey guesses a MIME type from the key's extension,
// defaulting to JPEG since that is what phone cameras send.
func ContentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "image/jpeg"
}

// NewStorageBackend builds the backend named in config. Unknown values
// fall back to local storage so a misconfigured box still accepts uploads.
func NewStorageBackend(cfg *config.Config) (StorageBackend, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return NewS3Backend(
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
			cfg.Storage.Bucket,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
		)
	default:
		return NewLocalBackend(cfg.Storage.LocalDir)
	}
}

// LocalBackend stores photos on the local filesystem under a root directory.
type LocalBackend struct {
	root string
}

func NewLocalBackend(root string) (*LocalBackend, error) {
	if root == "" {
		root = "./data/photos"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalBackend{root: abs}, nil
}

func (b *LocalBackend) Name() string { return "local" }

// resolve maps a key to a path under root, rejecting traversal attempts.
func (b *LocalBackend) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	full := filepath.Join(b.root, clean)
	if !strings.HasPrefix(full, b.root+string(filepath.Separator)) && full != b.root {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return full, nil
}

func (b *LocalBackend) Upload(ctx context.Context, key string, reader io.Reader, size int64) error {
	path, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create photo dir: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create photo file: %w", err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write photo: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close photo: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize photo: %w", err)
	}
	return nil
}

func (b *LocalBackend) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	path, err := b.resolve(key)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open photo: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat photo: %w", err)
	}
	return f, info.Size(), nil
}

func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	path, err := b.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

func (b *LocalBackend) Exists(ctx context.Context, key string) (bool, error) {
	path, err := b.resolve(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// S3Backend stores photos in an S3-compatible bucket.
type S3Backend struct {
	client *s3.Client
	bucket string
}

func NewS3Backend(endpoint, region, bucket, accessKey, secretKey string) (*S3Backend, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 storage requires a bucket name")
	}
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		// Path-style keeps R2 and MinIO endpoints working.
		o.UsePathStyle = true
	})

	return &S3Backend{client: client, bucket: bucket}, nil
}

func (b *S3Backend) Name() string { return "s3" }

func (b *S3Backend) Upload(ctx context.Context, key string, reader io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(ContentTypeForKey(key)),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("upload photo to s3: %w", err)
	}
	return nil
}

func (b *S3Backend) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("download photo from s3: %w", err)
	}
	return result.Body, aws.ToInt64(result.ContentLength), nil
}

func (b *S3Backend) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete photo from s3: %w", err)
	}
	return nil
}

func (b *S3Backend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, fmt.Errorf("stat photo in s3: %w", err)
	}
	return true, nil
}
