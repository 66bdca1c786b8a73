// Package s3 provides an S3-backed blob store implementation.
//
// The store works against AWS S3 and S3-compatible services (MinIO, Ceph RGW)
// via a custom endpoint with path-style addressing. Entries are whole objects
// under an optional key prefix.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/marmos91/txfs/pkg/blob"
)

// Store is an S3-backed implementation of blob.Store.
type Store struct {
	mu     sync.RWMutex
	client *s3.Client
	bucket string
	prefix string
	closed bool
}

// Config holds configuration for the S3 blob store.
type Config struct {
	// Bucket is the S3 bucket holding entries. Required.
	Bucket string

	// Region is the AWS region of the bucket.
	Region string

	// Prefix is prepended to every entry name to build the object key.
	Prefix string

	// Endpoint overrides the S3 endpoint (for MinIO and other
	// S3-compatible services). Empty uses the AWS default.
	Endpoint string

	// AccessKeyID and SecretAccessKey configure static credentials.
	// When empty, the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible services.
	UsePathStyle bool
}

// New creates an S3 blob store, building a client from the configuration.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 store requires a bucket")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// NewWithClient creates an S3 blob store around an existing client (for testing).
func NewWithClient(client *s3.Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// objectKey builds the S3 object key for an entry name.
func (s *Store) objectKey(name string) string {
	return s.prefix + name
}

// isNotFoundError returns true if the error indicates the object doesn't exist.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || code == "404"
	}

	return false
}

// Exists reports whether an object for the given entry name is present.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.checkOpen(); err != nil {
		return false, err
	}
	if name == "" {
		return false, blob.ErrInvalidName
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(name)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// TryRead downloads the object or returns blob.ErrNotFound.
func (s *Store) TryRead(ctx context.Context, name string) ([]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, blob.ErrInvalidName
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(name)),
	})
	if err != nil {
		if isNotFoundError(err) {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// Write uploads the entry as a whole object.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(name)),
		Body:   bytes.NewReader(content),
	})
	return err
}

// Delete removes the object, returning blob.ErrNotFound if it is absent.
// S3's DeleteObject succeeds for missing keys, so presence is verified with
// a HeadObject first. The check-then-delete pair is not atomic; the
// coordinator's single-writer discipline makes that acceptable here.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if name == "" {
		return blob.ErrInvalidName
	}

	key := s.objectKey(name)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundError(err) {
			return blob.ErrNotFound
		}
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// HealthCheck verifies the bucket is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	return err
}

// Close marks the store as closed. The underlying HTTP client is shared and
// not owned by the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return blob.ErrStoreClosed
	}
	return nil
}

// Ensure Store implements blob.Store.
var _ blob.Store = (*Store)(nil)
