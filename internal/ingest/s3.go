package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Options configures access to S3-compatible object storage.
type S3Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// ObjectOpener opens one object for reading.
type ObjectOpener interface {
	OpenObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// S3Fetcher reads the source from a bucket.
type S3Fetcher struct {
	Bucket string
	Key    string
	Opener ObjectOpener
}

func (f *S3Fetcher) Name() string {
	return "s3://" + f.Bucket + "/" + f.Key
}

func (f *S3Fetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	return f.Opener.OpenObject(ctx, f.Bucket, f.Key)
}

func newS3Fetcher(u *url.URL, opts S3Options) (*S3Fetcher, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("s3 source must be s3://bucket/key, got %q", u.Redacted())
	}
	if opts.Endpoint == "" {
		return nil, errors.New("s3 source requires an endpoint")
	}

	opener, err := NewMinioOpener(opts)
	if err != nil {
		return nil, err
	}

	return &S3Fetcher{Bucket: bucket, Key: key, Opener: opener}, nil
}

// MinioOpener opens objects through a minio client.
type MinioOpener struct {
	client *minio.Client
}

// NewMinioOpener creates a client for opts. No request is made until an
// object is opened.
func NewMinioOpener(opts S3Options) (*MinioOpener, error) {
	var creds *credentials.Credentials
	if opts.AccessKey != "" || opts.SecretKey != "" {
		creds = credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, "")
	} else {
		creds = credentials.NewEnvAWS()
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &MinioOpener{client: client}, nil
}

// OpenObject returns the object body. The object is stat'ed first so that a
// missing bucket or key fails here rather than on the first read.
func (o *MinioOpener) OpenObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := o.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}
