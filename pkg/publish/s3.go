package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads files to an S3 bucket.
//
// Example usage:
//
//	client, _ := publish.NewS3Client(publish.S3ClientConfig{Region: "eu-west-1"})
//	store := publish.NewS3Store(client, "my-bucket", "portfolio/")
type S3Store struct {
	client       PutObjectAPI
	bucket       string
	prefix       string
	cacheControl string
}

// NewS3Store creates a store uploading below prefix in bucket.
func NewS3Store(client PutObjectAPI, bucket, prefix string) *S3Store {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// WithCacheControl sets the Cache-Control header of uploaded objects.
func (s *S3Store) WithCacheControl(v string) *S3Store {
	s.cacheControl = v
	return s
}

// Key returns the object key for a snapshot path.
func (s *S3Store) Key(p string) string {
	return s.prefix + path.Clean(strings.TrimPrefix(p, "/"))
}

// Put uploads f.
func (s *S3Store) Put(ctx context.Context, f File) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(f.Path)),
		Body:          bytes.NewReader(f.Data),
		ContentLength: aws.Int64(int64(len(f.Data))),
		ContentType:   aws.String(f.ContentType),
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", f.Path, err)
	}
	return nil
}

// Location returns the s3:// URL of the prefix.
func (s *S3Store) Location() string {
	return "s3://" + s.bucket + "/" + s.prefix
}

// S3ClientConfig configures NewS3Client.
type S3ClientConfig struct {
	Region string

	// Endpoint overrides the S3 endpoint for S3 compatible stores.
	Endpoint string

	// PathStyle addresses buckets by path instead of subdomain.
	PathStyle bool
}

// NewS3Client creates an S3 client. Credentials come from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; the
// region falls back to AWS_REGION.
func NewS3Client(cfg S3ClientConfig) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		return nil, fmt.Errorf("publish: no AWS region configured")
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts), nil
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("publish: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}
