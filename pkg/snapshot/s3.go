package snapshot

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vtree/internal/errors"
)

// PutObjectAPI is the part of *s3.Client S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config configures the client built by Open.
type S3Config struct {
	Region string

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string

	// PathStyle forces path-style addressing.
	PathStyle bool
}

// NewS3Client builds an S3 client. Credentials come from AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	opts := s3.Options{
		Region:       region,
		UsePathStyle: cfg.PathStyle,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New(errors.CodeSnapshotWrite).
				WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}

// S3Store stores snapshots in an S3 bucket.
//
// Example usage:
//
//	client := snapshot.NewS3Client(snapshot.S3Config{Region: "eu-west-1"})
//	store := snapshot.NewS3Store(client, "my-bucket", "previews/")
type S3Store struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Store creates a new S3 snapshot store.
//
// Parameters:
//   - client: an *s3.Client, or anything with its PutObject method
//   - bucket: S3 bucket name
//   - prefix: key prefix (e.g., "previews/"); a trailing slash is added
func NewS3Store(client PutObjectAPI, bucket, prefix string) *S3Store {
	if prefix != "" && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key for name.
func (s *S3Store) Key(name string) string {
	return s.prefix + fileName(name)
}

// Put uploads html and returns its s3:// location.
func (s *S3Store) Put(ctx context.Context, name string, html []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}

	key := s.Key(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(html),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"snapshot-name": name,
			"rendered-at":   time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New(errors.CodeSnapshotWrite).
			WithDetailf("s3 upload of %s failed", key).
			Wrap(err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}
