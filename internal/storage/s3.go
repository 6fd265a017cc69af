package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/samadhi-app/record-service/internal/config"
)

// ProfileStore uploads profile images to an S3-compatible bucket and returns
// the public URL stored on the user record.
type ProfileStore struct {
	cfg config.S3Config
}

// NewProfileStore builds the store.
func NewProfileStore(cfg config.S3Config) *ProfileStore {
	return &ProfileStore{cfg: cfg}
}

func (s *ProfileStore) client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Upload stores the image under a date-partitioned random key and returns its
// public URL.
func (s *ProfileStore) Upload(ctx context.Context, body io.Reader, contentType string) (string, error) {
	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := randomObjectKey()
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.publicURL(key), nil
}

func (s *ProfileStore) publicURL(key string) string {
	base := s.cfg.PublicBaseURL
	if base == "" {
		base = s.cfg.BaseEndpoint
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), s.cfg.Bucket, key)
}

func randomObjectKey() string {
	d := time.Now()
	return fmt.Sprintf("profiles/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}
