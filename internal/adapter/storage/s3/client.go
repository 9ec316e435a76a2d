package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/strogmv/postapi/internal/port"
)

type Options struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type S3Client struct {
	client *s3.Client
	bucket string
}

// New loads the default AWS credential chain unless static keys are given.
// A custom endpoint switches to path-style addressing for S3-compatible stores.
func New(ctx context.Context, o Options) (*S3Client, error) {
	loaders := []func(*config.LoadOptions) error{
		config.WithRegion(o.Region),
	}
	if o.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Client{
		client: s3.NewFromConfig(cfg, func(opts *s3.Options) {
			if o.Endpoint != "" {
				opts.BaseEndpoint = aws.String(o.Endpoint)
				opts.UsePathStyle = true
			}
		}),
		bucket: o.Bucket,
	}, nil
}

func (s *S3Client) Upload(ctx context.Context, key string, reader io.Reader, opts port.UploadOptions) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(opts.ContentType),
		Metadata:    opts.Metadata,
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return key, nil
}

var _ port.FileStorage = (*S3Client)(nil)
