package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 API the external sink needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MediaOptions configures the external media library.
type MediaOptions struct {
	Bucket     string // the "disk"
	Collection string // key prefix inside the bucket
	Endpoint   string
	Region     string
	AccessKey  string
	SecretKey  string
	PublicURL  string
}

// ExternalMediaSink uploads images to an S3 compatible media library such
// as CloudFlare R2.
type ExternalMediaSink struct {
	client     ObjectPutter
	bucket     string
	collection string
	publicURL  string
}

// NewS3Client builds an S3 client for opts. A custom endpoint switches to
// path-style addressing, which R2 and MinIO expect.
func NewS3Client(ctx context.Context, opts MediaOptions) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewExternalMediaSink(client ObjectPutter, opts MediaOptions) *ExternalMediaSink {
	return &ExternalMediaSink{
		client:     client,
		bucket:     opts.Bucket,
		collection: strings.Trim(opts.Collection, "/"),
		publicURL:  strings.TrimRight(opts.PublicURL, "/"),
	}
}

func (s *ExternalMediaSink) Store(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := filename
	if s.collection != "" {
		key = path.Join(s.collection, filename)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, s.bucket, err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return "s3://" + s.bucket + "/" + key, nil
}
