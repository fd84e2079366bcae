// Package storage presigns object storage uploads for voice clips.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/polyglot/internal/common"
)

const DefaultPresignExpiry = 15 * time.Minute

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
	Expires      time.Duration
}

type putPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Storage presigns PUT requests against an S3 compatible endpoint such as
// MinIO.
type S3Storage struct {
	bucket  string
	expires time.Duration
	presign putPresigner
}

func NewS3Storage(ctx context.Context, opts Options) (*S3Storage, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	expires := opts.Expires
	if expires <= 0 {
		expires = DefaultPresignExpiry
	}

	return &S3Storage{
		bucket:  opts.Bucket,
		expires: expires,
		presign: s3.NewPresignClient(client),
	}, nil
}

// PresignPut returns a URL the client can PUT the object at key to.
func (s *S3Storage) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expires))
	if err != nil {
		return "", fmt.Errorf("%w: presign: %w", common.ErrStorageDisabled, err)
	}
	return req.URL, nil
}

// Disabled is used when no bucket is configured.
type Disabled struct{}

func (Disabled) PresignPut(context.Context, string) (string, error) {
	return "", common.ErrStorageDisabled
}
