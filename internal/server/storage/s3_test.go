package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/polyglot/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Region:       "us-east-1",
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		BaseEndpoint: "http://127.0.0.1:9000",
		Bucket:       "polyglot",
	}
}

func TestPresignPut_RealSigner(t *testing.T) {
	st, err := NewS3Storage(context.Background(), testOptions())
	require.NoError(t, err)

	raw, err := st.PresignPut(context.Background(), "voice/u-1/clip.webm")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/polyglot/voice/u-1/clip.webm", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.True(t, strings.HasPrefix(u.Query().Get("X-Amz-Credential"), "minioadmin/"))
}

func TestNewS3Storage_AppliesOptions(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "eu-central-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ak", creds.AccessKeyID)
		return aws.Config{}, nil
	}

	var captured s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&captured)
		}
		return &s3.Client{}
	}

	st, err := NewS3Storage(context.Background(), Options{Region: "eu-central-1", AccessKey: "ak", SecretKey: "sk", BaseEndpoint: "http://minio:9000", Bucket: "b"})
	require.NoError(t, err)
	assert.Equal(t, DefaultPresignExpiry, st.expires)
	require.NotNil(t, captured.BaseEndpoint)
	assert.Equal(t, "http://minio:9000", *captured.BaseEndpoint)
	assert.True(t, captured.UsePathStyle)
}

func TestNewS3Storage_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("boom")
	}

	_, err := NewS3Storage(context.Background(), testOptions())
	require.Error(t, err)
}

type failingPresigner struct{}

func (failingPresigner) PresignPutObject(context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return nil, errors.New("signing failed")
}

func TestPresignPut_Error(t *testing.T) {
	st := &S3Storage{bucket: "b", expires: time.Minute, presign: failingPresigner{}}
	_, err := st.PresignPut(context.Background(), "k")
	require.ErrorIs(t, err, common.ErrStorageDisabled)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.PresignPut(context.Background(), "k")
	require.ErrorIs(t, err, common.ErrStorageDisabled)
}
