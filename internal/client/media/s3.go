package media

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/devmarket/internal/client/models"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// GetObjectAPI is the part of *s3.Client S3Source needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Options select the object store. An empty BaseEndpoint means AWS itself;
// anything else (MinIO, R2) is addressed path-style.
type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// NewS3Client builds an S3 client. Static credentials are used when
// AccessKey is set, otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	}), nil
}

// ParseS3Ref splits s3://bucket/key.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, ref)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("invalid s3 reference %q: want s3://bucket/key", ref)
	}
	return bucket, key, nil
}

// S3Source reads images from an S3-compatible object store.
type S3Source struct {
	api GetObjectAPI
}

func NewS3Source(api GetObjectAPI) *S3Source {
	return &S3Source{api: api}
}

func (s *S3Source) Open(ctx context.Context, ref string) (models.Image, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return models.Image{}, err
	}

	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("get %s: %w", ref, err)
	}
	defer out.Body.Close()

	return readImage(path.Base(key), aws.ToString(out.ContentType), out.Body)
}
