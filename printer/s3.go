package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/ByLCY/slip/config"
)

// ObjectPutter is the subset of *s3.Client used by S3Archive.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectPutter = (*s3.Client)(nil)

// S3Archive uploads every slip to an S3-compatible bucket (AWS S3, MinIO, RustFS, ...).
type S3Archive struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *zap.Logger
}

// S3Option is a functional option for configuring S3Archive
type S3Option func(*S3Archive)

// WithS3Logger sets a custom logger
func WithS3Logger(logger *zap.Logger) S3Option {
	return func(s *S3Archive) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPrefix sets the key prefix, e.g. "slips/".
func WithPrefix(prefix string) S3Option {
	return func(s *S3Archive) {
		s.prefix = prefix
	}
}

// NewS3Archive wraps an existing client.
func NewS3Archive(client ObjectPutter, bucket string, opts ...S3Option) (*S3Archive, error) {
	if client == nil {
		return nil, errors.New("S3 客户端不能为空")
	}
	if bucket == "" {
		return nil, errors.New("storage bucket 不能为空")
	}
	s := &S3Archive{client: client, bucket: bucket, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewS3ArchiveFromConfig builds a client with static credentials and a custom endpoint.
func NewS3ArchiveFromConfig(ctx context.Context, cfg *config.StorageConfig, opts ...S3Option) (*S3Archive, error) {
	if cfg == nil {
		return nil, errors.New("storage 配置不能为空")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket 不能为空")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage access key 与 secret key 不能为空")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("创建 AWS 配置失败: %w", err)
	}

	endpoint, err := normalizeEndpoint(cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return NewS3Archive(client, cfg.Bucket, append([]S3Option{WithPrefix(cfg.Prefix)}, opts...)...)
}

// normalizeEndpoint adds the scheme when missing; empty means the AWS default endpoint.
func normalizeEndpoint(endpoint string, useSSL bool) (string, error) {
	if endpoint == "" {
		return "", nil
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if useSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("无效的 storage endpoint: %w", err)
	}
	return endpoint, nil
}

// Key returns the object key used for job.
func (s *S3Archive) Key(job string) string {
	return s.prefix + job + ".png"
}

// Print implements Printer.
func (s *S3Archive) Print(ctx context.Context, job string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	key := s.Key(job)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("image/png"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("上传小票 %s 失败: %w", key, err)
	}
	s.logger.Info("slip archived", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}
