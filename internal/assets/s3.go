package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
)

// S3API 用到的 S3 操作
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store 上传到 S3，返回预签名 GET 地址（桶本身不公开）
type S3Store struct {
	client    S3API
	presigner *s3.PresignClient
	bucket    string
	prefix    string
	ttl       time.Duration
}

// NewS3Store 凭据走 AWS 默认链（环境变量、共享配置、实例角色）
func NewS3Store(ctx context.Context, bucket, prefix string, ttl time.Duration) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return newS3Store(client, s3.NewPresignClient(client), bucket, prefix, ttl), nil
}

func newS3Store(client S3API, presigner *s3.PresignClient, bucket, prefix string, ttl time.Duration) *S3Store {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: client, presigner: presigner, bucket: bucket, prefix: prefix, ttl: ttl}
}

func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error) {
	defer func() { metrics.RecordRemoteCall("s3", err) }()

	// PutObject 需要可 Seek 的 body 才能计算长度与校验和
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := s.prefix + ObjectName(filename, contentType)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", apperr.Transport("s3 put object", err)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return req.URL, nil
}
