// Package assets 托管用户上传的产品图，返回远端生成服务可以访问的公网地址。
package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/azhengyongqin/brandpilot/internal/config"
)

// Store 资源存储
type Store interface {
	// Save 写入资源并返回可公开访问的 URL
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// MaxUploadSize 单张产品图上限
const MaxUploadSize = 10 << 20

// New 按配置创建存储
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Store(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.PresignTTL)
	case "tmpfiles":
		return NewTmpfilesStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectName 生成不可猜测的对象名，保留原扩展名
func ObjectName(filename, contentType string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" && contentType != "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	return uuid.NewString() + ext
}

// AllowedImage 只接受常见图片类型
func AllowedImage(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mt {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}
