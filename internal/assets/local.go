package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ProductsDir 产品图子目录
const ProductsDir = "products"

// LocalStore 写本地磁盘，由 HTTP 服务以 /uploads 静态目录对外提供
type LocalStore struct {
	dir           string
	publicBaseURL string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(filepath.Join(dir, ProductsDir), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *LocalStore) Save(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := ObjectName(filename, contentType)
	dst := filepath.Join(s.dir, ProductsDir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, MaxUploadSize)); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	return fmt.Sprintf("%s/uploads/%s/%s", s.publicBaseURL, ProductsDir, name), nil
}
