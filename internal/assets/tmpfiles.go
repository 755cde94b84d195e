package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
)

const tmpfilesBaseURL = "https://tmpfiles.org"

// TmpfilesStore 上传到 tmpfiles.org（临时公网地址，适合本地开发）
type TmpfilesStore struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewTmpfilesStore() *TmpfilesStore {
	return &TmpfilesStore{
		BaseURL:    tmpfilesBaseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type tmpfilesResponse struct {
	Status string `json:"status"`
	Data   struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (s *TmpfilesStore) Save(ctx context.Context, filename, contentType string, r io.Reader) (url string, err error) {
	const op = "tmpfiles upload"
	defer func() { metrics.RecordRemoteCall("tmpfiles", err) }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", ObjectName(filename, contentType))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(r, MaxUploadSize)); err != nil {
		return "", fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(s.BaseURL, "/")+"/api/v1/upload", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", apperr.RemoteAPI(op, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out tmpfilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperr.Malformed(op, "decode response: "+err.Error())
	}
	if out.Status != "success" || out.Data.URL == "" {
		return "", apperr.Malformed(op, "upload not successful: "+out.Status)
	}

	return DirectDownloadURL(out.Data.URL), nil
}

// DirectDownloadURL tmpfiles.org/<id> 是预览页，tmpfiles.org/dl/<id> 才是文件本身
func DirectDownloadURL(u string) string {
	if strings.Contains(u, "tmpfiles.org/dl/") {
		return u
	}
	return strings.Replace(u, "tmpfiles.org/", "tmpfiles.org/dl/", 1)
}
