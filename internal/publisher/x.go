package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/config"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
)

const (
	// MaxAssetSize 下载素材的上限
	MaxAssetSize = 100 << 20
	// chunkSize APPEND 单片大小（X 限制 5MB）
	chunkSize = 4 << 20
	// maxStatusChecks FINALIZE 之后最多查询几次处理状态
	maxStatusChecks = 30
)

// XPublisher X API 发布实现（OAuth 1.0a 用户上下文）
type XPublisher struct {
	apiBase    string
	uploadBase string
	// api 负责签名请求，download 只用来拉取素材
	api      *http.Client
	download *http.Client
	wait     func(ctx context.Context, d time.Duration) error
}

// NewX 凭据不全时返回 Disabled
func NewX(cfg config.TwitterConfig) Publisher {
	if !cfg.Configured() {
		return Disabled{}
	}
	oc := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	api := oc.Client(context.Background(), token)
	api.Timeout = 60 * time.Second
	return newX(cfg.APIBaseURL, cfg.UploadBaseURL, api)
}

func newX(apiBase, uploadBase string, api *http.Client) *XPublisher {
	return &XPublisher{
		apiBase:    strings.TrimRight(apiBase, "/"),
		uploadBase: strings.TrimRight(uploadBase, "/"),
		api:        api,
		download:   &http.Client{Timeout: 2 * time.Minute},
		wait:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Publish 下载素材 -> 分片上传 -> 发帖
func (p *XPublisher) Publish(ctx context.Context, assetURL, caption string) (r Receipt, err error) {
	defer func() { metrics.RecordRemoteCall("x", err) }()

	data, mediaType, err := p.fetchAsset(ctx, assetURL)
	if err != nil {
		return Receipt{}, err
	}

	mediaID, err := p.uploadMedia(ctx, data, mediaType)
	if err != nil {
		return Receipt{}, err
	}

	postID, err := p.createTweet(ctx, caption, mediaID)
	if err != nil {
		return Receipt{}, err
	}

	logger.L.Info().Str("remote_id", postID).Str("media_id", mediaID).Msg("已发布到 X")
	return Receipt{PostID: postID, URL: PostURL(postID)}, nil
}

func (p *XPublisher) fetchAsset(ctx context.Context, assetURL string) ([]byte, string, error) {
	const op = "download asset"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, "", apperr.Validation("invalid asset url: " + err.Error())
	}
	resp, err := p.download.Do(req)
	if err != nil {
		return nil, "", apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", apperr.RemoteAPI(op, resp.StatusCode, "asset download failed")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return nil, "", apperr.Transport(op, err)
	}
	if len(data) > MaxAssetSize {
		return nil, "", apperr.Validation(fmt.Sprintf("asset exceeds %d bytes", MaxAssetSize))
	}
	if len(data) == 0 {
		return nil, "", apperr.Malformed(op, "empty asset")
	}

	return data, detectMediaType(resp.Header.Get("Content-Type"), assetURL, data), nil
}

func detectMediaType(header, assetURL string, data []byte) string {
	if mt, _, err := mime.ParseMediaType(header); err == nil && (strings.HasPrefix(mt, "image/") || strings.HasPrefix(mt, "video/")) {
		return mt
	}
	if u, err := url.Parse(assetURL); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if ext == ".mp4" {
			return "video/mp4"
		}
		if mt := mime.TypeByExtension(ext); mt != "" {
			mt, _, _ = mime.ParseMediaType(mt)
			return mt
		}
	}
	return http.DetectContentType(data)
}

func mediaCategory(mediaType string) string {
	switch {
	case mediaType == "image/gif":
		return "tweet_gif"
	case strings.HasPrefix(mediaType, "video/"):
		return "tweet_video"
	default:
		return "tweet_image"
	}
}

type uploadResponse struct {
	MediaIDString  string          `json:"media_id_string"`
	ProcessingInfo *processingInfo `json:"processing_info,omitempty"`
}

type processingInfo struct {
	State          string `json:"state"`
	CheckAfterSecs int    `json:"check_after_secs"`
	Error          *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// uploadMedia INIT / APPEND / FINALIZE，必要时 STATUS 等待处理完成
func (p *XPublisher) uploadMedia(ctx context.Context, data []byte, mediaType string) (string, error) {
	init, err := p.uploadForm(ctx, url.Values{
		"command":        {"INIT"},
		"total_bytes":    {strconv.Itoa(len(data))},
		"media_type":     {mediaType},
		"media_category": {mediaCategory(mediaType)},
	})
	if err != nil {
		return "", err
	}
	mediaID := init.MediaIDString
	if mediaID == "" {
		return "", apperr.Malformed("x media INIT", "no media_id_string")
	}

	for i, off := 0, 0; off < len(data); i, off = i+1, off+chunkSize {
		end := off + chunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := p.appendChunk(ctx, mediaID, i, data[off:end]); err != nil {
			return "", err
		}
	}

	fin, err := p.uploadForm(ctx, url.Values{
		"command":  {"FINALIZE"},
		"media_id": {mediaID},
	})
	if err != nil {
		return "", err
	}

	info := fin.ProcessingInfo
	for checks := 0; info != nil; checks++ {
		switch info.State {
		case "succeeded":
			return mediaID, nil
		case "failed":
			msg := "media processing failed"
			if info.Error != nil && info.Error.Message != "" {
				msg = info.Error.Message
			}
			return "", apperr.RemoteAPI("x media STATUS", 0, msg)
		}
		if checks >= maxStatusChecks {
			return "", apperr.Timeout("x media STATUS", checks, 0)
		}

		after := time.Duration(info.CheckAfterSecs) * time.Second
		if after <= 0 {
			after = time.Second
		}
		if err := p.wait(ctx, after); err != nil {
			return "", err
		}

		st, err := p.mediaStatus(ctx, mediaID)
		if err != nil {
			return "", err
		}
		info = st.ProcessingInfo
	}
	return mediaID, nil
}

func (p *XPublisher) uploadForm(ctx context.Context, form url.Values) (*uploadResponse, error) {
	op := "x media " + form.Get("command")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadBase+"/1.1/media/upload.json", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out uploadResponse
	if err := p.do(op, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *XPublisher) appendChunk(ctx context.Context, mediaID string, index int, chunk []byte) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("command", "APPEND")
	_ = mw.WriteField("media_id", mediaID)
	_ = mw.WriteField("segment_index", strconv.Itoa(index))
	part, err := mw.CreateFormFile("media", "chunk")
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(chunk); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadBase+"/1.1/media/upload.json", &body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return p.do("x media APPEND", req, nil)
}

func (p *XPublisher) mediaStatus(ctx context.Context, mediaID string) (*uploadResponse, error) {
	q := url.Values{"command": {"STATUS"}, "media_id": {mediaID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.uploadBase+"/1.1/media/upload.json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	var out uploadResponse
	if err := p.do("x media STATUS", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

func (p *XPublisher) createTweet(ctx context.Context, text, mediaID string) (string, error) {
	b, err := json.Marshal(tweetRequest{Text: text, Media: &tweetMedia{MediaIDs: []string{mediaID}}})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiBase+"/2/tweets", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out tweetResponse
	if err := p.do("x create tweet", req, &out); err != nil {
		return "", err
	}
	if out.Data.ID == "" {
		return "", apperr.Malformed("x create tweet", "no tweet id in response")
	}
	return out.Data.ID, nil
}

type verifyResponse struct {
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
	Name       string `json:"name"`
}

// VerifyCredentials 确认凭据有效并返回账号信息
func (p *XPublisher) VerifyCredentials(ctx context.Context) (Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/1.1/account/verify_credentials.json", nil)
	if err != nil {
		return Account{}, fmt.Errorf("create request: %w", err)
	}
	var out verifyResponse
	err = p.do("x verify credentials", req, &out)
	metrics.RecordRemoteCall("x", err)
	if err != nil {
		return Account{}, err
	}
	return Account{UserID: out.IDStr, Username: out.ScreenName, Name: out.Name}, nil
}

// do 发送签名请求；dest 为 nil 时忽略响应体
func (p *XPublisher) do(op string, req *http.Request, dest any) error {
	resp, err := p.api.Do(req)
	if err != nil {
		return apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperr.Transport(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.RemoteAPI(op, resp.StatusCode, errorMessage(body))
	}
	if dest == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return apperr.Malformed(op, "decode response: "+err.Error())
	}
	return nil
}

// errorMessage 兼容 v1.1 的 errors[] 与 v2 的 detail/title
func errorMessage(body []byte) string {
	var e struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	if json.Unmarshal(body, &e) == nil {
		switch {
		case len(e.Errors) > 0 && e.Errors[0].Message != "":
			return e.Errors[0].Message
		case e.Detail != "":
			return e.Detail
		case e.Title != "":
			return e.Title
		}
	}
	return strings.TrimSpace(string(body))
}
