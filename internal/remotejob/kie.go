package remotejob

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
	"github.com/azhengyongqin/brandpilot/internal/model"
)

const (
	imageCreatePath = "/api/v1/jobs/createTask"
	imageStatusPath = "/api/v1/jobs/recordInfo"
	videoCreatePath = "/api/v1/veo/generate"
	videoStatusPath = "/api/v1/veo/record-info"

	defaultImageFormat  = "png"
	defaultImageSize    = "1:1"
	defaultAspectRatio  = "9:16"
	videoGenerationMode = "FIRST_AND_LAST_FRAMES_2_VIDEO"
)

// KieClient kie.ai 任务 API 客户端（图片走 jobs，视频走 veo）
type KieClient struct {
	BaseURL    string
	APIKey     string
	ImageModel string
	VideoModel string
	HTTPClient *http.Client
}

// NewKieClient 创建客户端
func NewKieClient(baseURL, apiKey, imageModel, videoModel string) *KieClient {
	return &KieClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		ImageModel: imageModel,
		VideoModel: videoModel,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope kie.ai 统一响应外层
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type createData struct {
	TaskID string `json:"taskId"`
}

type imageRecord struct {
	State      string          `json:"state"`
	ResultJSON json.RawMessage `json:"resultJson"`
	FailMsg    string          `json:"failMsg"`
	FailCode   any             `json:"failCode"`
}

type resultURLs struct {
	ResultURLs []string `json:"resultUrls"`
}

type videoRecord struct {
	SuccessFlag  int        `json:"successFlag"`
	Response     resultURLs `json:"response"`
	ErrorCode    any        `json:"errorCode"`
	ErrorMessage string     `json:"errorMessage"`
}

// Submit 提交生成任务
func (c *KieClient) Submit(ctx context.Context, kind model.TaskKind, p Payload) (Handle, error) {
	var (
		path string
		body any
	)

	switch kind {
	case model.TaskKindImage:
		path = imageCreatePath
		format := p.Format
		if format == "" {
			format = defaultImageFormat
		}
		body = map[string]any{
			"model": firstNonEmpty(p.Model, c.ImageModel),
			"input": map[string]any{
				"prompt":        p.Prompt,
				"image_urls":    p.ImageURLs,
				"output_format": format,
				"image_size":    defaultImageSize,
			},
		}
	case model.TaskKindVideo:
		path = videoCreatePath
		body = map[string]any{
			"prompt":            p.Prompt,
			"imageUrls":         p.ImageURLs,
			"model":             firstNonEmpty(p.Model, c.VideoModel),
			"aspectRatio":       firstNonEmpty(p.Format, defaultAspectRatio),
			"generationType":    videoGenerationMode,
			"enableTranslation": true,
		}
	default:
		return Handle{}, apperr.Validation(fmt.Sprintf("unsupported task kind %q", kind))
	}

	data, err := c.call(ctx, http.MethodPost, path, body)
	if err != nil {
		return Handle{}, &SubmissionError{Kind: kind, Err: err}
	}

	var created createData
	if err := json.Unmarshal(data, &created); err != nil || created.TaskID == "" {
		return Handle{}, &SubmissionError{Kind: kind, Err: apperr.Malformed("kie.submit", "response has no taskId")}
	}

	return Handle{RemoteID: created.TaskID, Kind: kind}, nil
}

// Poll 查询一次任务状态
func (c *KieClient) Poll(ctx context.Context, h Handle) (Outcome, error) {
	switch h.Kind {
	case model.TaskKindImage:
		data, err := c.call(ctx, http.MethodGet, imageStatusPath+"?taskId="+url.QueryEscape(h.RemoteID), nil)
		if err != nil {
			return Outcome{}, err
		}
		var rec imageRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return Outcome{}, apperr.Malformed("kie.poll", "decode record: "+err.Error())
		}
		return mapImageRecord(rec)
	case model.TaskKindVideo:
		data, err := c.call(ctx, http.MethodGet, videoStatusPath+"?taskId="+url.QueryEscape(h.RemoteID), nil)
		if err != nil {
			return Outcome{}, err
		}
		var rec videoRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return Outcome{}, apperr.Malformed("kie.poll", "decode record: "+err.Error())
		}
		return mapVideoRecord(rec)
	default:
		return Outcome{}, apperr.Validation(fmt.Sprintf("unsupported task kind %q", h.Kind))
	}
}

func mapImageRecord(rec imageRecord) (Outcome, error) {
	switch rec.State {
	case "success":
		urls, err := decodeResultJSON(rec.ResultJSON)
		if err != nil {
			return Outcome{}, err
		}
		if len(urls) == 0 || urls[0] == "" {
			return Outcome{}, apperr.Malformed("kie.poll", "success without result url")
		}
		return Succeeded(urls[0]), nil
	case "fail":
		msg := rec.FailMsg
		if msg == "" {
			msg = "Unknown error"
		}
		return Failed(fmt.Sprintf("[%s] %s", codeString(rec.FailCode), msg)), nil
	default:
		// waiting / queuing / generating 以及未知状态都视为仍在处理
		return Pending(), nil
	}
}

// decodeResultJSON resultJson 可能是 JSON 字符串，也可能直接是对象
func decodeResultJSON(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, apperr.Malformed("kie.poll", "decode resultJson: "+err.Error())
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		raw = json.RawMessage(s)
	}

	var r resultURLs
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, apperr.Malformed("kie.poll", "decode resultJson: "+err.Error())
	}
	return r.ResultURLs, nil
}

func mapVideoRecord(rec videoRecord) (Outcome, error) {
	switch rec.SuccessFlag {
	case 0:
		return Pending(), nil
	case 1:
		urls := rec.Response.ResultURLs
		if len(urls) == 0 || urls[0] == "" {
			return Outcome{}, apperr.Malformed("kie.poll", "success without result url")
		}
		return Succeeded(urls[0]), nil
	default:
		msg := rec.ErrorMessage
		if msg == "" {
			msg = "Video generation failed"
		}
		if code := codeString(rec.ErrorCode); code != "N/A" {
			return Failed(fmt.Sprintf("[%s] %s", code, msg)), nil
		}
		return Failed(msg), nil
	}
}

func codeString(v any) string {
	switch c := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return fmt.Sprintf("%d", int64(c))
	case string:
		if c == "" {
			return "N/A"
		}
		return c
	default:
		return fmt.Sprint(c)
	}
}

// call 发送请求并解开 envelope，返回 data 字段
func (c *KieClient) call(ctx context.Context, method, path string, body any) (data json.RawMessage, err error) {
	defer func() { metrics.RecordRemoteCall("kie", err) }()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	op := "kie " + method + " " + strings.SplitN(path, "?", 2)[0]
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperr.Transport(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.RemoteAPI(op, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperr.Malformed(op, "decode response: "+err.Error())
	}
	if env.Code != http.StatusOK {
		return nil, apperr.RemoteAPI(op, env.Code, env.Msg)
	}
	return env.Data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
