// Package llm OpenAI 兼容的对话补全客户端（kie.ai 的 gemini 通道也走这个协议）。
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
)

// ChatCompleter 对话补全
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient baseURL 形如 https://api.kie.ai/gemini-2.5-flash/v1
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: 90 * time.Second}
	return openai.NewClientWithConfig(cfg)
}

// Complete 调用一次补全并统一错误类型
func Complete(ctx context.Context, c ChatCompleter, req openai.ChatCompletionRequest) (openai.ChatCompletionMessage, error) {
	resp, err := c.CreateChatCompletion(ctx, req)
	metrics.RecordRemoteCall("llm", err)
	if err != nil {
		return openai.ChatCompletionMessage{}, WrapError("llm chat", err)
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, apperr.Malformed("llm chat", "no choices in response")
	}
	return resp.Choices[0].Message, nil
}

// WrapError 把 go-openai 的错误映射到 apperr
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperr.Transport(op, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apperr.RemoteAPI(op, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return apperr.RemoteAPI(op, reqErr.HTTPStatusCode, reqErr.Error())
	}
	return apperr.Transport(op, err)
}
