// Package tweetapi TweetAPI 账号洞察查询，结果原样透传给前端。
package tweetapi

import (
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
)

// Client TweetAPI 客户端
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// UserByUsername 查询账号资料
func (c *Client) UserByUsername(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	return c.get(ctx, "/tw-v2/user/by-username", url.Values{"username": {username}}, "user "+username)
}

// UserTweets 查询账号最近的帖子
func (c *Client) UserTweets(ctx context.Context, userID string) (json.RawMessage, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation("user_id is required")
	}
	return c.get(ctx, "/tw-v2/user/tweets", url.Values{"userId": {userID}}, "tweets of user "+userID)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, entity string) (raw json.RawMessage, err error) {
	op := "tweetapi GET " + path
	defer func() { metrics.RecordRemoteCall("tweetapi", err) }()

	if c.APIKey == "" {
		return nil, apperr.Validation("TweetAPI key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, apperr.Transport(op, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound(entity)
	case resp.StatusCode != http.StatusOK:
		return nil, apperr.RemoteAPI(op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if !json.Valid(body) {
		return nil, apperr.Malformed(op, "response is not valid JSON")
	}
	return json.RawMessage(body), nil
}
