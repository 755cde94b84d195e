// Package brandfetch Brandfetch 品牌数据查询（带 Redis 缓存）。
package brandfetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/cache"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/metrics"
)

// Cache 查询结果缓存
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Client Brandfetch API 客户端
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client

	cache    Cache
	cacheTTL time.Duration
}

// NewClient 创建客户端；cache 为 nil 时不缓存
func NewClient(baseURL, apiKey string, c Cache, ttl time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cache:    c,
		cacheTTL: ttl,
	}
}

// Lookup 按域名、股票代码、ISIN 或加密货币符号查询品牌
func (c *Client) Lookup(ctx context.Context, identifier string) (*BrandData, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, apperr.Validation("brand identifier is required")
	}

	key := cache.CacheKey("brand", identifier)
	if c.cache != nil {
		var cached BrandData
		err := c.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.L.Warn().Err(err).Str("query", identifier).Msg("读取品牌缓存失败")
		}
	}

	data, err := c.fetch(ctx, identifier)
	metrics.RecordRemoteCall("brandfetch", err)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
			logger.L.Warn().Err(err).Str("query", identifier).Msg("写入品牌缓存失败")
		}
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, identifier string) (*BrandData, error) {
	const op = "brandfetch GET /v2/brands"

	reqURL := fmt.Sprintf("%s/v2/brands/%s", c.BaseURL, url.PathEscape(identifier))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.NotFound("brand " + identifier)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperr.RemoteAPI(op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data BrandData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, apperr.Malformed(op, "decode response: "+err.Error())
	}
	if data.Domain == "" {
		data.Domain = identifier
	}
	return &data, nil
}
