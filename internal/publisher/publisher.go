// Package publisher 把生成好的图片/视频发布到 X。
//
// 一次发布分三步：下载素材、分片上传拿到 media_id、带 media_id 发帖。
// 任一步失败整体失败，不会留下只有文字的帖子。
package publisher

import (
	"context"
	"errors"
	"fmt"
)

// Receipt 发布结果
type Receipt struct {
	PostID string `json:"post_id"`
	URL    string `json:"url"`
}

// Account 已授权的 X 账号
type Account struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Publisher 发布适配器
type Publisher interface {
	Publish(ctx context.Context, assetURL, caption string) (Receipt, error)
	VerifyCredentials(ctx context.Context) (Account, error)
}

// ErrNotConfigured 未配置 X 凭据
var ErrNotConfigured = errors.New("twitter credentials not configured (missing TWITTER_* settings)")

// Disabled 凭据缺失时使用，所有调用都返回 ErrNotConfigured
type Disabled struct{}

func (Disabled) Publish(context.Context, string, string) (Receipt, error) {
	return Receipt{}, ErrNotConfigured
}

func (Disabled) VerifyCredentials(context.Context) (Account, error) {
	return Account{}, ErrNotConfigured
}

// PostURL 帖子的公开地址
func PostURL(postID string) string {
	return fmt.Sprintf("https://x.com/i/web/status/%s", postID)
}
