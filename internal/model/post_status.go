package model

// PostStatus 定时发布（ScheduledItem）状态。
// scheduled -> publishing（扫描器认领）-> {posted | failed}，之后不可变。
type PostStatus string

const (
	PostStatusScheduled  PostStatus = "scheduled"
	PostStatusPublishing PostStatus = "publishing"
	PostStatusPosted     PostStatus = "posted"
	PostStatusFailed     PostStatus = "failed"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusScheduled, PostStatusPublishing, PostStatusPosted, PostStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal 是否为终态
func (s PostStatus) Terminal() bool {
	return s == PostStatusPosted || s == PostStatusFailed
}

// PlatformTwitter 目前唯一支持的发布平台
const PlatformTwitter = "twitter"

// MissingImageMessage 到期条目缺少素材时写入的错误信息
const MissingImageMessage = "Missing image URL"
