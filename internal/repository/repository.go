package repository

import (
	"context"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/model"
)

// User 登录用户
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Conversation 对话（聊天线程），可关联一个 X 账号
type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	UserID         uint64    `json:"user_id"`
	Status         string    `json:"status"`
	XUsername      string    `json:"x_username,omitempty"`
	XUserID        string    `json:"x_user_id,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	LastMessageAt  time.Time `json:"last_message_at"`
}

// Message 对话消息
type Message struct {
	ID             uint64    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// BrandColor 品牌色
type BrandColor struct {
	Name string `json:"name,omitempty"`
	Hex  string `json:"hex"`
}

// SocialLink 品牌社交账号
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Brand 品牌档案
type Brand struct {
	ID             uint64       `json:"id"`
	UserID         uint64       `json:"user_id"`
	ConversationID string       `json:"conversation_id,omitempty"`
	BrandName      string       `json:"brand_name"`
	Domain         string       `json:"domain"`
	LogoURL        string       `json:"logo_url,omitempty"`
	ProductService string       `json:"product_service,omitempty"`
	CompanyVibe    string       `json:"company_vibe,omitempty"`
	TargetAudience string       `json:"target_audience,omitempty"`
	Industry       string       `json:"industry,omitempty"`
	Description    string       `json:"description,omitempty"`
	Colors         []BrandColor `json:"colors"`
	SocialLinks    []SocialLink `json:"social_links"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// PrimaryColor 第一个品牌色，没有时返回 fallback
func (b Brand) PrimaryColor(fallback string) string {
	if len(b.Colors) > 0 && b.Colors[0].Hex != "" {
		return b.Colors[0].Hex
	}
	return fallback
}

// TaskPayload 生成任务的提交参数
type TaskPayload struct {
	Prompt    string   `json:"prompt"`
	ImageURLs []string `json:"image_urls"`
	Model     string   `json:"model,omitempty"`
	Format    string   `json:"format,omitempty"`
}

// RemoteTask 委托给远端生成服务的图片/视频任务
type RemoteTask struct {
	ID             uint64           `json:"id"`
	RemoteID       string           `json:"remote_id"`
	Kind           model.TaskKind   `json:"kind"`
	Payload        TaskPayload      `json:"payload"`
	Status         model.TaskStatus `json:"status"`
	ResultURL      string           `json:"result_url,omitempty"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	UserID         uint64           `json:"user_id,omitempty"`
	BrandID        uint64           `json:"brand_id,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ScheduledPost 定时发布条目
type ScheduledPost struct {
	ID             uint64           `json:"id"`
	ContentID      uint64           `json:"content_id,omitempty"`
	UserID         uint64           `json:"user_id,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	Platform       string           `json:"platform"`
	Caption        string           `json:"caption"`
	ScheduledTime  time.Time        `json:"scheduled_time"`
	Status         model.PostStatus `json:"status"`
	PostURL        string           `json:"post_url,omitempty"`
	ErrorMessage   string           `json:"error_message,omitempty"`
	PostedAt       *time.Time       `json:"posted_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// BrandFilter 品牌查询条件
type BrandFilter struct {
	UserID         uint64
	ConversationID string
	Domain         string
	Limit          int
}

// TaskFilter 生成任务查询条件
type TaskFilter struct {
	UserID         uint64
	BrandID        uint64
	ConversationID string
	Kind           model.TaskKind
	Limit          int
	Offset         int
}

// PostFilter 定时发布查询条件
type PostFilter struct {
	UserID         uint64
	ConversationID string
	Status         model.PostStatus
	Limit          int
}

// UserRepository 用户仓储
type UserRepository interface {
	// Create 创建用户，用户名重复返回 Conflict
	Create(ctx context.Context, username, passwordHash string) (*User, error)

	// GetByUsername 按用户名查询
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// ConversationRepository 对话与消息仓储
type ConversationRepository interface {
	// Ensure 不存在则创建；已存在但属于其他用户时返回 NotFound
	Ensure(ctx context.Context, conversationID string, userID uint64) (*Conversation, error)

	// Get 查询对话
	Get(ctx context.Context, conversationID string) (*Conversation, error)

	// AppendMessage 追加消息并刷新 last_message_at
	AppendMessage(ctx context.Context, msg Message) error

	// ListMessages 按时间正序返回最近 limit 条消息
	ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)

	// LinkXAccount 记录对话关联的 X 账号
	LinkXAccount(ctx context.Context, conversationID, username, xUserID string) error
}

// BrandRepository 品牌仓储
type BrandRepository interface {
	// Save 按 (user_id, conversation_id, domain) upsert，并整体替换颜色与社交链接
	Save(ctx context.Context, brand Brand) (*Brand, error)

	// Get 按 id 查询（含颜色与社交链接）
	Get(ctx context.Context, id uint64) (*Brand, error)

	// List 按条件查询，最近更新的在前
	List(ctx context.Context, filter BrandFilter) ([]Brand, error)

	// Latest 用户最近更新的品牌
	Latest(ctx context.Context, userID uint64) (*Brand, error)
}

// TaskRepository 生成任务注册表
type TaskRepository interface {
	// Create 在提交成功后登记任务，初始状态 pending
	Create(ctx context.Context, task RemoteTask) (*RemoteTask, error)

	// Get 按本地 id 查询
	Get(ctx context.Context, id uint64) (*RemoteTask, error)

	// UpdateStatus 单向推进状态；回退或终态后的更新被忽略并返回 applied=false
	UpdateStatus(ctx context.Context, id uint64, status model.TaskStatus, resultURL, errMsg string) (applied bool, err error)

	// List 按条件查询，最新的在前
	List(ctx context.Context, filter TaskFilter) ([]RemoteTask, error)
}

// ScheduledPostRepository 定时发布仓储
type ScheduledPostRepository interface {
	// Create 创建条目（默认 scheduled）
	Create(ctx context.Context, post ScheduledPost) (*ScheduledPost, error)

	// Get 按 id 查询
	Get(ctx context.Context, id uint64) (*ScheduledPost, error)

	// ClaimDue 原子认领到期条目：scheduled -> publishing，返回认领成功的条目
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]ScheduledPost, error)

	// MarkPosted 仅对 publishing 状态生效
	MarkPosted(ctx context.Context, id uint64, postURL string, postedAt time.Time) (bool, error)

	// MarkFailed 仅对 publishing 状态生效
	MarkFailed(ctx context.Context, id uint64, errMsg string) (bool, error)

	// FailStale 把 updated_at 早于 before 仍处于 publishing 的条目标记为失败
	FailStale(ctx context.Context, before time.Time, errMsg string) (int64, error)

	// List 按条件查询，按计划时间倒序
	List(ctx context.Context, filter PostFilter) ([]ScheduledPost, error)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 || limit > max {
		return def
	}
	return limit
}
