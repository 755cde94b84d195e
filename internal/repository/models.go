package repository

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/azhengyongqin/brandpilot/internal/model"
)

// Models 需要 AutoMigrate 的全部模型（按外键依赖排序）
func Models() []any {
	return []any{
		&UserModel{},
		&ConversationModel{},
		&MessageModel{},
		&BrandModel{},
		&BrandColorModel{},
		&BrandSocialLinkModel{},
		&RemoteTaskModel{},
		&ScheduledPostModel{},
	}
}

// UserModel GORM 模型 - 对应 app_user 表
type UserModel struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `gorm:"column:username;type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName 指定表名
func (UserModel) TableName() string { return "app_user" }

// ToUser 转换为 User 实体
func (m *UserModel) ToUser() User {
	return User{ID: m.ID, Username: m.Username, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}

// ConversationModel GORM 模型 - 对应 conversation 表
type ConversationModel struct {
	ConversationID string    `gorm:"primaryKey;column:conversation_id;type:text"`
	UserID         uint64    `gorm:"column:user_id;not null;index"`
	Status         string    `gorm:"column:status;type:text;not null;default:active"`
	XUsername      *string   `gorm:"column:x_username;type:text"`
	XUserID        *string   `gorm:"column:x_user_id;type:text"`
	StartedAt      time.Time `gorm:"column:started_at;autoCreateTime"`
	LastMessageAt  time.Time `gorm:"column:last_message_at;autoCreateTime"`
}

// TableName 指定表名
func (ConversationModel) TableName() string { return "conversation" }

// ToConversation 转换为 Conversation 实体
func (m *ConversationModel) ToConversation() Conversation {
	c := Conversation{
		ConversationID: m.ConversationID,
		UserID:         m.UserID,
		Status:         m.Status,
		StartedAt:      m.StartedAt,
		LastMessageAt:  m.LastMessageAt,
	}
	if m.XUsername != nil {
		c.XUsername = *m.XUsername
	}
	if m.XUserID != nil {
		c.XUserID = *m.XUserID
	}
	return c
}

// MessageModel GORM 模型 - 对应 message 表
type MessageModel struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement;column:id"`
	ConversationID string    `gorm:"column:conversation_id;type:text;not null;index:idx_message_conversation_created,priority:1"`
	Role           string    `gorm:"column:role;type:text;not null"`
	Content        string    `gorm:"column:content;type:text;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime;index:idx_message_conversation_created,priority:2"`

	Conversation *ConversationModel `gorm:"foreignKey:ConversationID;references:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (MessageModel) TableName() string { return "message" }

// ToMessage 转换为 Message 实体
func (m *MessageModel) ToMessage() Message {
	return Message{ID: m.ID, ConversationID: m.ConversationID, Role: m.Role, Content: m.Content, CreatedAt: m.CreatedAt}
}

// BrandModel GORM 模型 - 对应 brand 表
type BrandModel struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement;column:id"`
	UserID         uint64    `gorm:"column:user_id;not null;uniqueIndex:uq_brand_owner_domain,priority:1"`
	ConversationID string    `gorm:"column:conversation_id;type:text;not null;default:'';uniqueIndex:uq_brand_owner_domain,priority:2"`
	BrandName      string    `gorm:"column:brand_name;type:text;not null"`
	Domain         string    `gorm:"column:domain;type:text;not null;uniqueIndex:uq_brand_owner_domain,priority:3;index"`
	LogoURL        *string   `gorm:"column:logo_url;type:text"`
	ProductService *string   `gorm:"column:product_service;type:text"`
	CompanyVibe    *string   `gorm:"column:company_vibe;type:text"`
	TargetAudience *string   `gorm:"column:target_audience;type:text"`
	Industry       *string   `gorm:"column:industry;type:text"`
	Description    *string   `gorm:"column:description;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Colors      []BrandColorModel      `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
	SocialLinks []BrandSocialLinkModel `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (BrandModel) TableName() string { return "brand" }

// BrandColorModel GORM 模型 - 对应 brand_color 表
type BrandColorModel struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement;column:id"`
	BrandID   uint64  `gorm:"column:brand_id;not null;index"`
	ColorName *string `gorm:"column:color_name;type:text"`
	ColorHex  string  `gorm:"column:color_hex;type:text;not null"`
}

// TableName 指定表名
func (BrandColorModel) TableName() string { return "brand_color" }

// BrandSocialLinkModel GORM 模型 - 对应 brand_social_link 表
type BrandSocialLinkModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement;column:id"`
	BrandID  uint64 `gorm:"column:brand_id;not null;index"`
	Platform string `gorm:"column:platform;type:text;not null"`
	URL      string `gorm:"column:url;type:text;not null"`
}

// TableName 指定表名
func (BrandSocialLinkModel) TableName() string { return "brand_social_link" }

// ToBrand 转换为 Brand 实体
func (m *BrandModel) ToBrand() Brand {
	b := Brand{
		ID:             m.ID,
		UserID:         m.UserID,
		ConversationID: m.ConversationID,
		BrandName:      m.BrandName,
		Domain:         m.Domain,
		LogoURL:        deref(m.LogoURL),
		ProductService: deref(m.ProductService),
		CompanyVibe:    deref(m.CompanyVibe),
		TargetAudience: deref(m.TargetAudience),
		Industry:       deref(m.Industry),
		Description:    deref(m.Description),
		Colors:         make([]BrandColor, 0, len(m.Colors)),
		SocialLinks:    make([]SocialLink, 0, len(m.SocialLinks)),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, c := range m.Colors {
		b.Colors = append(b.Colors, BrandColor{Name: deref(c.ColorName), Hex: c.ColorHex})
	}
	for _, s := range m.SocialLinks {
		b.SocialLinks = append(b.SocialLinks, SocialLink{Platform: s.Platform, URL: s.URL})
	}
	return b
}

// BrandToModel 从 Brand 实体创建模型（不含颜色/社交链接，二者由仓储整体替换）
func BrandToModel(b Brand) BrandModel {
	return BrandModel{
		ID:             b.ID,
		UserID:         b.UserID,
		ConversationID: b.ConversationID,
		BrandName:      b.BrandName,
		Domain:         b.Domain,
		LogoURL:        ptr(b.LogoURL),
		ProductService: ptr(b.ProductService),
		CompanyVibe:    ptr(b.CompanyVibe),
		TargetAudience: ptr(b.TargetAudience),
		Industry:       ptr(b.Industry),
		Description:    ptr(b.Description),
	}
}

// RemoteTaskModel GORM 模型 - 对应 remote_task 表
type RemoteTaskModel struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement;column:id"`
	RemoteID       string         `gorm:"column:remote_id;type:text;not null;uniqueIndex"`
	Kind           string         `gorm:"column:kind;type:text;not null"`
	Payload        datatypes.JSON `gorm:"column:payload;type:jsonb;not null"`
	Status         string         `gorm:"column:status;type:text;not null;default:pending"`
	ResultURL      *string        `gorm:"column:result_url;type:text"`
	ErrorMessage   *string        `gorm:"column:error_message;type:text"`
	UserID         *uint64        `gorm:"column:user_id;index:idx_remote_task_user_created,priority:1"`
	BrandID        *uint64        `gorm:"column:brand_id;index"`
	ConversationID *string        `gorm:"column:conversation_id;type:text;index"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime;index:idx_remote_task_user_created,priority:2,sort:desc"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`

	Brand *BrandModel `gorm:"foreignKey:BrandID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (RemoteTaskModel) TableName() string { return "remote_task" }

// ToRemoteTask 转换为 RemoteTask 实体
func (m *RemoteTaskModel) ToRemoteTask() RemoteTask {
	t := RemoteTask{
		ID:             m.ID,
		RemoteID:       m.RemoteID,
		Kind:           model.TaskKind(m.Kind),
		Status:         model.TaskStatus(m.Status),
		ResultURL:      deref(m.ResultURL),
		ErrorMessage:   deref(m.ErrorMessage),
		ConversationID: deref(m.ConversationID),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.UserID != nil {
		t.UserID = *m.UserID
	}
	if m.BrandID != nil {
		t.BrandID = *m.BrandID
	}
	// 解析 payload JSON
	if len(m.Payload) > 0 {
		_ = json.Unmarshal(m.Payload, &t.Payload)
	}
	return t
}

// RemoteTaskToModel 从 RemoteTask 实体创建模型
func RemoteTaskToModel(t RemoteTask) RemoteTaskModel {
	m := RemoteTaskModel{
		ID:             t.ID,
		RemoteID:       t.RemoteID,
		Kind:           string(t.Kind),
		Status:         string(t.Status),
		ResultURL:      ptr(t.ResultURL),
		ErrorMessage:   ptr(t.ErrorMessage),
		ConversationID: ptr(t.ConversationID),
		UserID:         idPtr(t.UserID),
		BrandID:        idPtr(t.BrandID),
	}
	// 序列化 payload 为 JSON
	m.Payload, _ = json.Marshal(t.Payload)
	return m
}

// ScheduledPostModel GORM 模型 - 对应 scheduled_post 表
type ScheduledPostModel struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement;column:id"`
	ContentID      *uint64    `gorm:"column:content_id;index"`
	UserID         *uint64    `gorm:"column:user_id;index"`
	ConversationID *string    `gorm:"column:conversation_id;type:text;index"`
	Platform       string     `gorm:"column:platform;type:text;not null;default:twitter"`
	Caption        string     `gorm:"column:caption;type:text;not null"`
	ScheduledTime  time.Time  `gorm:"column:scheduled_time;not null"`
	Status         string     `gorm:"column:status;type:text;not null;default:scheduled"`
	PostURL        *string    `gorm:"column:post_url;type:text"`
	ErrorMessage   *string    `gorm:"column:error_message;type:text"`
	PostedAt       *time.Time `gorm:"column:posted_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Content *RemoteTaskModel `gorm:"foreignKey:ContentID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (ScheduledPostModel) TableName() string { return "scheduled_post" }

// ToScheduledPost 转换为 ScheduledPost 实体
func (m *ScheduledPostModel) ToScheduledPost() ScheduledPost {
	p := ScheduledPost{
		ID:             m.ID,
		ConversationID: deref(m.ConversationID),
		Platform:       m.Platform,
		Caption:        m.Caption,
		ScheduledTime:  m.ScheduledTime,
		Status:         model.PostStatus(m.Status),
		PostURL:        deref(m.PostURL),
		ErrorMessage:   deref(m.ErrorMessage),
		PostedAt:       m.PostedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.ContentID != nil {
		p.ContentID = *m.ContentID
	}
	if m.UserID != nil {
		p.UserID = *m.UserID
	}
	return p
}

// ScheduledPostToModel 从 ScheduledPost 实体创建模型
func ScheduledPostToModel(p ScheduledPost) ScheduledPostModel {
	return ScheduledPostModel{
		ID:             p.ID,
		ContentID:      idPtr(p.ContentID),
		UserID:         idPtr(p.UserID),
		ConversationID: ptr(p.ConversationID),
		Platform:       p.Platform,
		Caption:        p.Caption,
		ScheduledTime:  p.ScheduledTime,
		Status:         string(p.Status),
		PostURL:        ptr(p.PostURL),
		ErrorMessage:   ptr(p.ErrorMessage),
		PostedAt:       p.PostedAt,
	}
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idPtr(id uint64) *uint64 {
	if id == 0 {
		return nil
	}
	return &id
}
