package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

// ConversationRepo 基于 GORM 的对话仓储
type ConversationRepo struct {
	db *gorm.DB
}

// NewConversationRepo 创建 ConversationRepo
func NewConversationRepo(db *gorm.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Ensure(ctx context.Context, conversationID string, userID uint64) (*Conversation, error) {
	if conversationID == "" {
		return nil, apperr.Validation("conversation_id is required")
	}
	m := ConversationModel{ConversationID: conversationID, UserID: userID, Status: "active"}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
	if err != nil {
		return nil, err
	}

	c, err := r.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	// 不暴露其他用户的对话
	if c.UserID != userID {
		return nil, apperr.NotFound("conversation")
	}
	return c, nil
}

func (r *ConversationRepo) Get(ctx context.Context, conversationID string) (*Conversation, error) {
	var m ConversationModel
	if err := r.db.WithContext(ctx).First(&m, "conversation_id = ?", conversationID).Error; err != nil {
		return nil, translateError(err, "conversation")
	}
	c := m.ToConversation()
	return &c, nil
}

func (r *ConversationRepo) AppendMessage(ctx context.Context, msg Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := MessageModel{ConversationID: msg.ConversationID, Role: msg.Role, Content: msg.Content}
		if err := tx.Omit("Conversation").Create(&m).Error; err != nil {
			return translateError(err, "message")
		}
		return tx.Model(&ConversationModel{}).
			Where("conversation_id = ?", msg.ConversationID).
			Update("last_message_at", time.Now()).Error
	})
}

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]Message, error) {
	limit = clampLimit(limit, 20, 200)

	// 先倒序取最近 limit 条，再翻转为正序
	var rows []MessageModel
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]Message, len(rows))
	for i := range rows {
		out[len(rows)-1-i] = rows[i].ToMessage()
	}
	return out, nil
}

func (r *ConversationRepo) LinkXAccount(ctx context.Context, conversationID, username, xUserID string) error {
	res := r.db.WithContext(ctx).
		Model(&ConversationModel{}).
		Where("conversation_id = ?", conversationID).
		Updates(map[string]any{"x_username": username, "x_user_id": ptr(xUserID)})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("conversation")
	}
	return nil
}
