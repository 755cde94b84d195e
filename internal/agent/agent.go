// Package agent 对话编排：通过工具调用完成品牌识别与建档。
package agent

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/brandfetch"
	"github.com/azhengyongqin/brandpilot/internal/llm"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

const (
	// HistoryLimit 回放给模型的历史消息条数
	HistoryLimit = 20
	// MaxToolRounds 单次回复内最多的工具调用轮数
	MaxToolRounds = 5
)

// BrandLookup 品牌数据查询
type BrandLookup interface {
	Lookup(ctx context.Context, identifier string) (*brandfetch.BrandData, error)
}

// Reply 一次对话的回复
type Reply struct {
	ConversationID string
	Text           string
	// Brand 本轮保存的品牌，没有保存时为 nil
	Brand *repository.Brand
}

// Agent 对话编排器
type Agent struct {
	llm    llm.ChatCompleter
	model  string
	convs  repository.ConversationRepository
	brands repository.BrandRepository
	lookup BrandLookup
}

func New(c llm.ChatCompleter, model string, convs repository.ConversationRepository, brands repository.BrandRepository, lookup BrandLookup) *Agent {
	return &Agent{llm: c, model: model, convs: convs, brands: brands, lookup: lookup}
}

// NewConversationID 生成 conv_ + 16 位十六进制
func NewConversationID() string {
	id := uuid.New()
	return "conv_" + hex.EncodeToString(id[:8])
}

// Respond 处理一条用户消息；conversationID 为空时新建对话
func (a *Agent) Respond(ctx context.Context, userID uint64, conversationID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.Validation("message is required")
	}
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		conversationID = NewConversationID()
	}

	if _, err := a.convs.Ensure(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	history, err := a.convs.ListMessages(ctx, conversationID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	if err := a.convs.AppendMessage(ctx, repository.Message{
		ConversationID: conversationID,
		Role:           openai.ChatMessageRoleUser,
		Content:        message,
	}); err != nil {
		return nil, err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	for _, m := range history {
		if m.Role != openai.ChatMessageRoleUser && m.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	t := &turn{userID: userID, conversationID: conversationID}
	text, err := a.complete(ctx, t, msgs)
	if err != nil {
		return nil, err
	}

	if err := a.convs.AppendMessage(ctx, repository.Message{
		ConversationID: conversationID,
		Role:           openai.ChatMessageRoleAssistant,
		Content:        text,
	}); err != nil {
		return nil, err
	}

	ev := logger.L.Info().Str("conversation_id", conversationID).Uint64("user_id", userID)
	if t.saved != nil {
		ev = ev.Uint64("brand_id", t.saved.ID)
	}
	ev.Msg("对话回复完成")

	return &Reply{ConversationID: conversationID, Text: text, Brand: t.saved}, nil
}

// complete 工具调用循环；超过 MaxToolRounds 后不再提供工具，强制模型给出文本
func (a *Agent) complete(ctx context.Context, t *turn, msgs []openai.ChatCompletionMessage) (string, error) {
	for round := 0; ; round++ {
		req := openai.ChatCompletionRequest{Model: a.model, Messages: msgs}
		if round < MaxToolRounds {
			req.Tools = tools
		}

		msg, err := llm.Complete(ctx, a.llm, req)
		if err != nil {
			return "", err
		}
		if len(msg.ToolCalls) == 0 || round >= MaxToolRounds {
			return strings.TrimSpace(msg.Content), nil
		}

		msgs = append(msgs, msg)
		for _, call := range msg.ToolCalls {
			logger.L.Debug().Str("tool", call.Function.Name).Int("round", round+1).Msg("执行工具调用")
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    a.runTool(ctx, t, call),
			})
		}
	}
}
