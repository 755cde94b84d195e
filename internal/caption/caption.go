// Package caption 生成 X 帖子文案。
package caption

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/azhengyongqin/brandpilot/internal/llm"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// MaxLength X 单条帖子字符上限
const MaxLength = 280

// Generator 文案生成器
type Generator struct {
	llm   llm.ChatCompleter
	model string
}

func NewGenerator(c llm.ChatCompleter, model string) *Generator {
	return &Generator{llm: c, model: model}
}

// Generate 根据品牌信息生成一条文案
func (g *Generator) Generate(ctx context.Context, b repository.Brand) (string, error) {
	msg, err := llm.Complete(ctx, g.llm, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: Prompt(b)},
		},
	})
	if err != nil {
		return "", err
	}
	return CleanCaption(msg.Content), nil
}

// Prompt 文案提示词
func Prompt(b repository.Brand) string {
	name := b.BrandName
	if name == "" {
		name = "Brand"
	}
	vibe := b.CompanyVibe
	if vibe == "" {
		vibe = "Professional"
	}
	audience := b.TargetAudience
	if audience == "" {
		audience = "General audience"
	}

	return fmt.Sprintf(`Generate an engaging social media caption for Twitter/X for %[1]s.

Brand Context:
- Brand: %[1]s
- Vibe: %[2]s
- Target Audience: %[3]s
- Image: Marketing image showing product in lifestyle setting

Requirements:
- Keep it under 280 characters (Twitter limit)
- Engaging and authentic tone matching %[2]s
- Include relevant emojis (2-3 max)
- Call-to-action if appropriate
- NO hashtags (we'll add those separately)
- Make it conversational and relatable

Generate ONLY the caption text, nothing else.`, name, vibe, audience)
}

// CleanCaption 去掉首尾空白与模型加上的引号，并按字符截断到 MaxLength
func CleanCaption(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > MaxLength {
		s = strings.TrimSpace(string(runes[:MaxLength]))
	}
	return s
}
