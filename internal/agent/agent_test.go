package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/brandfetch"
	"github.com/azhengyongqin/brandpilot/internal/repository/memory"
)

// scriptedLLM 依次返回预设的消息，并记录每次请求
type scriptedLLM struct {
	replies  []openai.ChatCompletionMessage
	requests []openai.ChatCompletionRequest
}

func (s *scriptedLLM) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "done"}
	if len(s.replies) > 0 {
		msg = s.replies[0]
		s.replies = s.replies[1:]
	}
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: msg}}}, nil
}

type fakeLookup struct {
	calls []string
}

func (f *fakeLookup) Lookup(_ context.Context, identifier string) (*brandfetch.BrandData, error) {
	f.calls = append(f.calls, identifier)
	if identifier == "unknown.example" {
		return nil, apperr.NotFound("brand " + identifier)
	}
	return &brandfetch.BrandData{
		Name:   "Nike",
		Domain: identifier,
		Colors: []brandfetch.Color{{Hex: "#111111", Type: "dark"}},
	}, nil
}

func toolCall(id, name string, args any) openai.ToolCall {
	b, _ := json.Marshal(args)
	return openai.ToolCall{
		ID:       id,
		Type:     openai.ToolTypeFunction,
		Function: openai.FunctionCall{Name: name, Arguments: string(b)},
	}
}

func assistantCalls(calls ...openai.ToolCall) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, ToolCalls: calls}
}

type fixture struct {
	llm    *scriptedLLM
	lookup *fakeLookup
	convs  *memory.ConversationStore
	brands *memory.BrandStore
	agent  *Agent
}

func newFixture(replies ...openai.ChatCompletionMessage) *fixture {
	f := &fixture{
		llm:    &scriptedLLM{replies: replies},
		lookup: &fakeLookup{},
		convs:  memory.NewConversationStore(),
		brands: memory.NewBrandStore(),
	}
	f.agent = New(f.llm, "gemini-2.5-flash", f.convs, f.brands, f.lookup)
	return f
}

func TestRespond_Greeting(t *testing.T) {
	f := newFixture(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: " Welcome! What's your website? "})

	r, err := f.agent.Respond(context.Background(), 1, "", "hello")
	require.NoError(t, err)

	assert.Regexp(t, `^conv_[0-9a-f]{16}$`, r.ConversationID)
	assert.Equal(t, "Welcome! What's your website?", r.Text)
	assert.Nil(t, r.Brand)
	assert.Empty(t, f.lookup.calls)

	msgs, err := f.convs.ListMessages(context.Background(), r.ConversationID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
}

func TestRespond_BrandSync(t *testing.T) {
	f := newFixture(
		assistantCalls(toolCall("c1", toolLookupBrand, map[string]string{"identifier": "nike.com"})),
		assistantCalls(toolCall("c2", toolSaveBrandProfile, map[string]any{
			"name":            "Nike",
			"domain":          "nike.com",
			"company_vibe":    "Bold & Athletic",
			"target_audience": "Athletes",
			"colors":          []map[string]string{{"name": "Black", "hex": "#111111"}, {"hex": ""}},
			"social_links":    []map[string]string{{"platform": "x", "url": "https://x.com/nike"}},
		})),
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "BrandSync Complete!"},
	)

	r, err := f.agent.Respond(context.Background(), 7, "conv_abc", "nike.com")
	require.NoError(t, err)

	assert.Equal(t, "conv_abc", r.ConversationID)
	assert.Equal(t, "BrandSync Complete!", r.Text)
	require.NotNil(t, r.Brand)
	assert.Equal(t, "Nike", r.Brand.BrandName)
	assert.Equal(t, uint64(7), r.Brand.UserID)
	assert.Equal(t, "conv_abc", r.Brand.ConversationID)
	assert.Len(t, r.Brand.Colors, 1)
	assert.Len(t, r.Brand.SocialLinks, 1)
	assert.Equal(t, []string{"nike.com"}, f.lookup.calls)

	// 第二次请求中带有 lookup 的工具结果
	require.Len(t, f.llm.requests, 3)
	second := f.llm.requests[1].Messages
	last := second[len(second)-1]
	assert.Equal(t, openai.ChatMessageRoleTool, last.Role)
	assert.Equal(t, "c1", last.ToolCallID)
	assert.Contains(t, last.Content, `"name":"Nike"`)

	latest, err := f.brands.Latest(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, r.Brand.ID, latest.ID)
}

func TestRespond_ToolErrorsGoBackToModel(t *testing.T) {
	f := newFixture(
		assistantCalls(
			toolCall("c1", toolLookupBrand, map[string]string{"identifier": "unknown.example"}),
			toolCall("c2", toolSaveBrandProfile, map[string]any{"name": "NoDomain"}),
			toolCall("c3", "delete_everything", map[string]any{}),
		),
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "I couldn't find that brand."},
	)

	r, err := f.agent.Respond(context.Background(), 1, "", "unknown.example")
	require.NoError(t, err)
	assert.Nil(t, r.Brand)

	msgs := f.llm.requests[1].Messages
	results := msgs[len(msgs)-3:]
	assert.Contains(t, results[0].Content, "not found")
	assert.Contains(t, results[1].Content, "brand domain is required")
	assert.Contains(t, results[2].Content, "unknown tool")
}

func TestRespond_ToolRoundsCapped(t *testing.T) {
	var replies []openai.ChatCompletionMessage
	for i := 0; i < MaxToolRounds+3; i++ {
		replies = append(replies, assistantCalls(toolCall("c", toolLookupBrand, map[string]string{"identifier": "nike.com"})))
	}
	f := newFixture(replies...)

	_, err := f.agent.Respond(context.Background(), 1, "", "loop")
	require.NoError(t, err)

	require.Len(t, f.llm.requests, MaxToolRounds+1)
	assert.Len(t, f.lookup.calls, MaxToolRounds)
	assert.Empty(t, f.llm.requests[MaxToolRounds].Tools)
}

func TestRespond_ReplaysHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	r, err := f.agent.Respond(ctx, 1, "", "first")
	require.NoError(t, err)
	_, err = f.agent.Respond(ctx, 1, r.ConversationID, "second")
	require.NoError(t, err)

	msgs := f.llm.requests[1].Messages
	var contents []string
	for _, m := range msgs[1:] {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"first", "done", "second"}, contents)
	assert.True(t, strings.HasPrefix(msgs[0].Content, "You are the orchestrator"))
}

func TestRespond_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.agent.Respond(ctx, 1, "", "   ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	r, err := f.agent.Respond(ctx, 1, "", "hi")
	require.NoError(t, err)
	_, err = f.agent.Respond(ctx, 2, r.ConversationID, "hi")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestNewConversationID(t *testing.T) {
	a, b := NewConversationID(), NewConversationID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("conv_")+16)
}
