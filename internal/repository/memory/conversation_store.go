package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// ConversationStore 对话仓储（内存版）
type ConversationStore struct {
	mu       sync.RWMutex
	nextID   uint64
	convs    map[string]repository.Conversation
	messages map[string][]repository.Message
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{
		convs:    map[string]repository.Conversation{},
		messages: map[string][]repository.Message{},
	}
}

func (s *ConversationStore) Ensure(_ context.Context, conversationID string, userID uint64) (*repository.Conversation, error) {
	if conversationID == "" {
		return nil, apperr.Validation("conversation_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[conversationID]
	if !ok {
		now := time.Now()
		c = repository.Conversation{
			ConversationID: conversationID,
			UserID:         userID,
			Status:         "active",
			StartedAt:      now,
			LastMessageAt:  now,
		}
		s.convs[conversationID] = c
	}
	if c.UserID != userID {
		return nil, apperr.NotFound("conversation")
	}
	return &c, nil
}

func (s *ConversationStore) Get(_ context.Context, conversationID string) (*repository.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[conversationID]
	if !ok {
		return nil, apperr.NotFound("conversation")
	}
	return &c, nil
}

func (s *ConversationStore) AppendMessage(_ context.Context, msg repository.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[msg.ConversationID]
	if !ok {
		return apperr.NotFound("conversation")
	}
	s.nextID++
	msg.ID = s.nextID
	msg.CreatedAt = time.Now()
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	c.LastMessageAt = msg.CreatedAt
	s.convs[msg.ConversationID] = c
	return nil
}

func (s *ConversationStore) ListMessages(_ context.Context, conversationID string, limit int) ([]repository.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]repository.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *ConversationStore) LinkXAccount(_ context.Context, conversationID, username, xUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[conversationID]
	if !ok {
		return apperr.NotFound("conversation")
	}
	c.XUsername = username
	c.XUserID = xUserID
	s.convs[conversationID] = c
	return nil
}

// UserStore 用户仓储（内存版）
type UserStore struct {
	mu     sync.RWMutex
	nextID uint64
	items  map[string]repository.User
}

func NewUserStore() *UserStore {
	return &UserStore{items: map[string]repository.User{}}
}

func (s *UserStore) Create(_ context.Context, username, passwordHash string) (*repository.User, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[username]; ok {
		return nil, apperr.Conflict("username already taken")
	}
	s.nextID++
	u := repository.User{ID: s.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.items[username] = u
	return &u, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (*repository.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.items[strings.TrimSpace(username)]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &u, nil
}
