package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

// BrandStore 品牌仓储（内存版）
type BrandStore struct {
	mu     sync.RWMutex
	nextID uint64
	items  map[uint64]repository.Brand
}

func NewBrandStore() *BrandStore {
	return &BrandStore{items: map[uint64]repository.Brand{}}
}

func (s *BrandStore) Save(_ context.Context, b repository.Brand) (*repository.Brand, error) {
	b.BrandName = strings.TrimSpace(b.BrandName)
	b.Domain = strings.ToLower(strings.TrimSpace(b.Domain))
	if b.BrandName == "" {
		return nil, apperr.Validation("brand_name is required")
	}
	if b.Domain == "" {
		return nil, apperr.Validation("domain is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	b.UpdatedAt = now
	for id, existing := range s.items {
		if existing.UserID == b.UserID && existing.ConversationID == b.ConversationID && existing.Domain == b.Domain {
			b.ID = id
			b.CreatedAt = existing.CreatedAt
			s.items[id] = normalize(b)
			out := s.items[id]
			return &out, nil
		}
	}

	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = now
	s.items[b.ID] = normalize(b)
	out := s.items[b.ID]
	return &out, nil
}

func normalize(b repository.Brand) repository.Brand {
	if b.Colors == nil {
		b.Colors = []repository.BrandColor{}
	}
	if b.SocialLinks == nil {
		b.SocialLinks = []repository.SocialLink{}
	}
	return b
}

func (s *BrandStore) Get(_ context.Context, id uint64) (*repository.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.items[id]
	if !ok {
		return nil, apperr.NotFound("brand")
	}
	return &b, nil
}

func (s *BrandStore) List(_ context.Context, f repository.BrandFilter) ([]repository.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.Brand, 0)
	for _, b := range s.items {
		if f.UserID != 0 && b.UserID != f.UserID {
			continue
		}
		if f.ConversationID != "" && b.ConversationID != f.ConversationID {
			continue
		}
		if f.Domain != "" && b.Domain != strings.ToLower(f.Domain) {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return paginate(out, 0, f.Limit), nil
}

func (s *BrandStore) Latest(ctx context.Context, userID uint64) (*repository.Brand, error) {
	brands, _ := s.List(ctx, repository.BrandFilter{UserID: userID, Limit: 1})
	if len(brands) == 0 {
		return nil, apperr.NotFound("brand")
	}
	return &brands[0], nil
}
