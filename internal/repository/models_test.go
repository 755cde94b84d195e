package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/model"
)

func TestRemoteTaskModelRoundTrip(t *testing.T) {
	task := RemoteTask{
		RemoteID: "task_abc",
		Kind:     model.TaskKindImage,
		Payload: TaskPayload{
			Prompt:    "make it pop",
			ImageURLs: []string{"https://cdn/x.png"},
			Model:     "google/nano-banana-edit",
			Format:    "png",
		},
		Status:  model.TaskStatusPending,
		UserID:  7,
		BrandID: 3,
	}

	m := RemoteTaskToModel(task)
	assert.Nil(t, m.ResultURL)
	assert.Nil(t, m.ConversationID)
	require.NotNil(t, m.UserID)
	assert.Equal(t, uint64(7), *m.UserID)
	assert.JSONEq(t, `{"prompt":"make it pop","image_urls":["https://cdn/x.png"],"model":"google/nano-banana-edit","format":"png"}`, string(m.Payload))

	back := m.ToRemoteTask()
	assert.Equal(t, task.Payload, back.Payload)
	assert.Equal(t, task.Kind, back.Kind)
	assert.Equal(t, uint64(3), back.BrandID)
	assert.Empty(t, back.ConversationID)
}

func TestBrandModelConversion(t *testing.T) {
	m := BrandModel{
		ID:        9,
		UserID:    1,
		BrandName: "Nike",
		Domain:    "nike.com",
		Colors: []BrandColorModel{
			{ColorHex: "#111111"},
			{ColorName: ptr("accent"), ColorHex: "#FF6B00"},
		},
		SocialLinks: []BrandSocialLinkModel{{Platform: "twitter", URL: "https://x.com/nike"}},
	}

	b := m.ToBrand()
	assert.Equal(t, "#111111", b.PrimaryColor("#000000"))
	assert.Equal(t, "accent", b.Colors[1].Name)
	assert.Len(t, b.SocialLinks, 1)

	empty := Brand{}
	assert.Equal(t, "#FF6B00", empty.PrimaryColor("#FF6B00"))

	back := BrandToModel(b)
	assert.Nil(t, back.LogoURL)
	assert.Equal(t, "nike.com", back.Domain)
}

func TestScheduledPostModelConversion(t *testing.T) {
	p := ScheduledPost{Caption: "hello", Platform: model.PlatformTwitter, Status: model.PostStatusScheduled}
	m := ScheduledPostToModel(p)
	assert.Nil(t, m.ContentID)
	assert.Nil(t, m.PostURL)

	p.ContentID = 42
	m = ScheduledPostToModel(p)
	require.NotNil(t, m.ContentID)
	assert.Equal(t, uint64(42), m.ToScheduledPost().ContentID)
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil, "brand"))
	assert.True(t, errors.Is(translateError(gorm.ErrRecordNotFound, "brand"), apperr.ErrNotFound))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, errors.Is(translateError(dup, "brand"), apperr.ErrConflict))

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other, "brand"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, clampLimit(0, 50, 200))
	assert.Equal(t, 50, clampLimit(500, 50, 200))
	assert.Equal(t, 10, clampLimit(10, 50, 200))
}
