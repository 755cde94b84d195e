package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/azhengyongqin/brandpilot/internal/model"
)

// PostRepo 基于 GORM 的定时发布仓储
type PostRepo struct {
	db *gorm.DB
}

// NewPostRepo 创建 PostRepo
func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, p ScheduledPost) (*ScheduledPost, error) {
	if p.Status == "" {
		p.Status = model.PostStatusScheduled
	}
	if p.Platform == "" {
		p.Platform = model.PlatformTwitter
	}
	m := ScheduledPostToModel(p)
	if err := r.db.WithContext(ctx).Omit("Content").Create(&m).Error; err != nil {
		return nil, translateError(err, "scheduled post")
	}
	out := m.ToScheduledPost()
	return &out, nil
}

func (r *PostRepo) Get(ctx context.Context, id uint64) (*ScheduledPost, error) {
	var m ScheduledPostModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "scheduled post")
	}
	p := m.ToScheduledPost()
	return &p, nil
}

// ClaimDue 在同一条语句里完成“选出到期行 + 标记为 publishing”。
// skip locked 让并发的扫描器/立即发布请求不会认领到同一行。
func (r *PostRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]ScheduledPost, error) {
	limit = clampLimit(limit, 20, 500)

	var rows []ScheduledPostModel
	err := r.db.WithContext(ctx).Raw(`
update scheduled_post p
set status = ?, updated_at = now()
where p.id in (
  select id
  from scheduled_post
  where status = ? and scheduled_time <= ?
  order by scheduled_time asc
  limit ?
  for update skip locked
)
returning p.*
`, string(model.PostStatusPublishing), string(model.PostStatusScheduled), now, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ScheduledPost, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToScheduledPost())
	}
	return out, nil
}

func (r *PostRepo) MarkPosted(ctx context.Context, id uint64, postURL string, postedAt time.Time) (bool, error) {
	return r.finish(ctx, id, map[string]any{
		"status":        string(model.PostStatusPosted),
		"post_url":      postURL,
		"posted_at":     postedAt,
		"error_message": gorm.Expr("NULL"),
	})
}

func (r *PostRepo) MarkFailed(ctx context.Context, id uint64, errMsg string) (bool, error) {
	return r.finish(ctx, id, map[string]any{
		"status":        string(model.PostStatusFailed),
		"error_message": errMsg,
	})
}

// finish 只对 publishing 行生效，保证每个条目只离开 publishing 一次
func (r *PostRepo) finish(ctx context.Context, id uint64, updates map[string]any) (bool, error) {
	updates["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&ScheduledPostModel{}).
		Where("id = ? AND status = ?", id, string(model.PostStatusPublishing)).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostRepo) FailStale(ctx context.Context, before time.Time, errMsg string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&ScheduledPostModel{}).
		Where("status = ? AND updated_at < ?", string(model.PostStatusPublishing), before).
		Updates(map[string]any{
			"status":        string(model.PostStatusFailed),
			"error_message": errMsg,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *PostRepo) List(ctx context.Context, f PostFilter) ([]ScheduledPost, error) {
	q := r.db.WithContext(ctx).Model(&ScheduledPostModel{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ConversationID != "" {
		q = q.Where("conversation_id = ?", f.ConversationID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var rows []ScheduledPostModel
	if err := q.Order("scheduled_time desc").Limit(clampLimit(f.Limit, 50, 200)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ScheduledPost, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToScheduledPost())
	}
	return out, nil
}
