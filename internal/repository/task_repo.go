package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/model"
)

// TaskRepo 基于 GORM 的生成任务注册表
type TaskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepo
func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create 登记新任务
func (r *TaskRepo) Create(ctx context.Context, t RemoteTask) (*RemoteTask, error) {
	if t.RemoteID == "" {
		return nil, apperr.Validation("remote_id 不能为空")
	}
	if t.Status == "" {
		t.Status = model.TaskStatusPending
	}
	m := RemoteTaskToModel(t)
	if err := r.db.WithContext(ctx).Omit("Brand").Create(&m).Error; err != nil {
		return nil, translateError(err, "task")
	}
	out := m.ToRemoteTask()
	return &out, nil
}

// Get 按本地 id 查询
func (r *TaskRepo) Get(ctx context.Context, id uint64) (*RemoteTask, error) {
	var m RemoteTaskModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "task")
	}
	t := m.ToRemoteTask()
	return &t, nil
}

// UpdateStatus 条件更新：只有当前状态属于 status 的合法前驱时才写入，
// 因此终态任务不会被过期的轮询结果覆盖。
func (r *TaskRepo) UpdateStatus(ctx context.Context, id uint64, status model.TaskStatus, resultURL, errMsg string) (bool, error) {
	preds := model.Predecessors(status)
	if len(preds) == 0 {
		return false, nil
	}
	from := make([]string, 0, len(preds))
	for _, p := range preds {
		from = append(from, string(p))
	}

	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if resultURL != "" {
		updates["result_url"] = resultURL
	}
	if errMsg != "" {
		updates["error_message"] = errMsg
	}

	res := r.db.WithContext(ctx).
		Model(&RemoteTaskModel{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// 没有更新：区分“任务不存在”与“迁移被忽略”
	var count int64
	if err := r.db.WithContext(ctx).Model(&RemoteTaskModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, translateError(gorm.ErrRecordNotFound, "task")
	}
	return false, nil
}

// List 按条件查询
func (r *TaskRepo) List(ctx context.Context, f TaskFilter) ([]RemoteTask, error) {
	q := r.db.WithContext(ctx).Model(&RemoteTaskModel{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.BrandID != 0 {
		q = q.Where("brand_id = ?", f.BrandID)
	}
	if f.ConversationID != "" {
		q = q.Where("conversation_id = ?", f.ConversationID)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", string(f.Kind))
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var rows []RemoteTaskModel
	if err := q.Order("created_at desc").Limit(clampLimit(f.Limit, 50, 200)).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]RemoteTask, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToRemoteTask())
	}
	return out, nil
}
