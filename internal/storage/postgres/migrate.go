package postgres

import (
	"context"
	"fmt"
)

// extraDDL AutoMigrate 无法表达的索引（部分索引等），均为幂等语句
var extraDDL = []string{
	`create index if not exists idx_scheduled_post_due on scheduled_post (scheduled_time) where status = 'scheduled'`,
	`create index if not exists idx_scheduled_post_publishing on scheduled_post (updated_at) where status = 'publishing'`,
	`create index if not exists idx_remote_task_open on remote_task (updated_at) where status in ('pending', 'generating')`,
}

// Migrate 通过 GORM AutoMigrate 建表，再补充部分索引。
// models 由仓储层提供，storage 层不感知具体业务表。
func (d *DB) Migrate(ctx context.Context, models ...any) error {
	db := d.DB.WithContext(ctx)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range extraDDL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply ddl: %w", err)
		}
	}
	return nil
}
