package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

// BrandRepo 基于 GORM 的品牌仓储
type BrandRepo struct {
	db *gorm.DB
}

// NewBrandRepo 创建 BrandRepo
func NewBrandRepo(db *gorm.DB) *BrandRepo {
	return &BrandRepo{db: db}
}

// Save upsert 品牌，颜色与社交链接先删后插，整体在一个事务内完成
func (r *BrandRepo) Save(ctx context.Context, b Brand) (*Brand, error) {
	b.BrandName = strings.TrimSpace(b.BrandName)
	b.Domain = strings.ToLower(strings.TrimSpace(b.Domain))
	if b.BrandName == "" {
		return nil, apperr.Validation("brand_name is required")
	}
	if b.Domain == "" {
		return nil, apperr.Validation("domain is required")
	}

	var id uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := BrandToModel(b)
		m.ID = 0
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "conversation_id"}, {Name: "domain"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"brand_name", "logo_url", "product_service", "company_vibe",
				"target_audience", "industry", "description", "updated_at",
			}),
		}).Omit(clause.Associations).Create(&m).Error
		if err != nil {
			return err
		}
		id = m.ID

		if err := tx.Where("brand_id = ?", id).Delete(&BrandColorModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("brand_id = ?", id).Delete(&BrandSocialLinkModel{}).Error; err != nil {
			return err
		}

		colors := make([]BrandColorModel, 0, len(b.Colors))
		for _, c := range b.Colors {
			if c.Hex == "" {
				continue
			}
			colors = append(colors, BrandColorModel{BrandID: id, ColorName: ptr(c.Name), ColorHex: c.Hex})
		}
		if len(colors) > 0 {
			if err := tx.Create(&colors).Error; err != nil {
				return err
			}
		}

		links := make([]BrandSocialLinkModel, 0, len(b.SocialLinks))
		for _, s := range b.SocialLinks {
			if s.URL == "" {
				continue
			}
			links = append(links, BrandSocialLinkModel{BrandID: id, Platform: s.Platform, URL: s.URL})
		}
		if len(links) > 0 {
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err, "brand")
	}
	return r.Get(ctx, id)
}

func (r *BrandRepo) Get(ctx context.Context, id uint64) (*Brand, error) {
	var m BrandModel
	err := r.db.WithContext(ctx).
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("SocialLinks", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "brand")
	}
	b := m.ToBrand()
	return &b, nil
}

func (r *BrandRepo) List(ctx context.Context, f BrandFilter) ([]Brand, error) {
	q := r.db.WithContext(ctx).Model(&BrandModel{}).
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("SocialLinks", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") })
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.ConversationID != "" {
		q = q.Where("conversation_id = ?", f.ConversationID)
	}
	if f.Domain != "" {
		q = q.Where("domain = ?", strings.ToLower(f.Domain))
	}

	var rows []BrandModel
	if err := q.Order("updated_at desc").Limit(clampLimit(f.Limit, 50, 200)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Brand, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToBrand())
	}
	return out, nil
}

func (r *BrandRepo) Latest(ctx context.Context, userID uint64) (*Brand, error) {
	brands, err := r.List(ctx, BrandFilter{UserID: userID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, apperr.NotFound("brand")
	}
	return &brands[0], nil
}
