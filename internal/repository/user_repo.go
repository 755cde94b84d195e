package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

// UserRepo 基于 GORM 的用户仓储
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepo
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*User, error) {
	m := UserModel{Username: strings.TrimSpace(username), PasswordHash: passwordHash}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("username already taken")
		}
		return nil, err
	}
	u := m.ToUser()
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, "username = ?", strings.TrimSpace(username)).Error; err != nil {
		return nil, translateError(err, "user")
	}
	u := m.ToUser()
	return &u, nil
}
