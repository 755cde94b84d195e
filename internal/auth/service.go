package auth

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/logger"
	"github.com/azhengyongqin/brandpilot/internal/repository"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
	// bcrypt 只使用前 72 字节
	maxPasswordLen = 72
)

// Session 登录结果
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Service 注册/登录
type Service struct {
	users  repository.UserRepository
	tokens *JWT
	cost   int
}

func NewService(users repository.UserRepository, tokens *JWT) *Service {
	return &Service{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// Signup 创建用户并直接登录；用户名重复返回 Conflict
func (s *Service) Signup(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}
	logger.L.Info().Uint64("user_id", u.ID).Str("username", u.Username).Msg("新用户注册")
	return s.session(u)
}

// Login 校验密码；用户不存在与密码错误返回同一个 Auth 错误
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Auth("invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Auth("invalid username or password")
	}
	return s.session(u)
}

// ParseToken 校验 bearer token，返回用户 id
func (s *Service) ParseToken(token string) (uint64, error) {
	return s.tokens.Verify(token)
}

func (s *Service) session(u *repository.User) (*Session, error) {
	token, err := s.tokens.Sign(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Username: u.Username}, nil
}

func validateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return apperr.Validation("username must be 3-50 characters")
	}
	if len(password) < minPasswordLen {
		return apperr.Validation("password must be at least 6 characters")
	}
	if len(password) > maxPasswordLen {
		return apperr.Validation("password must be at most 72 bytes")
	}
	return nil
}
