package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
	"github.com/azhengyongqin/brandpilot/internal/repository/memory"
)

func newTestService() *Service {
	s := NewService(memory.NewUserStore(), NewJWT("test-secret", time.Hour))
	s.cost = bcrypt.MinCost
	return s
}

func TestJWT_SignVerify(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	token, err := j.Sign(42)
	require.NoError(t, err)

	id, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestJWT_Rejects(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	valid, err := j.Sign(1)
	require.NoError(t, err)

	expired := NewJWT("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Sign(1)
	require.NoError(t, err)

	otherKey, err := NewJWT("other", time.Hour).Sign(1)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", old},
		{"wrong key", otherKey},
		{"alg none", none},
		{"tampered", valid + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Verify(tt.token)
			assert.ErrorIs(t, err, apperr.ErrAuth)
		})
	}
}

func TestService_SignupLogin(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	sess, err := s.Signup(ctx, " alice ", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)

	id, err := s.ParseToken(sess.Token)
	require.NoError(t, err)
	assert.NotZero(t, id)

	login, err := s.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	got, err := s.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestService_Errors(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	_, err := s.Signup(ctx, "alice", "hunter22")
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"duplicate signup", func() error { _, err := s.Signup(ctx, "alice", "another1"); return err }, apperr.ErrConflict},
		{"short username", func() error { _, err := s.Signup(ctx, "al", "hunter22"); return err }, apperr.ErrValidation},
		{"short password", func() error { _, err := s.Signup(ctx, "bob", "123"); return err }, apperr.ErrValidation},
		{"wrong password", func() error { _, err := s.Login(ctx, "alice", "wrong"); return err }, apperr.ErrAuth},
		{"unknown user", func() error { _, err := s.Login(ctx, "nobody", "hunter22"); return err }, apperr.ErrAuth},
		{"empty login", func() error { _, err := s.Login(ctx, "", ""); return err }, apperr.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
