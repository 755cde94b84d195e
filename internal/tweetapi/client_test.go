package tweetapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azhengyongqin/brandpilot/internal/apperr"
)

func TestClient_Passthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		switch r.URL.Path {
		case "/tw-v2/user/by-username":
			assert.Equal(t, "acme", r.URL.Query().Get("username"))
			_, _ = w.Write([]byte(`{"data":{"id":"42","followers":10}}`))
		case "/tw-v2/user/tweets":
			assert.Equal(t, "42", r.URL.Query().Get("userId"))
			_, _ = w.Write([]byte(`{"data":[{"id":"1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")

	raw, err := c.UserByUsername(context.Background(), "@acme")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"id":"42","followers":10}}`, string(raw))

	raw, err = c.UserTweets(context.Background(), "42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"id":"1"}]}`, string(raw))
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{}`, apperr.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, `slow down`, apperr.ErrRemoteAPI},
		{"not json", http.StatusOK, `<html>`, apperr.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "k").UserByUsername(context.Background(), "acme")
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestClient_Validation(t *testing.T) {
	c := NewClient("http://unused", "k")
	_, err := c.UserByUsername(context.Background(), " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = c.UserTweets(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = NewClient("http://unused", "").UserTweets(context.Background(), "1")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
