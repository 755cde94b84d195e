package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		parts  []string
		want   string
	}{
		{"no parts", "brand", nil, "brandpilot:brand"},
		{"normalized", "brand", []string{" Nike.COM "}, "brandpilot:brand:nike.com"},
		{"multiple", "tweetapi", []string{"user", "elonmusk"}, "brandpilot:tweetapi:user:elonmusk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CacheKey(tt.prefix, tt.parts...))
		})
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not-a-url://")
	assert.Error(t, err)
}
