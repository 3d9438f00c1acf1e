package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.FeedRevalidate)
	assert.Equal(t, "https://www.youtube.com/feeds/videos.xml?channel_id=%s", cfg.FeedURLTemplate)
	assert.Equal(t, "Mozilla/5.0", cfg.FeedUserAgent)
	assert.Equal(t, 50, cfg.FeedMaxResultsCap)
	assert.Equal(t, "mrzgang", cfg.CalendarUIDDomain)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "stdout", cfg.LogOutput())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FEED_REVALIDATE", "90s")
	t.Setenv("LOG_FILE", "/tmp/mrz.log")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.FeedRevalidate)
	assert.Equal(t, "/tmp/mrz.log", cfg.LogOutput())
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"template without placeholder", "FEED_URL_TEMPLATE", "https://example.com/feed"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"non numeric port", "PORT", "http"},
		{"bad duration", "FEED_TIMEOUT", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}
