package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/booruscope/pkg/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_BOORU_KEY", "secret-key")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s
  base_url: https://scope.example.com
  session_ttl: 30m

booru:
  base_url: https://safebooru.donmai.us
  login: someone
  api_key: ${TEST_BOORU_KEY}
  page_limit: 50
  max_pages: 10
  delay: 1s

feed:
  rating: Explicit Only
  media: images
  blacklist: [gore, spoilers]
  ranked: true
  min_likelihood: 0.4
  min_likes_for_gate: 3

profile:
  path: /tmp/profile.json
  tag_weight: 1
  rating_weight: 1
  steepness: 8
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "https://scope.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 30*time.Minute, cfg.Server.SessionTTL)

		assert.Equal(t, "https://safebooru.donmai.us", cfg.Booru.BaseURL)
		assert.Equal(t, "secret-key", cfg.Booru.APIKey, "env var expanded")
		assert.Equal(t, 50, cfg.Booru.PageLimit)
		assert.Equal(t, 10, cfg.Booru.MaxPages)
		assert.Equal(t, time.Second, cfg.Booru.Delay)

		assert.True(t, cfg.Feed.Ranked)
		assert.InDelta(t, 0.4, cfg.Feed.MinLikelihood, 0.0001)
		assert.Equal(t, 3, cfg.Feed.MinLikesForGate)

		filters, err := cfg.Filters()
		require.NoError(t, err)
		assert.Equal(t, domain.RatingFilterExplicit, filters.Rating)
		assert.Equal(t, domain.MediaFilterImages, filters.Media)
		assert.Equal(t, []string{"gore", "spoilers"}, filters.Blacklist)

		assert.Equal(t, "/tmp/profile.json", cfg.Profile.Path)
		assert.InDelta(t, 1.0, cfg.Profile.TagWeight, 0.0001)
		assert.InDelta(t, 8.0, cfg.Profile.Steepness, 0.0001)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8080\"\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 2*time.Hour, cfg.Server.SessionTTL)
		assert.Equal(t, "file:booruscope.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, "danbooru", cfg.Booru.Kind)
		assert.Equal(t, "https://danbooru.donmai.us", cfg.Booru.BaseURL)
		assert.Equal(t, 20, cfg.Booru.PageLimit)
		assert.Equal(t, 100, cfg.Booru.MaxPages)
		assert.Equal(t, 500*time.Millisecond, cfg.Booru.Delay)
		assert.Equal(t, 2, cfg.Booru.MaxQueryBlacklist)
		assert.Equal(t, 30*time.Minute, cfg.Feed.IdleTimeout)
		assert.False(t, cfg.Feed.Ranked)
		assert.Equal(t, "profile.json", cfg.Profile.Path)
		assert.InDelta(t, 0.7, cfg.Profile.TagWeight, 0.0001)
		assert.InDelta(t, 0.3, cfg.Profile.RatingWeight, 0.0001)
		assert.InDelta(t, 5.0, cfg.Profile.Steepness, 0.0001)

		filters, err := cfg.Filters()
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultFilters(), filters)
	})

	t.Run("one weight set keeps the other at zero", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "profile:\n  tag_weight: 1\n"))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, cfg.Profile.TagWeight, 0.0001)
		assert.InDelta(t, 0.0, cfg.Profile.RatingWeight, 0.0001)
	})

	t.Run("board kind picks default instance", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "booru:\n  kind: Gelbooru\n"))
		require.NoError(t, err)
		assert.Equal(t, "gelbooru", cfg.Booru.Kind)
		assert.Equal(t, "https://gelbooru.com", cfg.Booru.BaseURL)

		cfg, err = Load(writeConfig(t, "booru:\n  kind: moebooru\n  base_url: https://konachan.net\n"))
		require.NoError(t, err)
		assert.Equal(t, "moebooru", cfg.Booru.Kind)
		assert.Equal(t, "https://konachan.net", cfg.Booru.BaseURL)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		tbl := []struct {
			content string
			errMsg  string
		}{
			{"server:\n  timeout: 10ms\n", "server timeout must be at least 1 second"},
			{"server:\n  session_ttl: 5s\n", "session_ttl must be at least 1 minute"},
			{"booru:\n  kind: e621\n", "booru.kind"},
			{"booru:\n  page_limit: 500\n", "booru.page_limit must be between 1 and 200"},
			{"booru:\n  max_pages: -1\n", "booru.max_pages must be at least 1"},
			{"booru:\n  delay: -1s\n", "booru.delay must be non-negative"},
			{"feed:\n  rating: everything\n", "feed.rating"},
			{"feed:\n  media: audio\n", "feed.media"},
			{"feed:\n  min_likelihood: 1.5\n", "feed.min_likelihood"},
			{"profile:\n  tag_weight: -1\n", "profile weights must be non-negative"},
			{"profile:\n  steepness: -2\n", "profile.steepness must be positive"},
		}
		for _, tt := range tbl {
			t.Run(tt.errMsg, func(t *testing.T) {
				cfg, err := Load(writeConfig(t, tt.content))
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "validate config")
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Feed.MinLikesForGate)
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second}}
	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}
