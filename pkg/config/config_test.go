package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "https://api.twitter.com/1.1", config.Twitter.BaseURL)
	assert.Equal(t, 200, config.Twitter.PageSize)
	assert.Equal(t, time.Minute, config.RateLimit.Wait)
	assert.Equal(t, 0, config.RateLimit.MaxWaits, "rate limit waits are unbounded by default")
	assert.Equal(t, "output.txt", config.Output.File)
	assert.Equal(t, "|", config.Output.Separator)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(BearerTokenEnv, "legacy-token")
	t.Setenv("TWFOLLOWERS_PAGE_SIZE", "50")
	t.Setenv("TWFOLLOWERS_RATE_LIMIT_WAIT", "90s")
	t.Setenv("TWFOLLOWERS_MAX_RATE_LIMIT_WAITS", "4")
	t.Setenv("TWFOLLOWERS_OUTPUT_FILE", "/tmp/followers.txt")
	t.Setenv("TWFOLLOWERS_NOTIFICATIONS_ENABLED", "true")
	t.Setenv("TWFOLLOWERS_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, "legacy-token", config.Twitter.BearerToken)
	assert.Equal(t, 50, config.Twitter.PageSize)
	assert.Equal(t, 90*time.Second, config.RateLimit.Wait)
	assert.Equal(t, 4, config.RateLimit.MaxWaits)
	assert.Equal(t, "/tmp/followers.txt", config.Output.File)
	assert.True(t, config.Notifications.Enabled)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromEnvPrefixedTokenWins(t *testing.T) {
	t.Setenv(BearerTokenEnv, "legacy-token")
	t.Setenv("TWFOLLOWERS_BEARER_TOKEN", "new-token")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())
	assert.Equal(t, "new-token", config.Twitter.BearerToken)
}

func TestLoadFromEnvInvalidValues(t *testing.T) {
	t.Setenv("TWFOLLOWERS_PAGE_SIZE", "lots")
	t.Setenv("TWFOLLOWERS_RATE_LIMIT_WAIT", "a minute")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TWFOLLOWERS_PAGE_SIZE")
	assert.Contains(t, err.Error(), "TWFOLLOWERS_RATE_LIMIT_WAIT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"page size too large", func(c *Config) { c.Twitter.PageSize = 201 }, true},
		{"page size zero", func(c *Config) { c.Twitter.PageSize = 0 }, true},
		{"missing base url", func(c *Config) { c.Twitter.BaseURL = "" }, true},
		{"negative max waits", func(c *Config) { c.RateLimit.MaxWaits = -1 }, true},
		{"pacing without window", func(c *Config) {
			c.RateLimit.RequestsPerWindow = 15
			c.RateLimit.Window = 0
		}, true},
		{"too many retries", func(c *Config) { c.Retry.MaxAttempts = 11 }, true},
		{"empty separator", func(c *Config) { c.Output.Separator = "" }, true},
		{"empty output file", func(c *Config) { c.Output.File = "" }, true},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"missing token is allowed", func(c *Config) { c.Twitter.BearerToken = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Twitter.PageSize = 100
	original.RateLimit.Wait = 2 * time.Minute
	original.Output.Separator = ";"
	require.NoError(t, original.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, 100, loaded.Twitter.PageSize)
	assert.Equal(t, 2*time.Minute, loaded.RateLimit.Wait)
	assert.Equal(t, ";", loaded.Output.Separator)
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "config.yaml")
	content := []byte("twitter:\n  bearer_token: file-token\n  page_size: 20\noutput:\n  file: file.txt\n")
	require.NoError(t, os.WriteFile(path, content, 0600))

	t.Setenv("TWFOLLOWERS_OUTPUT_FILE", "env.txt")

	flags := map[string]interface{}{
		"page-size": 10,
	}

	config, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "file-token", config.Twitter.BearerToken)
	assert.Equal(t, "env.txt", config.Output.File)
	assert.Equal(t, 10, config.Twitter.PageSize)
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()
	config.MergeCommandLineFlags(map[string]interface{}{
		"bearer-token":         "flag-token",
		"rate-limit-wait":      5 * time.Second,
		"max-rate-limit-waits": 2,
		"max-retries":          0,
		"output":               "out.txt",
		"separator":            ",",
		"notifications":        true,
		"log-level":            "warn",
	})

	assert.Equal(t, "flag-token", config.Twitter.BearerToken)
	assert.Equal(t, 5*time.Second, config.RateLimit.Wait)
	assert.Equal(t, 2, config.RateLimit.MaxWaits)
	assert.Equal(t, 0, config.Retry.MaxAttempts)
	assert.Equal(t, "out.txt", config.Output.File)
	assert.Equal(t, ",", config.Output.Separator)
	assert.True(t, config.Notifications.Enabled)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	assert.Equal(t, "********", MaskToken("short"))
	assert.Equal(t, "AAAA...zzzz", MaskToken("AAAAbbbbccccddddzzzz"))
}
