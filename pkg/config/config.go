package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the follower fetcher
type Config struct {
	// Twitter API access
	Twitter TwitterConfig `yaml:"twitter" json:"twitter"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Transient network retry configuration
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Notification preferences
	Notifications NotificationConfig `yaml:"notifications" json:"notifications"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TwitterConfig holds Twitter API configuration
type TwitterConfig struct {
	BearerToken string        `yaml:"bearer_token" json:"bearer_token"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	PageSize    int           `yaml:"page_size" json:"page_size"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// RateLimitConfig controls what happens when the API answers 429
type RateLimitConfig struct {
	// Wait is the pause before retrying the same page after a 429
	Wait time.Duration `yaml:"wait" json:"wait"`
	// MaxWaits caps consecutive pauses on one page, 0 means unlimited
	MaxWaits int `yaml:"max_waits" json:"max_waits"`
	// RequestsPerWindow enables client-side pacing when positive
	RequestsPerWindow int           `yaml:"requests_per_window" json:"requests_per_window"`
	Window            time.Duration `yaml:"window" json:"window"`
}

// RetryConfig holds retry settings for transient network failures
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier  float64       `yaml:"multiplier" json:"multiplier"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	File      string `yaml:"file" json:"file"`
	Separator string `yaml:"separator" json:"separator"`
}

// NotificationConfig holds notification preferences
type NotificationConfig struct {
	Enabled     bool `yaml:"enabled" json:"enabled"`
	OnComplete  bool `yaml:"on_complete" json:"on_complete"`
	OnError     bool `yaml:"on_error" json:"on_error"`
	OnRateLimit bool `yaml:"on_rate_limit" json:"on_rate_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

const (
	// BearerTokenEnv is the environment variable the token has always been read from
	BearerTokenEnv = "TWITTER_FOLLOWERS_BEARER"

	envPrefix = "TWFOLLOWERS_"
)

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Twitter: TwitterConfig{
			BaseURL:  "https://api.twitter.com/1.1",
			PageSize: 200,
			Timeout:  30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Wait:              time.Minute,
			MaxWaits:          0,
			RequestsPerWindow: 0,
			Window:            15 * time.Minute,
		},
		Retry: RetryConfig{
			Enabled:     true,
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    30 * time.Second,
			Multiplier:  2.0,
		},
		Output: OutputConfig{
			File:      "output.txt",
			Separator: "|",
		},
		Notifications: NotificationConfig{
			Enabled:     false,
			OnComplete:  true,
			OnError:     true,
			OnRateLimit: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	var errs []error

	if token := os.Getenv(BearerTokenEnv); token != "" {
		c.Twitter.BearerToken = token
	}
	if token := os.Getenv(envPrefix + "BEARER_TOKEN"); token != "" {
		c.Twitter.BearerToken = token
	}
	if baseURL := os.Getenv(envPrefix + "BASE_URL"); baseURL != "" {
		c.Twitter.BaseURL = baseURL
	}
	if pageSize := os.Getenv(envPrefix + "PAGE_SIZE"); pageSize != "" {
		val, err := strconv.Atoi(pageSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sPAGE_SIZE: %w", envPrefix, err))
		} else {
			c.Twitter.PageSize = val
		}
	}

	if wait := os.Getenv(envPrefix + "RATE_LIMIT_WAIT"); wait != "" {
		d, err := time.ParseDuration(wait)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_LIMIT_WAIT: %w", envPrefix, err))
		} else {
			c.RateLimit.Wait = d
		}
	}
	if maxWaits := os.Getenv(envPrefix + "MAX_RATE_LIMIT_WAITS"); maxWaits != "" {
		val, err := strconv.Atoi(maxWaits)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMAX_RATE_LIMIT_WAITS: %w", envPrefix, err))
		} else {
			c.RateLimit.MaxWaits = val
		}
	}

	if attempts := os.Getenv(envPrefix + "MAX_RETRIES"); attempts != "" {
		val, err := strconv.Atoi(attempts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMAX_RETRIES: %w", envPrefix, err))
		} else {
			c.Retry.MaxAttempts = val
		}
	}

	if file := os.Getenv(envPrefix + "OUTPUT_FILE"); file != "" {
		c.Output.File = file
	}
	if sep := os.Getenv(envPrefix + "SEPARATOR"); sep != "" {
		c.Output.Separator = sep
	}

	if notifEnabled := os.Getenv(envPrefix + "NOTIFICATIONS_ENABLED"); notifEnabled != "" {
		c.Notifications.Enabled = strings.ToLower(notifEnabled) == "true"
	}

	if logLevel := os.Getenv(envPrefix + "LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv(envPrefix + "LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return errors.Join(errs...)
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".twfollowers.yaml",
		".twfollowers.yml",
		filepath.Join(home, ".config", "twfollowers", "config.yaml"),
		filepath.Join(home, ".config", "twfollowers", "config.yml"),
		filepath.Join(home, ".twfollowers.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
// The bearer token is not checked here, it may still come from a credential store.
func (c *Config) Validate() error {
	var errs []error

	if c.Twitter.BaseURL == "" {
		errs = append(errs, errors.New("twitter base URL is required"))
	}
	if c.Twitter.PageSize < 1 || c.Twitter.PageSize > 200 {
		errs = append(errs, errors.New("page size must be between 1 and 200"))
	}
	if c.Twitter.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.RateLimit.Wait < 0 {
		errs = append(errs, errors.New("rate limit wait cannot be negative"))
	}
	if c.RateLimit.MaxWaits < 0 {
		errs = append(errs, errors.New("max rate limit waits cannot be negative"))
	}
	if c.RateLimit.RequestsPerWindow < 0 {
		errs = append(errs, errors.New("requests per window cannot be negative"))
	}
	if c.RateLimit.RequestsPerWindow > 0 && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive when pacing is enabled"))
	}

	if c.Retry.MaxAttempts < 0 || c.Retry.MaxAttempts > 10 {
		errs = append(errs, errors.New("max retry attempts must be between 0 and 10"))
	}

	if c.Output.File == "" {
		errs = append(errs, errors.New("output file is required"))
	}
	if c.Output.Separator == "" {
		errs = append(errs, errors.New("output separator is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	return errors.Join(errs...)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges explicitly set command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["bearer-token"].(string); ok && token != "" {
		c.Twitter.BearerToken = token
	}
	if pageSize, ok := flags["page-size"].(int); ok && pageSize > 0 {
		c.Twitter.PageSize = pageSize
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout > 0 {
		c.Twitter.Timeout = timeout
	}
	if wait, ok := flags["rate-limit-wait"].(time.Duration); ok {
		c.RateLimit.Wait = wait
	}
	if maxWaits, ok := flags["max-rate-limit-waits"].(int); ok {
		c.RateLimit.MaxWaits = maxWaits
	}
	if maxRetries, ok := flags["max-retries"].(int); ok {
		c.Retry.MaxAttempts = maxRetries
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Output.File = output
	}
	if sep, ok := flags["separator"].(string); ok && sep != "" {
		c.Output.Separator = sep
	}
	if enabled, ok := flags["notifications"].(bool); ok {
		c.Notifications.Enabled = enabled
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: command line flags > environment variables > .env file > config file > defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".twfollowers.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// MaskToken masks all but the first 4 and last 4 characters of a secret
func MaskToken(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
