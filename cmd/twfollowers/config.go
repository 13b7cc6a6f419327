package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"twfollowers/pkg/config"
	"twfollowers/pkg/ui"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage twfollowers configuration files.

Configuration is loaded from, highest priority first:
  - Command line flags
  - Environment variables (TWFOLLOWERS_*, TWITTER_FOLLOWERS_BEARER)
  - .env in the current directory or ~/.twfollowers.env
  - Configuration file
  - Default values`,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is written to '.twfollowers.yaml' in the current directory
unless a different path is given with --config.`,
	RunE: runConfigInit,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging every source.
The bearer token is masked.`,
	RunE: runConfigShow,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)

	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")
}

const exampleConfig = `# twfollowers configuration
#
# Every option can also be set with an environment variable prefixed with
# TWFOLLOWERS_, for example TWFOLLOWERS_RATE_LIMIT_WAIT=90s.

twitter:
  # App-only bearer token. Prefer 'twfollowers auth login' or the
  # TWITTER_FOLLOWERS_BEARER environment variable over storing it here.
  bearer_token: ""
  base_url: "https://api.twitter.com/1.1"
  # Followers per page, 1-200
  page_size: 200
  timeout: 30s

rate_limit:
  # Pause after an HTTP 429 before asking for the same page again
  wait: 1m
  # Give up after this many consecutive pauses, 0 waits forever
  max_waits: 0
  # Optional client-side pacing, 0 disables it
  requests_per_window: 0
  window: 15m

retry:
  # Retries apply to network failures only
  enabled: true
  max_attempts: 3
  base_delay: 1s
  max_delay: 30s
  multiplier: 2.0

output:
  file: "output.txt"
  separator: "|"

notifications:
  enabled: false
  on_complete: true
  on_error: true
  on_rate_limit: true

logging:
  # debug, info, warn, error, disabled
  level: "info"
  # Also write JSON logs to this file
  file: ""
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = ".twfollowers.yaml"
	}

	if _, err := os.Stat(configPath); err == nil && !forceInit {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0600); err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "1. Store a token with 'twfollowers auth login'")
	fmt.Fprintln(out, "2. Run 'twfollowers config validate'")
	fmt.Fprintln(out, "3. Export followers with 'twfollowers fetch <username>'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	display := *cfg
	display.Twitter.BearerToken = config.MaskToken(display.Twitter.BearerToken)

	data, err := yaml.Marshal(&display)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	source := configFile
	if source == "" {
		source = config.FindConfigFile()
	}
	if source == "" {
		source = "(none, defaults and environment only)"
	}
	fmt.Fprintf(out, "# config file: %s\n", source)
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.DefaultConfig()
	if path != "" {
		ui.PrintInfo("Validating", path)
		if err := cfg.LoadFromFile(path); err != nil {
			return err
		}
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return err
	}

	var problems []error
	if err := cfg.Validate(); err != nil {
		problems = append(problems, err)
	}
	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Errorf("cannot create log directory: %w", err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return fmt.Errorf("configuration is invalid:\n%w", err)
	}

	if cfg.Twitter.BearerToken == "" {
		ui.PrintWarning("No bearer token configured, one must come from --bearer-token or a stored account")
	}

	ui.PrintSuccess("Configuration is valid")
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Output file: %s\n", cfg.Output.File)
	fmt.Fprintf(out, "  Rate limit wait: %s\n", cfg.RateLimit.Wait)
	fmt.Fprintf(out, "  Max rate limit waits: %d\n", cfg.RateLimit.MaxWaits)
	fmt.Fprintf(out, "  Max retries: %d\n", cfg.Retry.MaxAttempts)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.Logging.Level)
	return nil
}
