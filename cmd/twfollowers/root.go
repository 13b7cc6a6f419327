package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"twfollowers/pkg/ui"
)

var (
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile    string
	logLevel      string
	noColor       bool
	notifications bool
	quiet         bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "twfollowers [username]",
	Short: "Export the complete follower list of a Twitter user",
	Long: `twfollowers walks the followers/list endpoint of the Twitter API page by page
and writes every follower to a delimited text file, sorted by follower count.

Features:
  - Cursor pagination over the whole follower list
  - Waits out HTTP 429 rate limits and retries the same page
  - Retries transient network failures with exponential backoff
  - Bearer tokens from flags, environment, config file or secure storage
  - Atomic output writes, a failed run never touches the previous file
  - Optional desktop notifications and a full-screen dashboard`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			ui.SetNoColor(true)
		}
		if quiet {
			ui.SetQuiet(true)
		}
		if verbose && !cmd.Flags().Changed("log-level") {
			logLevel = "debug"
		}
	},
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && isKnownCommand(cmd, args[0]) {
			return cmd.Help()
		}
		// A bare invocation still goes through fetch so a missing user is reported
		return runFetch(cmd, args)
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("Error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.twfollowers.yaml or ~/.config/twfollowers/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notifications", false, "enable desktop notifications")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.SetVersionTemplate(`twfollowers {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// isKnownCommand reports whether arg names a subcommand of parent
func isKnownCommand(parent *cobra.Command, arg string) bool {
	for _, sub := range parent.Commands() {
		if sub.Name() == arg || sub.HasAlias(arg) {
			return true
		}
	}
	return false
}
