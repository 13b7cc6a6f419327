package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"twfollowers/pkg/auth"
	"twfollowers/pkg/config"
	errs "twfollowers/pkg/errors"
	"twfollowers/pkg/fetcher"
	"twfollowers/pkg/logger"
	"twfollowers/pkg/storage"
	"twfollowers/pkg/twitter"
	"twfollowers/pkg/ui"
	"twfollowers/pkg/ui/tui"
)

type fetchOptions struct {
	user          string
	output        string
	separator     string
	account       string
	bearerToken   string
	pageSize      int
	maxWaits      int
	maxRetries    int
	rateLimitWait time.Duration
	timeout       time.Duration
	useTUI        bool
}

var fetchOpts fetchOptions

// newCredentialManager is replaced in tests to keep the system keychain out of them
var newCredentialManager = auth.NewManager

var fetchCmd = &cobra.Command{
	Use:   "fetch [username]",
	Short: "Fetch every follower of a user and write them to a file",
	Long: `Fetch the complete follower list of a Twitter user.

Pages are requested one at a time with the cursor returned by the previous page.
When the API answers 429 the command waits (--rate-limit-wait, default 1m) and
asks for the same page again. Any other error aborts the run and leaves the
output file untouched.

The output has a header row followed by one row per follower:
  Name|Username|Location|Followers
sorted by follower count, highest first.

A bearer token is required. It is taken from, in order:
  - a stored account named with --account
  - --bearer-token
  - TWITTER_FOLLOWERS_BEARER or TWFOLLOWERS_BEARER_TOKEN (also from .env)
  - twitter.bearer_token in the config file
  - the first account stored with 'twfollowers auth login'`,
	Example: `  # Export followers to output.txt
  twfollowers fetch jack

  # Same, without the subcommand
  twfollowers --user jack

  # Custom output and a cap on rate limit pauses
  twfollowers fetch jack -o jack.txt --max-rate-limit-waits 30

  # Use a stored account and the dashboard
  twfollowers fetch jack --account work --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	addFetchFlags(fetchCmd.Flags())
	// The root command accepts the same flags so the subcommand can be omitted
	addFetchFlags(rootCmd.Flags())
}

func addFetchFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&fetchOpts.user, "user", "u", "", "screen name whose followers are fetched")
	fs.StringVarP(&fetchOpts.output, "output", "o", "", "output file (default output.txt)")
	fs.StringVar(&fetchOpts.separator, "separator", "", "field separator (default \"|\")")
	fs.StringVarP(&fetchOpts.account, "account", "a", "", "use a stored account")
	fs.StringVar(&fetchOpts.bearerToken, "bearer-token", "", "Twitter API bearer token")
	fs.IntVar(&fetchOpts.pageSize, "page-size", twitter.DefaultPageSize, "followers requested per page (1-200)")
	fs.IntVar(&fetchOpts.maxWaits, "max-rate-limit-waits", 0, "give up after this many consecutive rate limit pauses (0 = never)")
	fs.IntVar(&fetchOpts.maxRetries, "max-retries", 3, "attempts per request on network errors")
	fs.DurationVar(&fetchOpts.rateLimitWait, "rate-limit-wait", time.Minute, "pause after an HTTP 429 before retrying the same page")
	fs.DurationVar(&fetchOpts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	fs.BoolVar(&fetchOpts.useTUI, "tui", false, "show a full-screen dashboard while fetching")
}

// collectFlags returns only the flags set on the command line, keyed the way config expects
func collectFlags(fs *pflag.FlagSet) map[string]interface{} {
	flags := make(map[string]interface{})

	if fs.Changed("bearer-token") {
		flags["bearer-token"] = fetchOpts.bearerToken
	}
	if fs.Changed("page-size") {
		flags["page-size"] = fetchOpts.pageSize
	}
	if fs.Changed("timeout") {
		flags["timeout"] = fetchOpts.timeout
	}
	if fs.Changed("rate-limit-wait") {
		flags["rate-limit-wait"] = fetchOpts.rateLimitWait
	}
	if fs.Changed("max-rate-limit-waits") {
		flags["max-rate-limit-waits"] = fetchOpts.maxWaits
	}
	if fs.Changed("max-retries") {
		flags["max-retries"] = fetchOpts.maxRetries
	}
	if fs.Changed("output") {
		flags["output"] = fetchOpts.output
	}
	if fs.Changed("separator") {
		flags["separator"] = fetchOpts.separator
	}
	if fs.Changed("notifications") {
		flags["notifications"] = notifications
	}
	if fs.Changed("log-level") || verbose {
		flags["log-level"] = logLevel
	}

	return flags
}

// resolveUsername picks the target from --user or the positional argument
func resolveUsername(flagUser string, args []string) (string, error) {
	raw := flagUser
	if raw == "" && len(args) > 0 {
		raw = args[0]
	}

	username := twitter.SanitizeScreenName(raw)
	if username == "" {
		return "", errs.ErrNoUserSpecified
	}
	if !twitter.IsValidScreenName(username) {
		return "", errs.New(errs.ErrorTypeConfig, 0, fmt.Sprintf("invalid username %q", raw))
	}
	return username, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	username, err := resolveUsername(fetchOpts.user, args)
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fetchFollowers(ctx, username, collectFlags(cmd.Flags()))
}

func fetchFollowers(ctx context.Context, username string, flags map[string]interface{}) error {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, err.Error())
	}

	// Console logs would draw over the dashboard
	if fetchOpts.useTUI && cfg.Logging.File == "" {
		cfg.Logging.Level = "disabled"
	}
	if err := logger.Initialize(&cfg.Logging); err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, fmt.Sprintf("failed to initialize logger: %v", err))
	}
	log := logger.GetLogger().WithField("username", username)
	log.WithField("version", version).Debug("twfollowers starting")

	token, err := resolveBearerToken(cfg, log)
	if err != nil {
		return err
	}
	cfg.Twitter.BearerToken = token

	store, err := storage.NewManager(cfg.Output.File, cfg.Output.Separator)
	if err != nil {
		return errs.Wrap(errs.ErrorTypeConfig, err, err.Error())
	}

	client := twitter.NewClient(&cfg.Twitter, &cfg.Retry, log)
	notifier := ui.NewNotifier(cfg.Notifications)

	logger.LogComponentStart(log, "fetch", map[string]interface{}{
		"base_url":        cfg.Twitter.BaseURL,
		"page_size":       cfg.Twitter.PageSize,
		"rate_limit_wait": cfg.RateLimit.Wait.String(),
		"max_waits":       cfg.RateLimit.MaxWaits,
		"output":          store.Path(),
	})

	if fetchOpts.useTUI {
		return fetchWithDashboard(ctx, username, cfg, client, store, notifier, log)
	}

	ui.PrintBanner()
	ui.PrintInfo("Target", "@"+username+" ("+twitter.ProfileURL(username)+")")
	ui.PrintInfo("Output", store.Path())

	progress := ui.NewProgressDisplay(username, notifier)
	f := fetcher.New(client, &cfg.RateLimit, log, fetcher.WithObserver(progress))

	stats, err := f.Run(ctx, username, store)
	if err != nil {
		progress.Fail(err)
		return err
	}

	progress.Complete(stats.Followers, store.Path())
	log.WithFields(map[string]interface{}{
		"followers":        stats.Followers,
		"pages":            stats.Pages,
		"rate_limit_waits": stats.RateLimitWaits,
		"duration":         stats.Duration.String(),
	}).Info("Follower export completed")
	return nil
}

func resolveBearerToken(cfg *config.Config, log logger.Logger) (string, error) {
	if fetchOpts.account == "" && cfg.Twitter.BearerToken != "" {
		return cfg.Twitter.BearerToken, nil
	}

	manager, err := newCredentialManager()
	if err != nil {
		log.WithError(err).Warn("Credential storage unavailable")
		manager = nil
	}

	token, err := auth.ResolveToken(manager, fetchOpts.account, cfg.Twitter.BearerToken)
	if err != nil {
		return "", err
	}
	if fetchOpts.account != "" {
		log.WithField("account", fetchOpts.account).Info("Using stored credentials")
	}
	return token, nil
}

// rateLimitNotifier forwards cooldowns to desktop notifications
type rateLimitNotifier struct {
	notifier *ui.Notifier
	username string
}

func (r rateLimitNotifier) PageFetched(page, users, total int) {}

func (r rateLimitNotifier) RateLimited(wait time.Duration, attempt int) {
	r.notifier.RateLimited(r.username, wait)
}

func fetchWithDashboard(ctx context.Context, username string, cfg *config.Config, client fetcher.FollowersClient,
	store *storage.Manager, notifier *ui.Notifier, log logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dash := tui.NewTUI(username, cancel)
	f := fetcher.New(client, &cfg.RateLimit, log,
		fetcher.WithObserver(fetcher.MultiObserver(dash, rateLimitNotifier{notifier: notifier, username: username})))

	type outcome struct {
		stats fetcher.Stats
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		dash.Log("INFO", "Exporting to %s", store.Path())
		stats, err := f.Run(ctx, username, store)
		dash.Finish(stats.Followers, store.Path(), err)
		done <- outcome{stats: stats, err: err}
	}()

	dashErr := dash.Start()
	// Quitting the dashboard early abandons the fetch
	cancel()
	result := <-done

	if dashErr != nil {
		return fmt.Errorf("dashboard failed: %w", dashErr)
	}
	if result.err != nil {
		notifier.Failed(username, result.err)
		return result.err
	}

	notifier.Completed(username, result.stats.Followers, store.Path())
	ui.PrintSuccess(fmt.Sprintf("Exported %d followers of @%s to %s", result.stats.Followers, username, store.Path()))
	return nil
}
