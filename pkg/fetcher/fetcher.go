package fetcher

import (
	"context"
	"fmt"
	"time"

	"twfollowers/pkg/config"
	errs "twfollowers/pkg/errors"
	"twfollowers/pkg/logger"
	"twfollowers/pkg/models"
	"twfollowers/pkg/ratelimit"
	"twfollowers/pkg/twitter"
)

// State is the state of a fetch run
type State int

const (
	StateFetching State = iota
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "FETCHING"
	case StateExhausted:
		return "EXHAUSTED"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats summarizes a fetch run
type Stats struct {
	Pages          int
	RateLimitWaits int
	Followers      int
	State          State
	Duration       time.Duration
}

// Fetcher walks the followers listing of one user page by page
type Fetcher struct {
	client   FollowersClient
	cooldown *ratelimit.Cooldown
	limiter  ratelimit.Limiter
	observer Observer
	logger   logger.Logger
	stats    Stats
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithObserver reports progress to o
func WithObserver(o Observer) Option {
	return func(f *Fetcher) {
		if o != nil {
			f.observer = o
		}
	}
}

// WithLimiter paces requests through l
func WithLimiter(l ratelimit.Limiter) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.limiter = l
		}
	}
}

// New creates a Fetcher.
// The 429 cooldown and optional request pacing come from cfg.
func New(client FollowersClient, cfg *config.RateLimitConfig, log logger.Logger, opts ...Option) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}

	f := &Fetcher{
		client:   client,
		cooldown: ratelimit.NewCooldown(cfg.Wait, cfg.MaxWaits),
		limiter:  ratelimit.NewLimiter(cfg.RequestsPerWindow, cfg.Window),
		observer: nopObserver{},
		logger:   log.WithField("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll collects every follower of username in API order.
// On failure the followers gathered so far are discarded and a nil list is returned.
func (f *Fetcher) FetchAll(ctx context.Context, username string) (models.FollowerList, error) {
	if username == "" {
		f.stats = Stats{State: StateFailed}
		return nil, errs.ErrNoUserSpecified
	}

	start := time.Now()
	f.stats = Stats{State: StateFetching}
	f.cooldown.Reset()
	defer func() {
		f.stats.Duration = time.Since(start)
	}()

	log := f.logger.WithField("username", username)
	log.Info("Starting follower fetch")

	cursor := twitter.InitialCursor
	var results models.FollowerList

	for f.stats.State == StateFetching {
		if err := f.limiter.Wait(ctx); err != nil {
			return f.fail(log, cursor, err)
		}

		page, err := f.client.FetchFollowersPage(ctx, username, cursor)
		if err != nil {
			if errs.Is(err, errs.ErrorTypeRateLimit) {
				if err := f.pause(ctx, log, username, cursor, err); err != nil {
					return f.fail(log, cursor, err)
				}
				continue
			}
			return f.fail(log, cursor, fmt.Errorf("failed to fetch followers page: %w", err))
		}
		f.cooldown.Reset()

		if page == nil {
			log.WarnWithFields("Empty response, treating as end of followers", map[string]interface{}{
				"cursor": cursor,
			})
			f.stats.State = StateExhausted
			break
		}

		results = append(results, page.Followers()...)
		f.stats.Pages++
		f.stats.Followers = len(results)

		logger.LogPage(log, username, f.stats.Pages, cursor, len(page.Users), len(results))
		f.observer.PageFetched(f.stats.Pages, len(page.Users), len(results))

		cursor = page.NextCursor
		if cursor == 0 {
			f.stats.State = StateExhausted
		}
	}

	log.InfoWithFields("Follower fetch completed", map[string]interface{}{
		"pages":            f.stats.Pages,
		"followers":        len(results),
		"rate_limit_waits": f.stats.RateLimitWaits,
	})
	return results, nil
}

// pause waits out a 429 before the same cursor is requested again
func (f *Fetcher) pause(ctx context.Context, log logger.Logger, username string, cursor int64, cause error) error {
	if f.cooldown.Exceeded() {
		return errs.Wrap(errs.ErrorTypeRateLimit, cause,
			fmt.Sprintf("still rate limited after %d consecutive waits", f.cooldown.Waits()))
	}

	attempt := f.cooldown.Waits() + 1
	f.stats.RateLimitWaits++

	logger.LogRateLimit(log, username, cursor, f.cooldown.Duration, attempt)
	f.observer.RateLimited(f.cooldown.Duration, attempt)

	if err := f.cooldown.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait interrupted: %w", err)
	}
	return nil
}

func (f *Fetcher) fail(log logger.Logger, cursor int64, err error) (models.FollowerList, error) {
	f.stats.State = StateFailed
	f.stats.Followers = 0
	log.WithError(err).WithField("cursor", cursor).Error("Follower fetch failed")
	return nil, err
}

// Stats returns the statistics of the last run
func (f *Fetcher) Stats() Stats {
	return f.stats
}

// Run fetches all followers of username and exports them to sink.
// Nothing reaches the sink unless the whole fetch succeeded.
func (f *Fetcher) Run(ctx context.Context, username string, sink Sink) (Stats, error) {
	list, err := f.FetchAll(ctx, username)
	if err != nil {
		return f.Stats(), err
	}

	if err := Export(list, sink); err != nil {
		f.logger.WithError(err).WithField("username", username).Error("Failed to export followers")
		return f.Stats(), err
	}
	return f.Stats(), nil
}
