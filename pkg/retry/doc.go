// Package retry provides backoff strategies and a context-aware retry loop
// for transient failures when talking to the Twitter API.
//
// Only network errors are retried by default. HTTP statuses are classified
// by the client and are terminal, and 429 responses are handled by the
// fetcher's cooldown rather than here.
//
//	cfg := retry.FromConfig(ctx, &appConfig.Retry, log)
//	page, err := retry.DoWithResult(func() (*twitter.FollowersPage, error) {
//		return client.fetchOnce(ctx, req)
//	}, cfg)
package retry
