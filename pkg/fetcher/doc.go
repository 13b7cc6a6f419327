// Package fetcher collects the complete follower list of a Twitter user.
//
// A run is a small state machine. It starts in FETCHING with cursor -1 and
// requests one page at a time. A next cursor of 0, or a 200 response with no
// usable body, moves it to EXHAUSTED. Any error that is not a rate limit
// moves it to FAILED and the followers collected so far are dropped.
//
// HTTP 429 is not a failure: the fetcher waits out a fixed cooldown and asks
// for the same cursor again. The number of consecutive waits can be capped
// with rate_limit.max_waits, and the wait ends early when the context is
// cancelled.
//
//	f := fetcher.New(client, &cfg.RateLimit, log)
//	stats, err := f.Run(ctx, "alice", storageManager)
package fetcher
