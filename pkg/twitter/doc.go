// Package twitter provides a small client for the Twitter REST API v1.1
// followers listing endpoint.
//
// Every request carries the bearer token. Non-200 statuses are returned as
// typed errors from pkg/errors: 401 and 403 are auth errors, 429 is a
// rate_limit error carrying the reset time when the API sends one, and
// anything else is an upstream error. Transport failures are network errors
// and are retried with exponential backoff according to the retry settings.
//
//	client := twitter.NewClient(&cfg.Twitter, &cfg.Retry, log)
//	page, err := client.FetchFollowersPage(ctx, "alice", twitter.InitialCursor)
//	if err != nil {
//		return err
//	}
//	if page == nil {
//		// 200 with nothing usable, treat as the end of the list
//	}
package twitter
