// Package ratelimit keeps twfollowers inside the Twitter API rate limits.
//
// Cooldown is the reactive side: after an HTTP 429 the fetcher pauses for a
// fixed duration (one minute by default) and then asks for the same page
// again. TokenBucket is the optional proactive side, pacing requests to a
// fixed number per window so that 429s are rarer in the first place.
//
//	cooldown := ratelimit.NewCooldown(time.Minute, 0)
//	if err := cooldown.Wait(ctx); err != nil {
//		return err // cancelled
//	}
//
//	limiter := ratelimit.NewLimiter(15, 15*time.Minute)
//	if err := limiter.Wait(ctx); err != nil {
//		return err
//	}
package ratelimit
