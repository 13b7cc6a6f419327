package fetcher

import (
	"context"
	"time"

	"twfollowers/pkg/models"
	"twfollowers/pkg/twitter"
)

// FollowersClient defines the Twitter API operations the fetcher needs
type FollowersClient interface {
	FetchFollowersPage(ctx context.Context, screenName string, cursor int64) (*twitter.FollowersPage, error)
}

// Sink receives the sorted follower list once the fetch has completed
type Sink interface {
	SaveFollowers(list models.FollowerList) error
}

// Observer is told about fetch progress, typically a terminal display
type Observer interface {
	PageFetched(page, users, total int)
	RateLimited(wait time.Duration, attempt int)
}

type nopObserver struct{}

func (nopObserver) PageFetched(page, users, total int)          {}
func (nopObserver) RateLimited(wait time.Duration, attempt int) {}

type multiObserver []Observer

// MultiObserver fans progress events out to every observer
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

func (m multiObserver) PageFetched(page, users, total int) {
	for _, o := range m {
		o.PageFetched(page, users, total)
	}
}

func (m multiObserver) RateLimited(wait time.Duration, attempt int) {
	for _, o := range m {
		o.RateLimited(wait, attempt)
	}
}
