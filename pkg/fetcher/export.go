package fetcher

import (
	"fmt"

	"twfollowers/pkg/models"
)

// Export sorts the followers by follower count, highest first, and hands them to sink
func Export(list models.FollowerList, sink Sink) error {
	if err := sink.SaveFollowers(list.Sorted()); err != nil {
		return fmt.Errorf("failed to save followers: %w", err)
	}
	return nil
}
