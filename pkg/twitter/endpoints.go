package twitter

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the Twitter REST API v1.1 root
	BaseURL = "https://api.twitter.com/1.1"

	// FollowersListEndpoint lists the followers of a user, one cursor page at a time
	FollowersListEndpoint = "/followers/list.json"

	// InitialCursor requests the first page
	InitialCursor int64 = -1

	// DefaultPageSize is the number of users requested per page
	DefaultPageSize = 200

	// MaxPageSize is the largest count the endpoint accepts
	MaxPageSize = 200

	maxScreenNameLength = 15
)

// FollowersListURL constructs the followers listing URL for one page
func FollowersListURL(base, screenName string, cursor int64, count int) string {
	if count <= 0 || count > MaxPageSize {
		count = DefaultPageSize
	}

	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	params.Set("cursor", strconv.FormatInt(cursor, 10))
	params.Set("screen_name", screenName)

	return strings.TrimRight(base, "/") + FollowersListEndpoint + "?" + params.Encode()
}

// ProfileURL returns the public profile URL for a screen name
func ProfileURL(screenName string) string {
	if screenName == "" {
		return ""
	}
	return "https://twitter.com/" + screenName
}

// IsValidScreenName checks the Twitter handle rules: 1 to 15 letters, digits or underscores
func IsValidScreenName(screenName string) bool {
	if screenName == "" || len(screenName) > maxScreenNameLength {
		return false
	}

	for _, char := range screenName {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '_') {
			return false
		}
	}
	return true
}

// SanitizeScreenName normalizes user input such as "@alice", "alice/" or a profile URL
func SanitizeScreenName(input string) string {
	name := strings.TrimSpace(input)

	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	for _, host := range []string{
		"www.twitter.com/", "twitter.com/", "mobile.twitter.com/",
		"www.x.com/", "x.com/", "mobile.x.com/",
	} {
		if strings.HasPrefix(name, host) {
			name = strings.TrimPrefix(name, host)
			if i := strings.IndexAny(name, "/?#"); i >= 0 {
				name = name[:i]
			}
			break
		}
	}

	name = strings.TrimPrefix(name, "@")
	return strings.TrimRight(name, "/ ")
}
