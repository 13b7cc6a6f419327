package twitter

import "twfollowers/pkg/models"

// User is the subset of a Twitter user object the fetcher consumes
type User struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	// Location is null for some accounts
	Location       *string `json:"location"`
	FollowersCount int     `json:"followers_count"`
}

// FollowersPage is one page of the followers/list response
type FollowersPage struct {
	Users      []User `json:"users"`
	NextCursor int64  `json:"next_cursor"`
}

// ToFollower converts the API user into a follower record
func (u User) ToFollower() models.Follower {
	var location string
	if u.Location != nil {
		location = *u.Location
	}
	return models.Follower{
		Name:          u.Name,
		Username:      u.ScreenName,
		Location:      location,
		FollowerCount: u.FollowersCount,
	}
}

// Followers converts every user on the page
func (p *FollowersPage) Followers() models.FollowerList {
	list := make(models.FollowerList, 0, len(p.Users))
	for _, u := range p.Users {
		list = append(list, u.ToFollower())
	}
	return list
}
