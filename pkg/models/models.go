package models

import (
	"sort"
	"strconv"
)

// Follower is one account following the target user
type Follower struct {
	Name          string `json:"name"`
	Username      string `json:"username"`
	Location      string `json:"location"`
	FollowerCount int    `json:"follower_count"`
}

// Row returns the output columns for the follower
func (f Follower) Row() []string {
	return []string{f.Name, f.Username, f.Location, strconv.Itoa(f.FollowerCount)}
}

// HeaderRow returns the column titles that always open the output
func HeaderRow() []string {
	return []string{"Name", "Username", "Location", "Followers"}
}

// FollowerList is an ordered collection of followers
type FollowerList []Follower

// SortByFollowerCount orders the list by follower count, highest first.
// Followers with equal counts keep their relative order.
func (l FollowerList) SortByFollowerCount() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].FollowerCount > l[j].FollowerCount
	})
}

// Sorted returns a sorted copy, leaving l untouched
func (l FollowerList) Sorted() FollowerList {
	out := make(FollowerList, len(l))
	copy(out, l)
	out.SortByFollowerCount()
	return out
}

// Rows returns the header row followed by one row per follower
func (l FollowerList) Rows() [][]string {
	rows := make([][]string, 0, len(l)+1)
	rows = append(rows, HeaderRow())
	for _, f := range l {
		rows = append(rows, f.Row())
	}
	return rows
}
