package domain

import (
	"fmt"
	"time"
)

// SocialStats are aggregate social-media numbers for a token.
type SocialStats struct {
	FilterTweets   int64
	Followers      int64
	Likes          int64
	Views          int64
	OfficialTweets int64
	SmartBuy       int64
	Summary        string // zh-CN analysis summary
}

// Tweet is one top tweet mentioning the token.
type Tweet struct {
	ID             string
	Text           string
	UserName       string
	UserScreenName string
	Verified       bool
	Followers      int64
	Likes          int64
	Retweets       int64
	Views          int64
	ImageURL       string
	CreatedAt      time.Time
}

// URL returns the tweet permalink, or "" when the tweet cannot be addressed.
func (t Tweet) URL() string {
	if t.ID == "" || t.UserScreenName == "" {
		return ""
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", t.UserScreenName, t.ID)
}

// SocialProfile is the social-stats provider result.
type SocialProfile struct {
	Stats  SocialStats
	Tweets []Tweet
}
