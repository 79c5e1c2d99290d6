package db

import "time"

// Giveaway is one qualified giveaway post and everything done about it.
// TweetID is unique: the pipeline decides once per post.
type Giveaway struct {
	ID                int64     `json:"id"`
	TweetID           string    `json:"tweet_id"`
	AuthorID          string    `json:"author_id"`
	AuthorUsername    string    `json:"author_username"`
	TweetText         string    `json:"tweet_text"`
	TokenSymbol       string    `json:"token_symbol"`
	TokenPriceUSD     *float64  `json:"token_price_usd"`
	EstimatedValueUSD *float64  `json:"estimated_value_usd"`
	CreatedAt         time.Time `json:"created_at"`

	// Participation tracking
	Participated bool `json:"participated"`
	Followed     bool `json:"followed"`
	Retweeted    bool `json:"retweeted"`
	Liked        bool `json:"liked"`
	Commented    bool `json:"commented"`

	// Winner tracking
	Won             bool `json:"won"`
	WinnerAnnounced bool `json:"winner_announced"`
}

// Account is one participating bot account.
type Account struct {
	ID                  int64     `json:"id"`
	AccountNumber       int       `json:"account_number"`
	Username            string    `json:"username"`
	UserID              string    `json:"user_id"`
	IsActive            bool      `json:"is_active"`
	LastUsed            time.Time `json:"last_used"`
	TotalParticipations int       `json:"total_participations"`
	TotalWins           int       `json:"total_wins"`
	CreatedAt           time.Time `json:"created_at"`
}

// WinnerNotification records a detected "you won" mention or DM.
type WinnerNotification struct {
	ID               int64     `json:"id"`
	GiveawayID       int64     `json:"giveaway_id"`
	AccountNumber    int       `json:"account_number"`
	NotificationType string    `json:"notification_type"` // "dm" or "mention"
	NotificationText string    `json:"notification_text"`
	ReceivedAt       time.Time `json:"received_at"`
	Processed        bool      `json:"processed"`
}
