package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/config"
)

// Tweet is the candidate-post record the pipeline consumes.
type Tweet struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	AuthorID        string    `json:"author_id"`
	AuthorUsername  string    `json:"author_username"`
	AuthorFollowers int       `json:"author_followers"`
	CreatedAt       time.Time `json:"created_at"`
	RetweetCount    int       `json:"retweet_count"`
	LikeCount       int       `json:"like_count"`
}

// Client searches tweets via the API v2 when a bearer token is configured,
// falling back to the cookie-authenticated scraper backend otherwise.
type Client struct {
	cfg     *config.Config
	client  *http.Client
	scraper *scraperBackend
}

func NewClient(cfg *config.Config) *Client {
	c := &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	if cfg.TwitterAuthToken != "" && cfg.TwitterCSRFToken != "" {
		c.scraper = newScraperBackend(cfg.TwitterAuthToken, cfg.TwitterCSRFToken)
	}
	return c
}

// Search returns recent tweets matching a query, newest first, with author
// follower counts populated.
func (c *Client) Search(ctx context.Context, query string, since time.Time) ([]Tweet, error) {
	if c.cfg.TwitterBearerToken != "" {
		tweets, err := c.searchViaAPI(ctx, query, since)
		if err == nil && len(tweets) > 0 {
			return tweets, nil
		}
		log.Debug().Err(err).Str("query", query).Msg("API search failed, trying scraper")
	}

	if c.scraper != nil {
		return c.scraper.search(ctx, query)
	}

	return nil, fmt.Errorf("no search backend available for query %q", query)
}

func (c *Client) searchViaAPI(ctx context.Context, query string, since time.Time) ([]Tweet, error) {
	u := fmt.Sprintf(
		"https://api.twitter.com/2/tweets/search/recent?query=%s&max_results=100&start_time=%s"+
			"&tweet.fields=created_at,author_id,public_metrics&user.fields=username,public_metrics&expansions=author_id",
		url.QueryEscape(query), since.UTC().Format(time.RFC3339))

	var data struct {
		Data     []apiTweet `json:"data"`
		Includes struct {
			Users []apiUser `json:"users"`
		} `json:"includes"`
	}
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}

	users := make(map[string]apiUser, len(data.Includes.Users))
	for _, user := range data.Includes.Users {
		users[user.ID] = user
	}

	var tweets []Tweet
	for _, t := range data.Data {
		author := users[t.AuthorID]
		ts, _ := time.Parse(time.RFC3339, t.CreatedAt)
		tweets = append(tweets, Tweet{
			ID:              t.ID,
			Text:            t.Text,
			AuthorID:        t.AuthorID,
			AuthorUsername:  author.Username,
			AuthorFollowers: author.PublicMetrics.FollowersCount,
			CreatedAt:       ts,
			RetweetCount:    t.PublicMetrics.RetweetCount,
			LikeCount:       t.PublicMetrics.LikeCount,
		})
	}
	return tweets, nil
}

// Mentions returns recent mentions of a user, for the winner scan.
func (c *Client) Mentions(ctx context.Context, userID string, since time.Time) ([]Tweet, error) {
	if c.cfg.TwitterBearerToken == "" {
		return nil, fmt.Errorf("mentions require TWITTER_BEARER_TOKEN")
	}

	u := fmt.Sprintf(
		"https://api.twitter.com/2/users/%s/mentions?max_results=100&start_time=%s&tweet.fields=created_at,author_id,text",
		userID, since.UTC().Format(time.RFC3339))

	var data struct {
		Data []apiTweet `json:"data"`
	}
	if err := c.getJSON(ctx, u, &data); err != nil {
		return nil, err
	}

	var tweets []Tweet
	for _, t := range data.Data {
		ts, _ := time.Parse(time.RFC3339, t.CreatedAt)
		tweets = append(tweets, Tweet{ID: t.ID, Text: t.Text, AuthorID: t.AuthorID, CreatedAt: ts})
	}
	return tweets, nil
}

type apiTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		RetweetCount int `json:"retweet_count"`
		LikeCount    int `json:"like_count"`
	} `json:"public_metrics"`
}

type apiUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

func (c *Client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.TwitterBearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 429 {
		return fmt.Errorf("rate limited")
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
