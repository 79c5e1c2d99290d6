package twitter

import (
	"context"

	twitterscraper "github.com/imperatrona/twitter-scraper"
	"github.com/rs/zerolog/log"
)

// scraperBackend searches through the private API with cookie auth. Search
// results carry no follower counts, so author profiles are fetched once each
// and cached for the process lifetime.
type scraperBackend struct {
	scraper   *twitterscraper.Scraper
	followers map[string]int // username -> follower count
}

func newScraperBackend(authToken, csrfToken string) *scraperBackend {
	s := twitterscraper.New()
	s.SetAuthToken(twitterscraper.AuthToken{Token: authToken, CSRFToken: csrfToken})
	if !s.IsLoggedIn() {
		log.Warn().Msg("twitter cookie auth rejected, scraper backend disabled")
		return nil
	}
	s.SetSearchMode(twitterscraper.SearchLatest)
	return &scraperBackend{
		scraper:   s,
		followers: make(map[string]int),
	}
}

func (b *scraperBackend) search(ctx context.Context, query string) ([]Tweet, error) {
	var tweets []Tweet
	for result := range b.scraper.SearchTweets(ctx, query, 100) {
		if result.Error != nil {
			return tweets, result.Error
		}
		tweets = append(tweets, Tweet{
			ID:              result.ID,
			Text:            result.Text,
			AuthorID:        result.UserID,
			AuthorUsername:  result.Username,
			AuthorFollowers: b.followerCount(result.Username),
			CreatedAt:       result.TimeParsed,
			RetweetCount:    result.Retweets,
			LikeCount:       result.Likes,
		})
	}
	return tweets, nil
}

func (b *scraperBackend) followerCount(username string) int {
	if username == "" {
		return 0
	}
	if count, ok := b.followers[username]; ok {
		return count
	}

	profile, err := b.scraper.GetProfile(username)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("profile fetch failed")
		return 0
	}
	b.followers[username] = profile.FollowersCount
	return profile.FollowersCount
}
