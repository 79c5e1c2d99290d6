package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/config"
	"github.com/giveaway-hunter/pkg/db"
)

// Manager performs social actions on behalf of the configured accounts, each
// through its own user-context token against the API v2. Every action
// returns a bool rather than an error: a failed follow is logged and the
// participation run moves on.
type Manager struct {
	store  *db.Store
	client *http.Client
	creds  map[int]config.AccountCredentials
}

func NewManager(cfg *config.Config, store *db.Store) *Manager {
	m := &Manager{
		store:  store,
		client: &http.Client{Timeout: 30 * time.Second},
		creds:  make(map[int]config.AccountCredentials),
	}

	for _, c := range cfg.Accounts {
		m.creds[c.Number] = c
		if err := store.UpsertAccount(c.Number, c.UserID, ""); err != nil {
			log.Error().Err(err).Int("account", c.Number).Msg("account registration failed")
			continue
		}
		log.Info().Int("account", c.Number).Msg("account loaded")
	}
	log.Info().Int("count", len(m.creds)).Msg("accounts ready")

	return m
}

// ActiveAccounts lists usable account numbers, capped at limit.
func (m *Manager) ActiveAccounts(limit int) []int {
	accounts, err := m.store.GetActiveAccounts(limit)
	if err != nil {
		log.Error().Err(err).Msg("active account query failed")
		return nil
	}

	var numbers []int
	for _, a := range accounts {
		if _, ok := m.creds[a.AccountNumber]; ok {
			numbers = append(numbers, a.AccountNumber)
		}
	}
	return numbers
}

func (m *Manager) Follow(ctx context.Context, accountNum int, targetUserID string) bool {
	creds, ok := m.creds[accountNum]
	if !ok {
		return false
	}
	u := fmt.Sprintf("https://api.twitter.com/2/users/%s/following", creds.UserID)
	ok = m.post(ctx, creds, u, map[string]string{"target_user_id": targetUserID})
	if ok {
		log.Info().Int("account", accountNum).Str("target", targetUserID).Msg("followed")
	}
	return ok
}

func (m *Manager) Retweet(ctx context.Context, accountNum int, tweetID string) bool {
	creds, ok := m.creds[accountNum]
	if !ok {
		return false
	}
	u := fmt.Sprintf("https://api.twitter.com/2/users/%s/retweets", creds.UserID)
	ok = m.post(ctx, creds, u, map[string]string{"tweet_id": tweetID})
	if ok {
		log.Info().Int("account", accountNum).Str("tweet", tweetID).Msg("retweeted")
	}
	return ok
}

func (m *Manager) Like(ctx context.Context, accountNum int, tweetID string) bool {
	creds, ok := m.creds[accountNum]
	if !ok {
		return false
	}
	u := fmt.Sprintf("https://api.twitter.com/2/users/%s/likes", creds.UserID)
	ok = m.post(ctx, creds, u, map[string]string{"tweet_id": tweetID})
	if ok {
		log.Info().Int("account", accountNum).Str("tweet", tweetID).Msg("liked")
	}
	return ok
}

func (m *Manager) Reply(ctx context.Context, accountNum int, tweetID, text string) bool {
	creds, ok := m.creds[accountNum]
	if !ok {
		return false
	}
	body := map[string]interface{}{
		"text":  text,
		"reply": map[string]string{"in_reply_to_tweet_id": tweetID},
	}
	ok = m.post(ctx, creds, "https://api.twitter.com/2/tweets", body)
	if ok {
		log.Info().Int("account", accountNum).Str("tweet", tweetID).Msg("replied")
	}
	return ok
}

// RecordParticipation bumps the account's participation counter.
func (m *Manager) RecordParticipation(accountNum int) {
	if err := m.store.BumpAccountStats(accountNum, true, false); err != nil {
		log.Error().Err(err).Int("account", accountNum).Msg("stat update failed")
	}
}

// RecordWin bumps the account's win counter.
func (m *Manager) RecordWin(accountNum int) {
	if err := m.store.BumpAccountStats(accountNum, false, true); err != nil {
		log.Error().Err(err).Int("account", accountNum).Msg("stat update failed")
	}
}

// UserID returns the platform user id of an account, or "" when unknown.
func (m *Manager) UserID(accountNum int) string {
	return m.creds[accountNum].UserID
}

func (m *Manager) post(ctx context.Context, creds config.AccountCredentials, u string, body interface{}) bool {
	payload, err := json.Marshal(body)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, "POST", u, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		log.Error().Err(err).Int("account", creds.Number).Msg("action request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("account", creds.Number).Int("status", resp.StatusCode).Str("url", u).Msg("action rejected")
		return false
	}

	time.Sleep(2 * time.Second) // rate limiting between actions
	return true
}
