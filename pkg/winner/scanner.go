package winner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/accounts"
	"github.com/giveaway-hunter/pkg/db"
	"github.com/giveaway-hunter/pkg/twitter"
)

// mentionSource fetches recent mentions of a user.
type mentionSource interface {
	Mentions(ctx context.Context, userID string, since time.Time) ([]twitter.Tweet, error)
}

// accountRoster exposes the participating accounts and their win stats.
type accountRoster interface {
	ActiveAccounts(limit int) []int
	UserID(accountNum int) string
	RecordWin(accountNum int)
}

// Scanner polls each account's mentions for winner announcements and links
// them back to the giveaway that was entered.
type Scanner struct {
	store    *db.Store
	client   mentionSource
	accounts accountRoster
	window   time.Duration
}

func NewScanner(store *db.Store, client *twitter.Client, accounts *accounts.Manager) *Scanner {
	return &Scanner{
		store:    store,
		client:   client,
		accounts: accounts,
		window:   24 * time.Hour,
	}
}

// Check scans mentions of every active account once.
func (s *Scanner) Check(ctx context.Context) {
	log.Info().Msg("checking for winner notifications...")

	for _, accountNum := range s.accounts.ActiveAccounts(0) {
		if ctx.Err() != nil {
			return
		}
		if err := s.checkMentions(ctx, accountNum); err != nil {
			log.Error().Err(err).Int("account", accountNum).Msg("winner check failed")
		}
	}
}

func (s *Scanner) checkMentions(ctx context.Context, accountNum int) error {
	userID := s.accounts.UserID(accountNum)
	if userID == "" {
		return nil
	}

	mentions, err := s.client.Mentions(ctx, userID, time.Now().Add(-s.window))
	if err != nil {
		return err
	}

	for _, mention := range mentions {
		if !IsWinnerAnnouncement(mention.Text) {
			continue
		}

		// The mention window is re-fetched every cycle, so an announcement
		// already on record must not re-link a win.
		seen, err := s.store.HasWinnerNotification(accountNum, mention.Text)
		if err != nil {
			log.Error().Err(err).Int("account", accountNum).Msg("notification lookup failed")
			continue
		}
		if seen {
			continue
		}

		notif := db.WinnerNotification{
			AccountNumber:    accountNum,
			NotificationType: "mention",
			NotificationText: mention.Text,
		}

		// Link the win to the latest giveaway entered from this author
		if giveawayID, err := s.store.MarkLatestWonByAuthor(mention.AuthorID); err == nil {
			notif.GiveawayID = giveawayID
		}

		inserted, err := s.store.InsertWinnerNotification(notif)
		if err != nil {
			log.Error().Err(err).Int("account", accountNum).Msg("notification save failed")
			continue
		}
		if !inserted {
			continue
		}

		s.accounts.RecordWin(accountNum)
		log.Info().Int("account", accountNum).Str("tweet", mention.ID).Msg("🎉 winner notification detected")
	}

	return nil
}
