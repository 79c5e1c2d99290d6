package winner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/giveaway-hunter/pkg/db"
	"github.com/giveaway-hunter/pkg/twitter"
)

type fakeMentions struct {
	tweets []twitter.Tweet
}

func (f *fakeMentions) Mentions(ctx context.Context, userID string, since time.Time) ([]twitter.Tweet, error) {
	return f.tweets, nil
}

type fakeRoster struct {
	wins int
}

func (f *fakeRoster) ActiveAccounts(limit int) []int { return []int{1} }
func (f *fakeRoster) UserID(accountNum int) string   { return "111" }
func (f *fakeRoster) RecordWin(accountNum int)       { f.wins++ }

func newScannerStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// A winning mention that is already on record must not link a win again on
// the next cycle, even though the mention window re-fetches it.
func TestCheck_DuplicateMentionLinksOneWin(t *testing.T) {
	store := newScannerStore(t)

	for _, tweetID := range []string{"tw1", "tw2"} {
		id, _, err := store.InsertGiveaway(db.Giveaway{
			TweetID: tweetID, AuthorID: "a1", AuthorUsername: "whale", TweetText: "giveaway",
		})
		require.NoError(t, err)
		require.NoError(t, store.MarkParticipated(id, true, true, true, true))
	}

	roster := &fakeRoster{}
	scanner := &Scanner{
		store: store,
		client: &fakeMentions{tweets: []twitter.Tweet{
			{ID: "m1", Text: "Congratulations, you won!", AuthorID: "a1"},
		}},
		accounts: roster,
		window:   24 * time.Hour,
	}

	scanner.Check(context.Background())
	scanner.Check(context.Background())

	won := 0
	giveaways, err := store.GetRecentGiveaways(10)
	require.NoError(t, err)
	for _, g := range giveaways {
		if g.Won {
			won++
		}
	}
	require.Equal(t, 1, won, "a repeated announcement must not mark another giveaway")
	require.Equal(t, 1, roster.wins)
}

func TestCheck_NonWinnerMentionIgnored(t *testing.T) {
	store := newScannerStore(t)

	roster := &fakeRoster{}
	scanner := &Scanner{
		store: store,
		client: &fakeMentions{tweets: []twitter.Tweet{
			{ID: "m1", Text: "check out our new token", AuthorID: "a1"},
		}},
		accounts: roster,
		window:   24 * time.Hour,
	}

	scanner.Check(context.Background())

	wins, err := store.GetRecentWins(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Empty(t, wins)
	require.Zero(t, roster.wins)
}
