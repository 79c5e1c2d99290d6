package bot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/giveaway-hunter/pkg/accounts"
	"github.com/giveaway-hunter/pkg/config"
	"github.com/giveaway-hunter/pkg/db"
	"github.com/giveaway-hunter/pkg/extractor"
	"github.com/giveaway-hunter/pkg/giveaway"
	"github.com/giveaway-hunter/pkg/twitter"
	"github.com/giveaway-hunter/pkg/winner"
)

// Bot chains search, qualification, participation and winner scanning into
// one periodic cycle.
type Bot struct {
	cfg       *config.Config
	store     *db.Store
	client    *twitter.Client
	extractor *extractor.Extractor
	commenter *giveaway.Commenter
	accounts  *accounts.Manager
	winners   *winner.Scanner

	mu sync.Mutex // one cycle at a time
}

func New(cfg *config.Config, store *db.Store, client *twitter.Client,
	ext *extractor.Extractor, accts *accounts.Manager, winners *winner.Scanner) *Bot {
	return &Bot{
		cfg:       cfg,
		store:     store,
		client:    client,
		extractor: ext,
		commenter: giveaway.NewCommenter(nil),
		accounts:  accts,
		winners:   winners,
	}
}

func (b *Bot) thresholds() giveaway.Thresholds {
	return giveaway.Thresholds{
		MinTokenPriceUSD:    b.cfg.MinTokenPriceUSD,
		MinFollowers:        b.cfg.MinFollowersRequired,
		MinGiveawayValueUSD: b.cfg.MinGiveawayValueUSD,
	}
}

// RunCycle executes one complete pass: find new giveaways, enter the pending
// ones, scan for wins. Overlapping invocations are serialized.
func (b *Bot) RunCycle(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Info().Msg("starting bot cycle...")

	found := b.searchGiveaways(ctx)
	log.Info().Int("found", found).Msg("search finished")

	b.participateAll(ctx)
	b.winners.Check(ctx)

	log.Info().Msg("bot cycle completed")
}

// searchGiveaways runs every configured query and persists the tweets that
// pass the qualification pipeline. Returns the number of new giveaways.
func (b *Bot) searchGiveaways(ctx context.Context) int {
	since := time.Now().Add(-b.cfg.SearchWindow)

	var mu sync.Mutex
	found := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	for _, query := range b.cfg.SearchQueries {
		query := query
		g.Go(func() error {
			log.Info().Str("query", query).Msg("searching")

			tweets, err := b.client.Search(ctx, query, since)
			if err != nil {
				log.Error().Err(err).Str("query", query).Msg("search failed")
				return nil // one dead query must not stop the others
			}

			for _, tweet := range tweets {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if b.processTweet(ctx, tweet) {
					mu.Lock()
					found++
					mu.Unlock()
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return found
}

// processTweet runs the qualification pipeline on one candidate post and
// persists it when every gate passes.
func (b *Bot) processTweet(ctx context.Context, tweet twitter.Tweet) bool {
	if seen, _ := b.store.HasGiveaway(tweet.ID); seen {
		return false
	}

	info := b.extractor.Extract(ctx, tweet.Text)

	if !giveaway.IsValuable(info, b.thresholds()) {
		log.Debug().Str("tweet", tweet.ID).Msg("doesn't meet value requirements")
		return false
	}

	if !giveaway.ShouldParticipate(tweet.Text, tweet.AuthorFollowers, info, b.thresholds()) {
		log.Debug().Str("tweet", tweet.ID).Msg("doesn't meet participation criteria")
		return false
	}

	_, inserted, err := b.store.InsertGiveaway(db.Giveaway{
		TweetID:           tweet.ID,
		AuthorID:          tweet.AuthorID,
		AuthorUsername:    tweet.AuthorUsername,
		TweetText:         tweet.Text,
		TokenSymbol:       info.Symbol,
		TokenPriceUSD:     info.PriceUSD,
		EstimatedValueUSD: info.EstimatedValueUSD,
	})
	if err != nil {
		log.Error().Err(err).Str("tweet", tweet.ID).Msg("giveaway save failed")
		return false
	}
	if inserted {
		log.Info().Str("tweet", tweet.ID).Str("token", info.Symbol).Msg("💰 giveaway saved")
	}
	return inserted
}

// participateAll enters every pending giveaway with the active accounts.
func (b *Bot) participateAll(ctx context.Context) {
	pending, err := b.store.GetPendingGiveaways()
	if err != nil {
		log.Error().Err(err).Msg("pending query failed")
		return
	}
	log.Info().Int("pending", len(pending)).Msg("participating in giveaways")

	for _, g := range pending {
		if ctx.Err() != nil {
			return
		}
		b.participate(ctx, g)
		time.Sleep(10 * time.Second) // rate limiting between giveaways
	}
}

func (b *Bot) participate(ctx context.Context, g db.Giveaway) {
	rules := giveaway.ExtractRules(g.TweetText)
	log.Info().
		Str("tweet", g.TweetID).
		Bool("follow", rules.Follow).
		Bool("retweet", rules.Retweet).
		Bool("like", rules.Like).
		Bool("comment", rules.Comment).
		Msg("parsed rules")

	active := b.accounts.ActiveAccounts(b.cfg.MaxAccountsToUse)
	if len(active) == 0 {
		log.Error().Msg("no active accounts available")
		return
	}

	participated := 0
	for _, accountNum := range active {
		if ctx.Err() != nil {
			return
		}

		success := true
		if rules.Follow {
			success = b.accounts.Follow(ctx, accountNum, g.AuthorID) && success
		}
		if rules.Retweet {
			success = b.accounts.Retweet(ctx, accountNum, g.TweetID) && success
		}
		if rules.Like {
			success = b.accounts.Like(ctx, accountNum, g.TweetID) && success
		}
		if rules.Comment {
			text := b.commenter.Comment(g.TweetText)
			success = b.accounts.Reply(ctx, accountNum, g.TweetID, text) && success
		}

		if success {
			participated++
			b.accounts.RecordParticipation(accountNum)
		}

		time.Sleep(5 * time.Second) // rate limiting between accounts
	}

	if err := b.store.MarkParticipated(g.ID, rules.Follow, rules.Retweet, rules.Like, rules.Comment); err != nil {
		log.Error().Err(err).Str("tweet", g.TweetID).Msg("participation update failed")
	}
	log.Info().Str("tweet", g.TweetID).Int("accounts", participated).Msg("participated")
}
