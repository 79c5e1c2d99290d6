package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/accounts"
	"github.com/giveaway-hunter/pkg/bot"
	"github.com/giveaway-hunter/pkg/config"
	"github.com/giveaway-hunter/pkg/dashboard"
	"github.com/giveaway-hunter/pkg/db"
	"github.com/giveaway-hunter/pkg/extractor"
	"github.com/giveaway-hunter/pkg/pricing"
	"github.com/giveaway-hunter/pkg/twitter"
	"github.com/giveaway-hunter/pkg/winner"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	log.Info().Msg("🎁 Giveaway Hunter starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config invalid")
	}

	store, err := db.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer store.Close()

	oracle := pricing.NewOracle(pricing.NewCoinGecko(cfg.CoinGeckoURL, cfg.CoinGeckoAPIKey))
	client := twitter.NewClient(cfg)
	accts := accounts.NewManager(cfg, store)
	winners := winner.NewScanner(store, client, accts)
	b := bot.New(cfg, store, client, extractor.New(oracle), accts, winners)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigCh; log.Info().Msg("shutting down..."); cancel() }()

	dash := dashboard.New(store, cfg.DashboardPort)
	go func() {
		if err := dash.Run(); err != nil {
			log.Error().Err(err).Msg("dashboard stopped")
		}
	}()

	printSummary(cfg, store)

	// First cycle immediately, then on schedule
	b.RunCycle(ctx)

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", cfg.CheckInterval), func() { b.RunCycle(ctx) }); err != nil {
		log.Fatal().Err(err).Msg("schedule setup failed")
	}
	c.Start()
	log.Info().Dur("interval", cfg.CheckInterval).Msg("✅ bot is running")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info().Msg("goodbye 👋")
}

func printSummary(cfg *config.Config, store *db.Store) {
	stats, _ := store.GetStats()
	fmt.Println("\n" + strings.Repeat("═", 60))
	fmt.Println("  🎁 GIVEAWAY HUNTER - RUNNING")
	fmt.Println(strings.Repeat("═", 60))
	fmt.Printf("  Queries:       %d configured\n", len(cfg.SearchQueries))
	fmt.Printf("  Accounts:      %d loaded (max %d per giveaway)\n", len(cfg.Accounts), cfg.MaxAccountsToUse)
	fmt.Printf("  Min price:     $%.2f\n", cfg.MinTokenPriceUSD)
	fmt.Printf("  Min value:     $%.2f\n", cfg.MinGiveawayValueUSD)
	fmt.Printf("  Min followers: %d\n", cfg.MinFollowersRequired)
	fmt.Printf("  Dashboard:     http://localhost:%d\n", cfg.DashboardPort)
	if stats != nil {
		fmt.Printf("  DB: %d giveaways, %d entered, %d wins\n",
			stats["total_giveaways"], stats["participated"], stats["wins"])
	}
	fmt.Println(strings.Repeat("═", 60) + "\n")
}
