package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AccountCredentials holds the user-context token for one participating account.
// Tokens come from numbered env vars (TWITTER_ACCESS_TOKEN_1, _2, ...) so
// accounts can be added without touching code.
type AccountCredentials struct {
	Number      int
	UserID      string
	AccessToken string
}

type Config struct {
	// Twitter app auth (search)
	TwitterBearerToken string
	// Twitter private API (imperatrona/twitter-scraper)
	TwitterAuthToken string // auth_token cookie
	TwitterCSRFToken string // ct0 cookie

	// Participating accounts
	Accounts         []AccountCredentials
	MaxAccountsToUse int

	// Price API
	CoinGeckoAPIKey string
	CoinGeckoURL    string

	// Participation thresholds
	MinTokenPriceUSD     float64
	MinFollowersRequired int
	MinGiveawayValueUSD  float64

	// Search
	SearchQueries []string
	SearchWindow  time.Duration
	CheckInterval time.Duration

	// DB
	DBPath string

	// Dashboard
	DashboardPort int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TwitterBearerToken: os.Getenv("TWITTER_BEARER_TOKEN"),
		TwitterAuthToken:   os.Getenv("TWITTER_AUTH_TOKEN"),
		TwitterCSRFToken:   os.Getenv("TWITTER_CSRF_TOKEN"),

		CoinGeckoAPIKey: os.Getenv("COINGECKO_API_KEY"),
		CoinGeckoURL:    envOr("COINGECKO_API", "https://api.coingecko.com/api/v3"),

		MinTokenPriceUSD:     envFloat("MIN_TOKEN_PRICE_USD", 0.01),
		MinFollowersRequired: envInt("MIN_FOLLOWERS_REQUIRED", 1000),
		MinGiveawayValueUSD:  envFloat("MIN_GIVEAWAY_VALUE_USD", 50),
		MaxAccountsToUse:     envInt("MAX_ACCOUNTS_TO_USE", 100),

		SearchWindow:  time.Duration(envInt("SEARCH_WINDOW_HOURS", 24)) * time.Hour,
		CheckInterval: time.Duration(envInt("CHECK_INTERVAL_MINUTES", 15)) * time.Minute,

		DBPath:        envOr("DB_PATH", "giveaways.db"),
		DashboardPort: envInt("DASHBOARD_PORT", 8080),
	}

	if v := os.Getenv("SEARCH_QUERIES"); v != "" {
		cfg.SearchQueries = splitTrim(v)
	} else {
		cfg.SearchQueries = []string{
			"crypto giveaway -is:retweet lang:en",
			"token giveaway -is:retweet lang:en",
			"BTC giveaway -is:retweet lang:en",
			"ETH giveaway -is:retweet lang:en",
			"crypto airdrop -is:retweet lang:en",
			"win crypto -is:retweet lang:en",
		}
	}

	// Numbered account credentials; gaps are allowed
	for i := 1; i <= cfg.MaxAccountsToUse; i++ {
		token := os.Getenv(fmt.Sprintf("TWITTER_ACCESS_TOKEN_%d", i))
		if token == "" {
			continue
		}
		cfg.Accounts = append(cfg.Accounts, AccountCredentials{
			Number:      i,
			UserID:      os.Getenv(fmt.Sprintf("TWITTER_USER_ID_%d", i)),
			AccessToken: token,
		})
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	hasAPIAuth := c.TwitterBearerToken != ""
	hasCookieAuth := c.TwitterAuthToken != "" && c.TwitterCSRFToken != ""

	if !hasAPIAuth && !hasCookieAuth {
		return fmt.Errorf("no search credentials configured: need TWITTER_BEARER_TOKEN or TWITTER_AUTH_TOKEN + TWITTER_CSRF_TOKEN")
	}
	if c.MinTokenPriceUSD < 0 || c.MinGiveawayValueUSD < 0 {
		return fmt.Errorf("price thresholds must be non-negative")
	}
	if c.MinFollowersRequired < 0 {
		return fmt.Errorf("MIN_FOLLOWERS_REQUIRED must be non-negative")
	}
	return nil
}

// helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
