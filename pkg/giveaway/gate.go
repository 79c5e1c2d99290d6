package giveaway

import (
	"github.com/rs/zerolog/log"

	"github.com/giveaway-hunter/pkg/extractor"
)

// Thresholds are the configured economic knobs the participation gate
// applies. All values are non-negative.
type Thresholds struct {
	MinTokenPriceUSD    float64
	MinFollowers        int
	MinGiveawayValueUSD float64
}

// ShouldParticipate is the conjunctive participation filter: giveaway text,
// a resolved token price above the floor, and a credible author. Every
// condition must pass; there is no scoring.
func ShouldParticipate(text string, authorFollowers int, info extractor.TokenInfo, t Thresholds) bool {
	if !IsGiveaway(text) {
		return false
	}

	if !info.HasPrice() {
		log.Debug().Str("symbol", info.Symbol).Msg("no token price found, skipping")
		return false
	}
	if *info.PriceUSD < t.MinTokenPriceUSD {
		log.Debug().Float64("price", *info.PriceUSD).Msg("token price too low")
		return false
	}

	if authorFollowers < t.MinFollowers {
		log.Debug().Int("followers", authorFollowers).Msg("author has too few followers")
		return false
	}

	return true
}

// IsValuable checks the extracted token against the value thresholds: the
// token must have a real traded price at or above the floor, and when a total
// value estimate exists it must clear the aggregate minimum. A missing value
// estimate does not reject on its own, since quantity is often absent.
func IsValuable(info extractor.TokenInfo, t Thresholds) bool {
	if !info.HasPrice() {
		return false
	}
	if *info.PriceUSD < t.MinTokenPriceUSD {
		return false
	}
	if info.EstimatedValueUSD != nil && *info.EstimatedValueUSD < t.MinGiveawayValueUSD {
		return false
	}
	return true
}
