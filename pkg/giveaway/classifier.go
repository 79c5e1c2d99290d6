package giveaway

import "strings"

// Keyword co-occurrence gate: a post must look promotional AND mention a
// crypto asset. Either set alone is not enough, which rejects both ordinary
// crypto chatter and non-crypto giveaways.
var (
	promoKeywords = []string{"giveaway", "airdrop", "win", "contest", "free"}

	assetKeywords = []string{
		"btc", "eth", "crypto", "token", "coin", "usdt", "bnb",
		"sol", "ada", "xrp", "doge", "bitcoin", "ethereum", "cryptocurrency",
	}
)

// IsGiveaway reports whether the text looks like a crypto giveaway post.
func IsGiveaway(text string) bool {
	lower := strings.ToLower(text)

	return containsAny(lower, promoKeywords) && containsAny(lower, assetKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
