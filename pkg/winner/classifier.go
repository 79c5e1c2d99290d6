package winner

import "strings"

// Winner announcements are a plain substring OR — unlike the giveaway
// classifier there is no second keyword set to conjoin.
var winnerPhrases = []string{
	"congratulations",
	"congrats",
	"winner",
	"won",
	"you win",
	"you won",
	"claim your prize",
	"you're the winner",
	"selected winner",
	"you have been selected",
}

// IsWinnerAnnouncement reports whether an inbound mention or DM announces a
// prize win.
func IsWinnerAnnouncement(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range winnerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
