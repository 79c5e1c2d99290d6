package winner

import "testing"

func TestIsWinnerAnnouncement(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"congratulations", "Congratulations @user, DM us to claim!", true},
		{"congrats", "congrats on winning the 100 BTC!", true},
		{"winner", "We have a WINNER!", true},
		{"won embedded", "You won our ETH giveaway", true},
		{"claim your prize", "Please claim your prize within 24h", true},
		{"selected", "you have been selected for the airdrop", true},
		{"youre the winner", "you're the winner of round 3", true},
		{"plain mention", "Hey @user check out our new token", false},
		{"giveaway promo is not an announcement", "Win 100 BTC! Follow and retweet", false},
		{"empty", "", false},
		{"unrelated", "gm everyone, markets look good today", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWinnerAnnouncement(tt.text); got != tt.want {
				t.Errorf("IsWinnerAnnouncement(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
