package giveaway

import "regexp"

// RuleSet records which social actions a giveaway post demands. The four
// flags are independent; any subset, including the empty set, is valid.
type RuleSet struct {
	Follow  bool `json:"follow"`
	Retweet bool `json:"retweet"`
	Like    bool `json:"like"`
	Comment bool `json:"comment"`
}

func (r RuleSet) Any() bool {
	return r.Follow || r.Retweet || r.Like || r.Comment
}

// Emoji glyphs appear both as proper UTF-8 and as Latin-1 mangled byte runs
// in scraped text, so each alternation carries both forms.
const (
	checkGlyph   = `(?:\x{2705}|\x{00e2}\x{0153}\x{2026})`                           // ✅
	retweetGlyph = `(?:\x{1F501}|\x{00f0}\x{0178}\x{201d})`                          // 🔁
	heartGlyph   = `(?:\x{2764}|\x{2665}|\x{00e2}\x{00a4}|\x{00e2}\x{2122}\x{00a5})` // ❤ ♥
	speechGlyph  = `(?:\x{1F4AC}|\x{00f0}\x{0178}\x{2019}\x{00ac})`                  // 💬
)

// One ordered pattern family per action. A family is satisfied by its first
// matching pattern; families never influence each other.
var (
	followPatterns = compile(
		`follow\s+@?\w+`,
		`follow\s+us`,
		`following\s+@?\w+`,
		`must\s+follow`,
		checkGlyph+`\s*follow`,
		`1\.\s*follow`,
	)

	retweetPatterns = compile(
		`\bretweet\b`,
		`\brt\b`,
		`share\s+this`,
		`repost`,
		checkGlyph+`\s*retweet`,
		`2\.\s*retweet`,
		retweetGlyph,
	)

	likePatterns = compile(
		`\blike\b`,
		`heart`,
		heartGlyph,
		checkGlyph+`\s*like`,
		`3\.\s*like`,
	)

	commentPatterns = compile(
		`\bcomment\b`,
		`\breply\b`,
		`tag\s+\d+\s+friends`,
		`mention\s+\d+`,
		checkGlyph+`\s*comment`,
		`4\.\s*comment`,
		speechGlyph,
	)

	mentionRe = regexp.MustCompile(`@(\w+)`)

	deadlinePatterns = compile(
		`ends?\s+on\s+(\w+\s+\d+)`,
		`until\s+(\w+\s+\d+)`,
		`deadline[:\s]+(\w+\s+\d+)`,
		`(\d+)\s+days?`,
		`(\d+)\s+hours?`,
	)
)

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// ExtractRules determines the action plan a post demands. All four families
// are always evaluated regardless of the others' outcomes.
func ExtractRules(text string) RuleSet {
	return RuleSet{
		Follow:  matchAny(followPatterns, text),
		Retweet: matchAny(retweetPatterns, text),
		Like:    matchAny(likePatterns, text),
		Comment: matchAny(commentPatterns, text),
	}
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MentionedAccounts returns all @mentioned usernames, without the @.
func MentionedAccounts(text string) []string {
	var handles []string
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		handles = append(handles, m[1])
	}
	return handles
}

// Deadline extracts a rough deadline phrase ("March 15", "3 days") when the
// post announces one.
func Deadline(text string) (string, bool) {
	for _, re := range deadlinePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
	}
	return "", false
}
