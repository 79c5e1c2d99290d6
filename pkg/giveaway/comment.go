package giveaway

import (
	"math/rand"
	"time"
)

var commentPool = []string{
	"🚀 Great project! Count me in!",
	"🔥 Amazing giveaway! Thanks for the opportunity!",
	"💎 This looks promising! Let's go!",
	"⭐ Excited to participate!",
	"🎉 Love this project! To the moon!",
	"✨ Thanks for this opportunity!",
	"🌟 Amazing initiative!",
	"💯 Let's gooo!",
	"🙌 Great community!",
	"🎊 Participating! Good luck everyone!",
}

// Commenter picks reply text for giveaways that require a comment. The random
// source is injectable so tests can be deterministic.
type Commenter struct {
	rnd *rand.Rand
}

func NewCommenter(rnd *rand.Rand) *Commenter {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Commenter{rnd: rnd}
}

// Comment returns one phrase from the pool. The post text is currently
// unused; it is accepted for future content-aware generation.
func (c *Commenter) Comment(text string) string {
	return commentPool[c.rnd.Intn(len(commentPool))]
}
