package giveaway

import (
	"math/rand"
	"testing"
)

func TestComment_NeverEmptyAndDiverse(t *testing.T) {
	c := NewCommenter(rand.New(rand.NewSource(1)))

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		comment := c.Comment("Win 100 BTC!")
		if comment == "" {
			t.Fatal("generated an empty comment")
		}
		seen[comment] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected at least 2 distinct comments over 20 calls, got %d", len(seen))
	}
}

func TestComment_Deterministic(t *testing.T) {
	a := NewCommenter(rand.New(rand.NewSource(42)))
	b := NewCommenter(rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		if a.Comment("x") != b.Comment("x") {
			t.Fatal("same seed should produce the same sequence")
		}
	}
}

func TestComment_NilSource(t *testing.T) {
	c := NewCommenter(nil)
	if c.Comment("anything") == "" {
		t.Error("default source must still produce a comment")
	}
}
