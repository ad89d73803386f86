package metrics

import (
	"strings"
	"testing"
)

// fixedTokenizer deterministically charges one token per 4 bytes, minimum one
// for non-empty text. Keeps tests hermetic: no vocabulary download.
type fixedTokenizer struct{}

func (fixedTokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	n := (len(text) + 3) / 4
	if n < 1 {
		n = 1
	}
	return n
}

const (
	emptyHash   = "d41d8cd98f00b204e9800998ecf8427e"
	laLaLaHash  = "d0be2de22ce4c73c4c5447b3e0a8c8c3"
	laLaLaText  = "La la la"
	laLaLaWords = 3
)

func TestComputeEmptyIsDefinedZeroCase(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	stats := calc.Compute("")
	if stats.Chars != 0 || stats.Words != 0 || stats.Tokens != 0 || stats.TokensPerWord != 0 {
		t.Errorf("empty lyrics should be all zero, got %+v", stats)
	}
	if stats.Hash != emptyHash {
		t.Errorf("empty hash = %q, want %q", stats.Hash, emptyHash)
	}
}

func TestComputeGoldenHash(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	stats := calc.Compute(laLaLaText)
	if stats.Hash != laLaLaHash {
		t.Errorf("Compute(%q).Hash = %q, want %q", laLaLaText, stats.Hash, laLaLaHash)
	}
	if stats.Words != laLaLaWords {
		t.Errorf("words = %d, want %d", stats.Words, laLaLaWords)
	}
	if stats.Chars != len(laLaLaText) {
		t.Errorf("chars = %d, want %d", stats.Chars, len(laLaLaText))
	}
}

func TestComputeDeterministic(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	text := "Verse one\nVerse two\n\nChorus"
	first := calc.Compute(text)
	second := calc.Compute(text)
	if first != second {
		t.Errorf("Compute not deterministic: %+v vs %+v", first, second)
	}
}

func TestComputeCountsCodePoints(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	stats := calc.Compute("héllo wörld")
	if stats.Chars != 11 {
		t.Errorf("chars = %d, want 11 code points", stats.Chars)
	}
	if stats.Words != 2 {
		t.Errorf("words = %d, want 2", stats.Words)
	}
}

func TestComputeWhitespaceOnlyHasZeroRatio(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	stats := calc.Compute("   ")
	if stats.Words != 0 {
		t.Fatalf("words = %d, want 0", stats.Words)
	}
	if stats.TokensPerWord != 0 {
		t.Errorf("tokens_per_word = %v, want 0 for zero words", stats.TokensPerWord)
	}
	if stats.Chars != 3 {
		t.Errorf("chars = %d, want 3", stats.Chars)
	}
}

func TestComputeTokensPerWordRounded(t *testing.T) {
	calc := NewCalculator(fixedTokenizer{})
	// 10 bytes -> 3 tokens, 2 words -> 1.5 exactly.
	stats := calc.Compute(strings.Repeat("ab", 2) + " " + strings.Repeat("cd", 2) + "x")
	if stats.Tokens != 3 || stats.Words != 2 {
		t.Fatalf("unexpected fixture: %+v", stats)
	}
	if stats.TokensPerWord != 1.5 {
		t.Errorf("tokens_per_word = %v, want 1.5", stats.TokensPerWord)
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		// 1.125 and -1.125 are exactly representable, so the tie is real.
		{1.125, 1.13},
		{-1.125, -1.13},
		{1.004, 1.0},
		{1.006, 1.01},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHashTextMatchesKnownDigests(t *testing.T) {
	if got := HashText(""); got != emptyHash {
		t.Errorf("HashText(\"\") = %q", got)
	}
	if got := HashText(laLaLaText); got != laLaLaHash {
		t.Errorf("HashText(%q) = %q", laLaLaText, got)
	}
}
