package metrics

import (
	"crypto/md5"
	"encoding/hex"
	"math"
	"strings"
	"unicode/utf8"
)

// TrackStats holds the deterministic measurements for one lyrics text. Values
// are immutable once computed.
type TrackStats struct {
	Chars         int
	Words         int
	Tokens        int
	TokensPerWord float64
	Hash          string
}

// Tokenizer counts subword tokens for a text under a pinned vocabulary.
type Tokenizer interface {
	Count(text string) int
}

// Calculator computes TrackStats from raw lyrics text. It is a pure function
// of its input and the injected tokenizer: identical text and tokenizer
// version always yield byte-identical stats.
type Calculator struct {
	tokenizer Tokenizer
}

// NewCalculator constructs a Calculator around the supplied tokenizer.
func NewCalculator(tokenizer Tokenizer) *Calculator {
	return &Calculator{tokenizer: tokenizer}
}

// Compute measures the supplied lyrics. Absent lyrics are represented as the
// empty string and produce all-zero stats with the digest of the empty input,
// a defined case rather than an error: a failed retrieval degrades to zeros
// instead of aborting the run.
//
// Chars counts Unicode code points. Words counts whitespace-delimited fields.
// The hash covers the exact UTF-8 bytes as received, untrimmed.
func (c *Calculator) Compute(lyrics string) TrackStats {
	stats := TrackStats{Hash: HashText(lyrics)}
	if lyrics == "" {
		return stats
	}

	stats.Chars = utf8.RuneCountInString(lyrics)
	stats.Words = len(strings.Fields(lyrics))
	stats.Tokens = c.tokenizer.Count(lyrics)
	if stats.Words > 0 {
		stats.TokensPerWord = Round2(float64(stats.Tokens) / float64(stats.Words))
	}
	return stats
}

// HashText returns the lowercase hex MD5 digest of the text's UTF-8 bytes.
// MD5 is a content-identity fingerprint here, not a security boundary.
func HashText(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
