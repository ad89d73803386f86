package lyrics

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes characters and drops combining marks so "Beyoncé"
// slugs the same way the lyrics site does ("beyonce").
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// songSlug builds the URL slug for a song page: lowercase artist-title,
// diacritics folded to ASCII, quotes dropped, anything else non-alphanumeric
// collapsed into single hyphens.
func songSlug(artist, title string) string {
	raw := strings.ToLower(artist + "-" + title)
	if folded, _, err := transform.String(asciiFold, raw); err == nil {
		raw = folded
	}

	var b strings.Builder
	b.Grow(len(raw))
	lastHyphen := false
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '\'' || r == '"':
			// dropped entirely, no separator
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// songURL returns the full lyrics page URL for a track.
func songURL(artist, title string) string {
	return "https://genius.com/" + songSlug(artist, title) + "-lyrics"
}
