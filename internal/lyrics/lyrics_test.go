package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"lyricagent/internal/services/apify"
)

func TestSongSlug(t *testing.T) {
	tests := []struct {
		name   string
		artist string
		title  string
		want   string
	}{
		{"simple", "Artist X", "Song A", "artist-x-song-a"},
		{"apostrophe dropped", "Artist", "Don't Stop", "artist-dont-stop"},
		{"quotes dropped", `The "Band"`, "Track", "the-band-track"},
		{"punctuation collapsed", "Artist", "Song, Part 2", "artist-song-part-2"},
		{"diacritics folded", "Beyoncé", "Déjà Vu", "beyonce-deja-vu"},
		{"punctuation hyphenated like live site", "P!nk", "So What", "p-nk-so-what"},
		{"hyphen runs collapsed", "A -- B", "C", "a-b-c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := songSlug(tt.artist, tt.title); got != tt.want {
				t.Errorf("songSlug(%q, %q) = %q, want %q", tt.artist, tt.title, got, tt.want)
			}
		})
	}
}

func TestSongURL(t *testing.T) {
	got := songURL("Artist X", "Song A")
	want := "https://genius.com/artist-x-song-a-lyrics"
	if got != want {
		t.Errorf("songURL = %q, want %q", got, want)
	}
}

type stubRunner struct {
	items []apify.Item
	err   error

	gotInput map[string]any
}

func (s *stubRunner) RunActor(_ context.Context, _ string, input any) ([]apify.Item, error) {
	if m, ok := input.(map[string]any); ok {
		s.gotInput = m
	}
	return s.items, s.err
}

func scrapeItems(t *testing.T, lyrics string) []apify.Item {
	t.Helper()
	data, err := json.Marshal(map[string]string{"url": "u", "lyrics": lyrics})
	if err != nil {
		t.Fatal(err)
	}
	return []apify.Item{data}
}

func TestFetchReturnsLyrics(t *testing.T) {
	body := strings.Repeat("la la la ", 20)
	runner := &stubRunner{items: scrapeItems(t, body)}
	source := NewGeniusSource(runner, "apify/web-scraper", "RESIDENTIAL", nil)

	got, ok := source.Fetch(context.Background(), "Song A", "Artist X")
	if !ok {
		t.Fatal("expected lyrics to be found")
	}
	if got != body {
		t.Errorf("lyrics body mutated: %q", got)
	}

	proxy, ok := runner.gotInput["proxyConfiguration"].(map[string]any)
	if !ok || proxy["useApifyProxy"] != true {
		t.Errorf("proxy configuration not forwarded: %v", runner.gotInput)
	}
}

func TestFetchShortBodyIsAbsent(t *testing.T) {
	runner := &stubRunner{items: scrapeItems(t, "blocked")}
	source := NewGeniusSource(runner, "apify/web-scraper", "", nil)
	if _, ok := source.Fetch(context.Background(), "Song A", "Artist X"); ok {
		t.Error("short body should be treated as absent")
	}
}

func TestFetchEmptyDatasetIsAbsent(t *testing.T) {
	source := NewGeniusSource(&stubRunner{}, "apify/web-scraper", "", nil)
	if _, ok := source.Fetch(context.Background(), "Song A", "Artist X"); ok {
		t.Error("empty dataset should be treated as absent")
	}
}

func TestFetchTransportFailureIsAbsent(t *testing.T) {
	runner := &stubRunner{err: errors.New("proxy refused")}
	source := NewGeniusSource(runner, "apify/web-scraper", "", nil)
	if _, ok := source.Fetch(context.Background(), "Song A", "Artist X"); ok {
		t.Error("transport failure should be treated as absent")
	}
}

func TestFetchOmitsProxyWhenUnset(t *testing.T) {
	runner := &stubRunner{items: scrapeItems(t, strings.Repeat("x", 60))}
	source := NewGeniusSource(runner, "apify/web-scraper", "", nil)
	source.Fetch(context.Background(), "Song A", "Artist X")
	if _, present := runner.gotInput["proxyConfiguration"]; present {
		t.Error("proxy configuration should be omitted when no group is set")
	}
}
