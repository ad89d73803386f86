// Command lyricagent resolves the artist behind a video URL, infers their
// debut album tracklist, measures each track's lyrics, and derives a stable
// album fingerprint.
package main
