// Package lyricscache persists lyrics scrape results in SQLite, including
// negative results, so repeated runs for the same artist do not re-scrape
// pages that were already fetched or already known to be missing.
package lyricscache
