package fingerprint

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lyricagent/internal/metrics"
	"lyricagent/internal/services"
)

// Embedder maps text to a fixed-length real vector. Implementations must be
// deterministic for identical input under a pinned model version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator derives a stable album fingerprint from an ordered token-count
// sequence. The sequence, not the lyrics, is the input: the fingerprint is
// insensitive to superficial textual variation but sensitive to track count
// and relative lengths.
type Generator struct {
	embedder Embedder
}

// NewGenerator constructs a Generator around the supplied embedder.
func NewGenerator(embedder Embedder) *Generator {
	return &Generator{embedder: embedder}
}

// Fingerprint embeds the comma-joined count sequence and returns the MD5 hex
// digest of the deterministically formatted vector. Order matters end to end;
// permuting the counts permutes the embedder input and with it the digest.
// An embedder failure is fatal: the aggregate fingerprint is meaningless
// without it and no fallback exists.
func (g *Generator) Fingerprint(ctx context.Context, tokenCounts []int) (string, error) {
	input := CountsString(tokenCounts)
	vector, err := g.embedder.Embed(ctx, input)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "fingerprint", "embed", "", err)
	}
	return metrics.HashText(FormatVector(vector)), nil
}

// CountsString joins token counts in order with a comma separator. An empty
// sequence yields the empty string.
func CountsString(tokenCounts []int) string {
	if len(tokenCounts) == 0 {
		return ""
	}
	parts := make([]string, len(tokenCounts))
	for i, count := range tokenCounts {
		parts[i] = strconv.Itoa(count)
	}
	return strings.Join(parts, ",")
}

// FormatVector renders each component with exactly ten digits after the
// decimal point, comma-joined in index order. The fixed precision is what
// makes the digest reproducible across runs and machines.
func FormatVector(vector []float64) string {
	parts := make([]string, len(vector))
	for i, component := range vector {
		parts[i] = fmt.Sprintf("%.10f", component)
	}
	return strings.Join(parts, ",")
}
