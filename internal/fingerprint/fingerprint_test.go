package fingerprint

import (
	"context"
	"errors"
	"testing"

	"lyricagent/internal/services"
)

// stubEmbedder is deterministic and order-sensitive: each output component
// depends on a byte's value and its position in the input.
type stubEmbedder struct {
	calls int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	s.calls++
	vector := make([]float64, 4)
	for i, b := range []byte(text) {
		vector[i%4] += float64(int(b) * (i + 1))
	}
	return vector, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("model unavailable")
}

func TestCountsString(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   string
	}{
		{"empty", nil, ""},
		{"single", []int{42}, "42"},
		{"ordered", []int{120, 85}, "120,85"},
		{"zeros kept", []int{100, 0, 50}, "100,0,50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountsString(tt.counts); got != tt.want {
				t.Errorf("CountsString(%v) = %q, want %q", tt.counts, got, tt.want)
			}
		})
	}
}

func TestFormatVectorFixedPrecision(t *testing.T) {
	got := FormatVector([]float64{0.5, -1, 2.00000000004})
	want := "0.5000000000,-1.0000000000,2.0000000000"
	if got != want {
		t.Errorf("FormatVector = %q, want %q", got, want)
	}
}

func TestFormatVectorEmpty(t *testing.T) {
	if got := FormatVector(nil); got != "" {
		t.Errorf("FormatVector(nil) = %q, want empty", got)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	gen := NewGenerator(&stubEmbedder{})
	first, err := gen.Fingerprint(context.Background(), []int{120, 85})
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Fingerprint(context.Background(), []int{120, 85})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("fingerprint not deterministic: %q vs %q", first, second)
	}
	if len(first) != 32 {
		t.Errorf("fingerprint should be a 128-bit hex digest, got %q", first)
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	gen := NewGenerator(&stubEmbedder{})
	forward, err := gen.Fingerprint(context.Background(), []int{120, 85})
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := gen.Fingerprint(context.Background(), []int{85, 120})
	if err != nil {
		t.Fatal(err)
	}
	if forward == reversed {
		t.Error("permuted count sequence produced the same fingerprint")
	}
}

func TestFingerprintEmbedderFailureIsFatal(t *testing.T) {
	gen := NewGenerator(failingEmbedder{})
	fp, err := gen.Fingerprint(context.Background(), []int{1, 2})
	if err == nil {
		t.Fatal("expected error when embedder is unavailable")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("error should carry the external-service tag: %v", err)
	}
	if fp != "" {
		t.Errorf("no fingerprint should be returned on failure, got %q", fp)
	}
}

func TestFingerprintEmptySequence(t *testing.T) {
	embedder := &stubEmbedder{}
	gen := NewGenerator(embedder)
	if _, err := gen.Fingerprint(context.Background(), nil); err != nil {
		t.Fatalf("empty sequence should still fingerprint: %v", err)
	}
	if embedder.calls != 1 {
		t.Errorf("embedder should be called exactly once, got %d", embedder.calls)
	}
}
