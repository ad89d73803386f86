package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbedReturnsVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != PinnedModel {
			t.Errorf("model = %q, want %q", req.Model, PinnedModel)
		}
		if req.Input != "120,85" {
			t.Errorf("input = %q", req.Input)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []any{map[string]any{"embedding": []float64{0.1, -0.2, 0.3}}},
		})
	}))
	defer server.Close()

	client, err := New(server.URL, "", "")
	if err != nil {
		t.Fatal(err)
	}
	vector, err := client.Embed(context.Background(), "120,85")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vector) != 3 || vector[1] != -0.2 {
		t.Errorf("unexpected vector %v", vector)
	}
}

func TestEmbedSendsAuthWhenConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []any{map[string]any{"embedding": []float64{1}}},
		})
	}))
	defer server.Close()

	client, err := New(server.URL, "secret", PinnedModel)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Embed(context.Background(), "1"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
}

func TestEmbedEmptyVectorIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer server.Close()

	client, err := New(server.URL, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Embed(context.Background(), "1,2"); err == nil {
		t.Error("expected error for empty vector")
	}
}

func TestEmbedHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := New(server.URL, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Embed(context.Background(), "1,2"); err == nil {
		t.Error("expected error for 503")
	}
}

func TestNewDefaultsToPinnedModel(t *testing.T) {
	client, err := New("http://localhost:1", "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if client.Model() != PinnedModel {
		t.Errorf("Model() = %q, want %q", client.Model(), PinnedModel)
	}
}
