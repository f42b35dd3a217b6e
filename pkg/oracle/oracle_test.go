package oracle_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/reclaimhq/reclaim/pkg/oracle"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSystem(t *testing.T, baseURL string) oracle.System {
	t.Helper()

	cfg := &oracle.Config{BaseURL: baseURL, Model: "test-model", APIKey: "secret"}
	sys, err := oracle.New(cfg, discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}

func TestNew(t *testing.T) {
	t.Run("missing key returns ErrNotConfigured", func(t *testing.T) {
		cfg := &oracle.Config{BaseURL: "http://localhost", Model: "m"}
		if _, err := oracle.New(cfg, discard()); !errors.Is(err, oracle.ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("model name exposed", func(t *testing.T) {
		sys := newSystem(t, "http://localhost")
		if sys.Model() != "test-model" {
			t.Errorf("model = %q, want test-model", sys.Model())
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("sends prompt and concatenates parts", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody map[string]any

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			json.NewDecoder(r.Body).Decode(&gotBody)

			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]string{
						{"text": "hello "},
						{"text": "world"},
					}}},
				},
			})
		}))
		defer server.Close()

		sys := newSystem(t, server.URL)

		got, err := sys.Generate(context.Background(), "say hello")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if got != "hello world" {
			t.Errorf("text = %q, want hello world", got)
		}
		if gotPath != "/v1beta/models/test-model:generateContent" {
			t.Errorf("path = %q, want generateContent path", gotPath)
		}
		if gotKey != "secret" {
			t.Errorf("api key header = %q, want secret", gotKey)
		}
		if gotBody == nil || !strings.Contains(mustJSON(t, gotBody), "say hello") {
			t.Errorf("request body = %v, want prompt inside contents", gotBody)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer server.Close()

		sys := newSystem(t, server.URL)

		if _, err := sys.Generate(context.Background(), "p"); err == nil {
			t.Error("err = nil, want status error")
		}
	})

	t.Run("no candidates is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer server.Close()

		sys := newSystem(t, server.URL)

		if _, err := sys.Generate(context.Background(), "p"); err == nil {
			t.Error("err = nil, want no-candidates error")
		}
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		sys := newSystem(t, server.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := sys.Generate(ctx, "p"); err == nil {
			t.Error("err = nil, want context error")
		}
	})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}
