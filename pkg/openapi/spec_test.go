package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reclaimhq/reclaim/pkg/openapi"
)

func TestSpec(t *testing.T) {
	spec := openapi.NewSpec(openapi.Config{Title: "Reclaim API", Version: "1.0.0"})
	spec.AddServer("/api", "service root")
	spec.Path("/items").Get = &openapi.Operation{
		Summary: "List items",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("A page of items", "ItemPage"),
		},
	}
	spec.Path("/items").Post = &openapi.Operation{Summary: "Submit an item"}
	spec.Path("/claims").Get = &openapi.Operation{Summary: "List claims"}

	t.Run("path builder reuses items", func(t *testing.T) {
		item := spec.Path("/items")
		if item.Get == nil || item.Post == nil {
			t.Error("operations registered through separate Path calls not retained")
		}
	})

	t.Run("path patterns sorted", func(t *testing.T) {
		got := spec.PathPatterns()
		want := []string{"/claims", "/items"}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("PathPatterns() = %v, want %v", got, want)
		}
	})

	t.Run("handler serves document", func(t *testing.T) {
		rec := httptest.NewRecorder()
		spec.Handler()(rec, httptest.NewRequest("GET", "/openapi.json", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}

		var doc struct {
			OpenAPI string `json:"openapi"`
			Info    struct {
				Title string `json:"title"`
			} `json:"info"`
			Paths map[string]json.RawMessage `json:"paths"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
			t.Fatalf("unmarshal document: %v", err)
		}

		if doc.OpenAPI != "3.0.3" {
			t.Errorf("openapi = %q, want 3.0.3", doc.OpenAPI)
		}
		if doc.Info.Title != "Reclaim API" {
			t.Errorf("title = %q, want Reclaim API", doc.Info.Title)
		}
		if _, ok := doc.Paths["/items"]; !ok {
			t.Error("document missing /items path")
		}
	})
}

func TestConfigFinalize(t *testing.T) {
	var cfg openapi.Config
	if err := cfg.Finalize(openapi.ConfigEnv{}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Title != "Reclaim API" {
		t.Errorf("title = %q, want Reclaim API", cfg.Title)
	}
	if cfg.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", cfg.Version)
	}
}
