package moderation_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/moderation"
	"github.com/reclaimhq/reclaim/pkg/formatting"
	"github.com/reclaimhq/reclaim/pkg/pagination"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeItems struct {
	findFn    func(ctx context.Context, id uuid.UUID) (*items.Item, error)
	pendingFn func(ctx context.Context) ([]items.Item, error)
}

func (f *fakeItems) Handler(int64) *items.Handler { return nil }

func (f *fakeItems) List(context.Context, pagination.PageRequest, items.Filters) (*pagination.PageResult[items.Item], error) {
	return nil, nil
}

func (f *fakeItems) Find(ctx context.Context, id uuid.UUID) (*items.Item, error) {
	return f.findFn(ctx, id)
}

func (f *fakeItems) Create(context.Context, items.CreateCommand) (*items.Item, error) {
	return nil, nil
}

func (f *fakeItems) SetStatus(context.Context, uuid.UUID, string) (*items.Item, error) {
	return nil, nil
}

func (f *fakeItems) Delete(context.Context, uuid.UUID) error { return nil }

func (f *fakeItems) PendingUnvalidated(ctx context.Context) ([]items.Item, error) {
	return f.pendingFn(ctx)
}

type fakeOracle struct {
	generateFn func(ctx context.Context, prompt string) (string, error)
	calls      atomic.Int64
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	return f.generateFn(ctx, prompt)
}

func (f *fakeOracle) Model() string { return "fake-model" }

func sampleItem() *items.Item {
	return &items.Item{
		ID:            uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Title:         "Blue Backpack",
		Category:      "bags",
		Description:   "Jansport with keychain",
		LocationFound: "Library",
		DateFound:     "2026-08-20",
		Status:        items.StatusPending,
	}
}

func TestParseResult(t *testing.T) {
	t.Run("fence-wrapped verdict", func(t *testing.T) {
		input := "```json\n{\"isLegitimate\":false,\"confidence\":80,\"reasoning\":\"gibberish description\",\"flags\":[\"gibberish\"]}\n```"

		got, err := moderation.ParseResult(input)
		if err != nil {
			t.Fatalf("ParseResult: %v", err)
		}
		if got.IsLegitimate {
			t.Error("isLegitimate = true, want false")
		}
		if got.Confidence != 80 {
			t.Errorf("confidence = %d, want 80", got.Confidence)
		}
		if got.Reasoning != "gibberish description" {
			t.Errorf("reasoning = %q, want gibberish description", got.Reasoning)
		}
		if len(got.Flags) != 1 || got.Flags[0] != "gibberish" {
			t.Errorf("flags = %v, want [gibberish]", got.Flags)
		}
	})

	t.Run("bare JSON verdict", func(t *testing.T) {
		input := `{"isLegitimate":true,"confidence":95,"reasoning":"ordinary item","flags":[]}`

		got, err := moderation.ParseResult(input)
		if err != nil {
			t.Fatalf("ParseResult: %v", err)
		}
		if !got.IsLegitimate || got.Confidence != 95 {
			t.Errorf("result = %+v, want legitimate with confidence 95", got)
		}
		if got.Flags == nil {
			t.Error("flags = nil, want empty slice")
		}
	})

	t.Run("rejects malformed verdicts", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"not JSON", "the item looks fine to me"},
			{"missing field", `{"isLegitimate":true,"confidence":50,"flags":[]}`},
			{"wrong type", `{"isLegitimate":"yes","confidence":50,"reasoning":"r","flags":[]}`},
			{"confidence too high", `{"isLegitimate":true,"confidence":150,"reasoning":"r","flags":[]}`},
			{"confidence negative", `{"isLegitimate":true,"confidence":-1,"reasoning":"r","flags":[]}`},
			{"fractional confidence", `{"isLegitimate":true,"confidence":80.5,"reasoning":"r","flags":[]}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := moderation.ParseResult(tt.input); !errors.Is(err, formatting.ErrParseFailed) {
					t.Errorf("err = %v, want ErrParseFailed", err)
				}
			})
		}
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("embeds item fields", func(t *testing.T) {
		prompt := moderation.BuildPrompt(sampleItem())

		for _, want := range []string{
			"Title: Blue Backpack",
			"Category: bags",
			"Description: Jansport with keychain",
			"Location: Library",
			"Date: 2026-08-20",
		} {
			if !strings.Contains(prompt, want) {
				t.Errorf("prompt missing %q", want)
			}
		}
	})

	t.Run("empty description becomes N/A", func(t *testing.T) {
		item := sampleItem()
		item.Description = ""

		if !strings.Contains(moderation.BuildPrompt(item), "Description: N/A") {
			t.Error("prompt missing Description: N/A")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("missing item makes no oracle call", func(t *testing.T) {
		oracle := &fakeOracle{
			generateFn: func(context.Context, string) (string, error) { return "", nil },
		}
		sys := moderation.New(nil, &fakeItems{
			findFn: func(context.Context, uuid.UUID) (*items.Item, error) {
				return nil, items.ErrNotFound
			},
		}, oracle, discard())

		_, err := sys.Validate(context.Background(), uuid.New())
		if !errors.Is(err, items.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
		if oracle.calls.Load() != 0 {
			t.Errorf("oracle calls = %d, want 0", oracle.calls.Load())
		}
	})

	t.Run("nil oracle reports not configured", func(t *testing.T) {
		sys := moderation.New(nil, &fakeItems{
			findFn: func(context.Context, uuid.UUID) (*items.Item, error) {
				return sampleItem(), nil
			},
		}, nil, discard())

		_, err := sys.Validate(context.Background(), uuid.New())
		if !errors.Is(err, moderation.ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("oracle failure surfaces", func(t *testing.T) {
		sys := moderation.New(nil, &fakeItems{
			findFn: func(context.Context, uuid.UUID) (*items.Item, error) {
				return sampleItem(), nil
			},
		}, &fakeOracle{
			generateFn: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}, discard())

		if _, err := sys.Validate(context.Background(), uuid.New()); err == nil {
			t.Error("err = nil, want oracle error")
		}
	})

	t.Run("unparsable verdict leaves item untouched", func(t *testing.T) {
		sys := moderation.New(nil, &fakeItems{
			findFn: func(context.Context, uuid.UUID) (*items.Item, error) {
				return sampleItem(), nil
			},
		}, &fakeOracle{
			generateFn: func(context.Context, string) (string, error) {
				return "I cannot help with that", nil
			},
		}, discard())

		_, err := sys.Validate(context.Background(), uuid.New())
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("err = %v, want ErrParseFailed", err)
		}
	})

	t.Run("prompt carries the item under review", func(t *testing.T) {
		item := sampleItem()
		var gotPrompt string

		sys := moderation.New(nil, &fakeItems{
			findFn: func(_ context.Context, id uuid.UUID) (*items.Item, error) {
				if id != item.ID {
					return nil, items.ErrNotFound
				}
				return item, nil
			},
		}, &fakeOracle{
			generateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "not json", nil
			},
		}, discard())

		sys.Validate(context.Background(), item.ID)

		if !strings.Contains(gotPrompt, item.Title) {
			t.Errorf("prompt = %q, want it to contain %q", gotPrompt, item.Title)
		}
	})
}

func TestSweep(t *testing.T) {
	t.Run("nil oracle reports not configured", func(t *testing.T) {
		sys := moderation.New(nil, &fakeItems{}, nil, discard())

		if _, err := sys.Sweep(context.Background()); !errors.Is(err, moderation.ErrNotConfigured) {
			t.Errorf("err = %v, want ErrNotConfigured", err)
		}
	})

	t.Run("empty backlog yields empty summary", func(t *testing.T) {
		sys := moderation.New(nil, &fakeItems{
			pendingFn: func(context.Context) ([]items.Item, error) {
				return nil, nil
			},
		}, &fakeOracle{
			generateFn: func(context.Context, string) (string, error) { return "", nil },
		}, discard())

		got, err := sys.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if got.Total != 0 || got.Validated != 0 || got.Failed != 0 {
			t.Errorf("summary = %+v, want all zero", got)
		}
	})

	t.Run("per-item failures are reported, not fatal", func(t *testing.T) {
		backlog := []items.Item{*sampleItem(), *sampleItem()}
		backlog[1].ID = uuid.New()

		sys := moderation.New(nil, &fakeItems{
			findFn: func(_ context.Context, id uuid.UUID) (*items.Item, error) {
				for i := range backlog {
					if backlog[i].ID == id {
						return &backlog[i], nil
					}
				}
				return nil, items.ErrNotFound
			},
			pendingFn: func(context.Context) ([]items.Item, error) {
				return backlog, nil
			},
		}, &fakeOracle{
			generateFn: func(context.Context, string) (string, error) {
				return "garbage output", nil
			},
		}, discard())

		got, err := sys.Sweep(context.Background())
		if err != nil {
			t.Fatalf("Sweep: %v", err)
		}
		if got.Total != 2 || got.Failed != 2 || got.Validated != 0 {
			t.Errorf("summary = %+v, want 2 failed of 2", got)
		}
		for _, report := range got.Reports {
			if report.Error == "" {
				t.Errorf("report %s missing error", report.ItemID)
			}
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not configured", moderation.ErrNotConfigured, http.StatusServiceUnavailable},
		{"parse failure", formatting.ErrParseFailed, http.StatusBadGateway},
		{"wrapped parse failure", fmt.Errorf("verdict: %w", formatting.ErrParseFailed), http.StatusBadGateway},
		{"item not found", items.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := moderation.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
