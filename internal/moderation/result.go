// Package moderation implements AI review of item submissions.
// It builds a fixed prompt from an item's fields, sends it to the
// configured text-generation oracle, and persists the parsed verdict
// on the item.
package moderation

import (
	"encoding/json"
	"fmt"

	"github.com/reclaimhq/reclaim/pkg/formatting"
)

// Result is the moderation verdict for an item submission.
type Result struct {
	IsLegitimate bool     `json:"isLegitimate"`
	Confidence   int      `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
	Flags        []string `json:"flags"`
}

// rawResult mirrors Result with pointer fields so field presence can
// be checked before accepting a verdict.
type rawResult struct {
	IsLegitimate *bool     `json:"isLegitimate"`
	Confidence   *int      `json:"confidence"`
	Reasoning    *string   `json:"reasoning"`
	Flags        *[]string `json:"flags"`
}

// ParseResult extracts a Result from oracle output. Code fences are
// stripped first; the remaining content must be a JSON object with all
// four fields present, confidence within 0 to 100. Anything else is
// ErrParseFailed.
func ParseResult(content string) (*Result, error) {
	raw, err := formatting.Parse[rawResult](content)
	if err != nil {
		return nil, err
	}

	if raw.IsLegitimate == nil || raw.Confidence == nil || raw.Reasoning == nil || raw.Flags == nil {
		return nil, fmt.Errorf("%w: missing required field", formatting.ErrParseFailed)
	}

	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return nil, fmt.Errorf("%w: confidence %d out of range", formatting.ErrParseFailed, *raw.Confidence)
	}

	return &Result{
		IsLegitimate: *raw.IsLegitimate,
		Confidence:   *raw.Confidence,
		Reasoning:    *raw.Reasoning,
		Flags:        *raw.Flags,
	}, nil
}

// Marshal renders the verdict exactly as it is persisted on the item.
func (r *Result) Marshal() (json.RawMessage, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal moderation result: %w", err)
	}
	return data, nil
}
