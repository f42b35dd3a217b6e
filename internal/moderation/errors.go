package moderation

import (
	"errors"
	"net/http"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/pkg/formatting"
)

// ErrNotConfigured is returned when no oracle credential is present.
// No network attempt is made in that state.
var ErrNotConfigured = errors.New("moderation is not configured")

// MapHTTPStatus maps moderation errors to appropriate HTTP status codes.
// Unparsable oracle output is a bad gateway, a missing credential is
// service unavailable, and a missing item is not found.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, formatting.ErrParseFailed) {
		return http.StatusBadGateway
	}
	if errors.Is(err, items.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
