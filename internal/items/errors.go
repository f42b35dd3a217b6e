package items

import (
	"errors"
	"net/http"
)

// Domain errors for item operations.
var (
	ErrNotFound      = errors.New("item not found")
	ErrDuplicate     = errors.New("item already exists")
	ErrValidation    = errors.New("title, location_found, and date_found are required")
	ErrInvalidStatus = errors.New("invalid item status")
	ErrPhotoTooLarge = errors.New("photo exceeds maximum upload size")
	ErrInvalidPhoto  = errors.New("invalid photo")
)

// MapHTTPStatus maps item domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrPhotoTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrInvalidPhoto) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
