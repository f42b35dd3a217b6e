package items

// Status is the review state of an item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusClaimed  Status = "claimed"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a recognized item status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusClaimed, StatusArchived:
		return true
	}
	return false
}

// PublicStatuses are the states visible to unauthenticated browsing
// when no explicit status filter is given.
func PublicStatuses() []any {
	return []any{string(StatusApproved), string(StatusClaimed)}
}
