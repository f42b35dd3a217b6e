package claims

import (
	"database/sql"
	"net/url"

	"github.com/reclaimhq/reclaim/pkg/query"
	"github.com/reclaimhq/reclaim/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "claims", "c").
	Project("id", "ID").
	Project("item_id", "ItemID").
	Project("claimant_name", "ClaimantName").
	Project("claimant_email", "ClaimantEmail").
	Project("details", "Details").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "items", "i", "LEFT JOIN", "c.item_id = i.id").
	Project("title", "ItemTitle")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for claim queries.
type Filters struct {
	Status *string `json:"status,omitempty"`
	ItemID *string `json:"item_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("ItemID", f.ItemID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if id := values.Get("item_id"); id != "" {
		f.ItemID = &id
	}

	return f
}

func scanClaim(s repository.Scanner) (Claim, error) {
	var c Claim
	var title sql.NullString

	err := s.Scan(
		&c.ID,
		&c.ItemID,
		&c.ClaimantName,
		&c.ClaimantEmail,
		&c.Details,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&title,
	)

	if title.Valid {
		c.ItemTitle = title.String
	} else {
		c.ItemTitle = UnknownItemTitle
	}

	return c, err
}
