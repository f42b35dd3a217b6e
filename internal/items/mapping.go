package items

import (
	"net/url"

	"github.com/reclaimhq/reclaim/pkg/query"
	"github.com/reclaimhq/reclaim/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "items", "i").
	Project("id", "ID").
	Project("title", "Title").
	Project("category", "Category").
	Project("description", "Description").
	Project("location_found", "LocationFound").
	Project("date_found", "DateFound").
	Project("finder_name", "FinderName").
	Project("finder_email", "FinderEmail").
	Project("photo_path", "PhotoPath").
	Project("status", "Status").
	Project("ai_validation", "AIValidation").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for item queries.
// A nil Status restricts results to the public statuses; "all" lifts
// the restriction entirely. A Category of "all" is treated as absent.
type Filters struct {
	Status   *string `json:"status,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	switch {
	case f.Status == nil:
		b.WhereIn("Status", PublicStatuses())
	case *f.Status == "all":
	default:
		b.WhereEquals("Status", f.Status)
	}

	if f.Category != nil && *f.Category != "all" {
		b.WhereEquals("Category", f.Category)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if c := values.Get("category"); c != "" {
		f.Category = &c
	}

	return f
}

func scanItem(s repository.Scanner) (Item, error) {
	var i Item
	var validation []byte

	err := s.Scan(
		&i.ID,
		&i.Title,
		&i.Category,
		&i.Description,
		&i.LocationFound,
		&i.DateFound,
		&i.FinderName,
		&i.FinderEmail,
		&i.PhotoPath,
		&i.Status,
		&validation,
		&i.CreatedAt,
		&i.UpdatedAt,
	)

	i.AIValidation = validation
	return i, err
}
