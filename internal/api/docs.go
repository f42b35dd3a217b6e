package api

import (
	"github.com/reclaimhq/reclaim/internal/config"
	"github.com/reclaimhq/reclaim/pkg/openapi"
)

// buildDocs constructs the OpenAPI document for the API surface.
func buildDocs(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs)
	spec.AddServer(cfg.API.BasePath, "Reclaim API")
	spec.SetComponents(components())

	items := spec.Path("/items")
	items.Get = &openapi.Operation{
		Summary: "List items",
		Tags:    []string{"items"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("q", "string", "Search across title, description, and location", false),
			openapi.QueryParam("status", "string", "Status filter; 'all' lifts the public scope", false),
			openapi.QueryParam("category", "string", "Category filter; 'all' matches everything", false),
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Page size", false),
			openapi.QueryParam("sort", "string", "Sort fields, '-' prefix for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of items", "ItemPage"),
		},
	}
	items.Post = &openapi.Operation{
		Summary:     "Submit a found item",
		Description: "Accepts JSON or multipart/form-data with an optional photo part.",
		Tags:        []string{"items"},
		RequestBody: openapi.RequestBodyUpload("CreateItem", "photo", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created item", "Item"),
			400: openapi.ResponseRef("Error"),
			413: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/items/search").Post = &openapi.Operation{
		Summary:     "Search items",
		Description: "Structured search with pagination and filter criteria in the body.",
		Tags:        []string{"items"},
		RequestBody: openapi.RequestBodyJSON("SearchItems", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of items", "ItemPage"),
			400: openapi.ResponseRef("Error"),
		},
	}

	item := spec.Path("/items/{id}")
	item.Get = &openapi.Operation{
		Summary:    "Find an item",
		Tags:       []string{"items"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Item identifier")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Item", "Item"),
			404: openapi.ResponseRef("Error"),
		},
	}
	item.Delete = &openapi.Operation{
		Summary:     "Delete an item",
		Description: "Removes the item and every claim filed against it.",
		Tags:        []string{"items"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Item identifier")},
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			404: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/items/{id}/status").Put = &openapi.Operation{
		Summary:     "Set item status",
		Tags:        []string{"items"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Item identifier")},
		RequestBody: openapi.RequestBodyJSON("StatusChange", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated item", "Item"),
			400: openapi.ResponseRef("Error"),
			404: openapi.ResponseRef("Error"),
		},
	}

	claims := spec.Path("/claims")
	claims.Get = &openapi.Operation{
		Summary: "List claims",
		Tags:    []string{"claims"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("status", "string", "Status filter", false),
			openapi.QueryParam("item_id", "string", "Item filter", false),
			openapi.QueryParam("page", "integer", "Page number", false),
			openapi.QueryParam("page_size", "integer", "Page size", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of claims", "ClaimPage"),
		},
	}
	claims.Post = &openapi.Operation{
		Summary:     "File a claim",
		Tags:        []string{"claims"},
		RequestBody: openapi.RequestBodyJSON("CreateClaim", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created claim", "Claim"),
			400: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/claims/{id}").Get = &openapi.Operation{
		Summary:    "Find a claim",
		Tags:       []string{"claims"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Claim identifier")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Claim", "Claim"),
			404: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/claims/{id}/status").Put = &openapi.Operation{
		Summary:     "Set claim status",
		Description: "Resolving a claim marks its item as claimed.",
		Tags:        []string{"claims"},
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Claim identifier")},
		RequestBody: openapi.RequestBodyJSON("StatusChange", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated claim", "Claim"),
			400: openapi.ResponseRef("Error"),
			404: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/validate-item/{id}").Post = &openapi.Operation{
		Summary:    "Moderate an item",
		Tags:       []string{"moderation"},
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Item identifier")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Moderation verdict", "ModerationResult"),
			404: openapi.ResponseRef("Error"),
			502: openapi.ResponseRef("Error"),
			503: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/moderation/sweep").Post = &openapi.Operation{
		Summary:     "Moderate pending items",
		Description: "Validates every pending item without a stored verdict.",
		Tags:        []string{"moderation"},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Sweep summary", "SweepResult"),
			503: openapi.ResponseRef("Error"),
		},
	}

	spec.Path("/photos/{key}").Get = &openapi.Operation{
		Summary: "Download a photo",
		Tags:    []string{"photos"},
		Parameters: []*openapi.Parameter{
			{Name: "key", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
		},
		Responses: map[int]*openapi.Response{
			200: {Description: "Photo bytes"},
			404: openapi.ResponseRef("Error"),
		},
	}

	return spec
}

func components() *openapi.Components {
	confidenceMin, confidenceMax := 0.0, 100.0

	return &openapi.Components{
		Schemas: map[string]*openapi.Schema{
			"Item": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"id":             {Type: "string", Format: "uuid"},
					"title":          {Type: "string"},
					"category":       {Type: "string"},
					"description":    {Type: "string"},
					"location_found": {Type: "string"},
					"date_found":     {Type: "string"},
					"finder_name":    {Type: "string"},
					"finder_email":   {Type: "string"},
					"photo_path":     {Type: "string"},
					"status": {
						Type: "string",
						Enum: []any{"pending", "approved", "claimed", "archived"},
					},
					"ai_validation": {Type: "object"},
					"created_at":    {Type: "string", Format: "date-time"},
					"updated_at":    {Type: "string", Format: "date-time"},
				},
			},
			"CreateItem": {
				Type:     "object",
				Required: []string{"title", "location_found", "date_found"},
				Properties: map[string]*openapi.Schema{
					"title":          {Type: "string"},
					"category":       {Type: "string"},
					"description":    {Type: "string"},
					"location_found": {Type: "string"},
					"date_found":     {Type: "string"},
					"finder_name":    {Type: "string"},
					"finder_email":   {Type: "string"},
				},
			},
			"Claim": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"id":             {Type: "string", Format: "uuid"},
					"item_id":        {Type: "string", Format: "uuid"},
					"claimant_name":  {Type: "string"},
					"claimant_email": {Type: "string"},
					"details":        {Type: "string"},
					"status": {
						Type: "string",
						Enum: []any{"new", "in_review", "resolved"},
					},
					"item_title": {Type: "string"},
					"created_at": {Type: "string", Format: "date-time"},
					"updated_at": {Type: "string", Format: "date-time"},
				},
			},
			"CreateClaim": {
				Type:     "object",
				Required: []string{"item_id", "claimant_name", "claimant_email"},
				Properties: map[string]*openapi.Schema{
					"item_id":        {Type: "string", Format: "uuid"},
					"claimant_name":  {Type: "string"},
					"claimant_email": {Type: "string"},
					"details":        {Type: "string"},
				},
			},
			"SearchItems": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"page":      {Type: "integer"},
					"page_size": {Type: "integer"},
					"search":    {Type: "string"},
					"sort":      {Type: "array", Items: &openapi.Schema{Type: "string"}},
					"status":    {Type: "string"},
					"category":  {Type: "string"},
				},
			},
			"StatusChange": {
				Type:     "object",
				Required: []string{"status"},
				Properties: map[string]*openapi.Schema{
					"status": {Type: "string"},
				},
			},
			"ModerationResult": {
				Type:     "object",
				Required: []string{"isLegitimate", "confidence", "reasoning", "flags"},
				Properties: map[string]*openapi.Schema{
					"isLegitimate": {Type: "boolean"},
					"confidence": {
						Type:    "integer",
						Minimum: &confidenceMin,
						Maximum: &confidenceMax,
					},
					"reasoning": {Type: "string"},
					"flags":     {Type: "array", Items: &openapi.Schema{Type: "string"}},
				},
			},
			"SweepResult": {
				Type: "object",
				Properties: map[string]*openapi.Schema{
					"total":     {Type: "integer"},
					"validated": {Type: "integer"},
					"failed":    {Type: "integer"},
					"reports": {
						Type: "array",
						Items: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"item_id": {Type: "string", Format: "uuid"},
								"result":  openapi.SchemaRef("ModerationResult"),
								"error":   {Type: "string"},
							},
						},
					},
				},
			},
			"ItemPage":  pageSchema("Item"),
			"ClaimPage": pageSchema("Claim"),
		},
		Responses: map[string]*openapi.Response{
			"Error": {
				Description: "Error payload",
				Content: map[string]*openapi.MediaType{
					"application/json": {
						Schema: &openapi.Schema{
							Type: "object",
							Properties: map[string]*openapi.Schema{
								"error": {Type: "string"},
								"hint":  {Type: "string"},
							},
						},
					},
				},
			},
		},
	}
}

func pageSchema(item string) *openapi.Schema {
	return &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"data":        {Type: "array", Items: openapi.SchemaRef(item)},
			"total":       {Type: "integer"},
			"page":        {Type: "integer"},
			"page_size":   {Type: "integer"},
			"total_pages": {Type: "integer"},
		},
	}
}
