package pagination_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/reclaimhq/reclaim/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"oversized page size", 1, 500, 1, 100},
		{"valid values untouched", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
			req.Normalize(cfg)

			if req.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("page size = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("offset = %d, want 50", got)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	t.Run("parses all parameters", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "2")
		values.Set("page_size", "10")
		values.Set("search", "wallet")
		values.Set("sort", "title,-created_at")

		req := pagination.PageRequestFromQuery(values, cfg)

		if req.Page != 2 || req.PageSize != 10 {
			t.Errorf("page/size = %d/%d, want 2/10", req.Page, req.PageSize)
		}
		if req.Search == nil || *req.Search != "wallet" {
			t.Errorf("search = %v, want wallet", req.Search)
		}
		if len(req.Sort) != 2 || !req.Sort[1].Descending {
			t.Errorf("sort = %+v, want title asc, created_at desc", req.Sort)
		}
	})

	t.Run("defaults applied for missing parameters", func(t *testing.T) {
		req := pagination.PageRequestFromQuery(url.Values{}, cfg)

		if req.Page != 1 || req.PageSize != 20 {
			t.Errorf("page/size = %d/%d, want 1/20", req.Page, req.PageSize)
		}
		if req.Search != nil {
			t.Errorf("search = %v, want nil", req.Search)
		}
	})
}

func TestSortFieldsUnmarshal(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var req pagination.PageRequest
		if err := json.Unmarshal([]byte(`{"sort":"-created_at"}`), &req); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(req.Sort) != 1 || req.Sort[0].Field != "created_at" || !req.Sort[0].Descending {
			t.Errorf("sort = %+v, want created_at descending", req.Sort)
		}
	})

	t.Run("array form", func(t *testing.T) {
		var req pagination.PageRequest
		data := `{"sort":[{"Field":"Title","Descending":false}]}`
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(req.Sort) != 1 || req.Sort[0].Field != "Title" {
			t.Errorf("sort = %+v, want Title ascending", req.Sort)
		}
	})
}

func TestNewPageResult(t *testing.T) {
	t.Run("calculates total pages", func(t *testing.T) {
		result := pagination.NewPageResult([]int{1, 2, 3}, 45, 1, 20)
		if result.TotalPages != 3 {
			t.Errorf("total pages = %d, want 3", result.TotalPages)
		}
	})

	t.Run("empty data yields non-nil slice", func(t *testing.T) {
		result := pagination.NewPageResult[int](nil, 0, 1, 20)
		if result.Data == nil {
			t.Error("data = nil, want empty slice")
		}
		if result.TotalPages != 1 {
			t.Errorf("total pages = %d, want 1", result.TotalPages)
		}
	})
}
