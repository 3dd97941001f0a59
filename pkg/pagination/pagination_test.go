package pagination_test

import (
	"encoding/json"
	"net/url"
	"reflect"
	"testing"

	"github.com/JaimeStill/neura/pkg/pagination"
	"github.com/JaimeStill/neura/pkg/query"
)

var testConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_PAGE_SIZE", "50")

	tests := []struct {
		name    string
		cfg     pagination.Config
		env     *pagination.ConfigEnv
		want    pagination.Config
		wantErr bool
	}{
		{"defaults", pagination.Config{}, nil, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}, false},
		{
			"env override",
			pagination.Config{},
			&pagination.ConfigEnv{DefaultPageSize: "TEST_PAGE_SIZE"},
			pagination.Config{DefaultPageSize: 50, MaxPageSize: 100},
			false,
		},
		{"default exceeds max", pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}, nil, pagination.Config{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Finalize(tt.env)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Finalize() error = %v", err)
			}
			if cfg != tt.want {
				t.Errorf("Finalize() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{MaxPageSize: 500})

	if cfg.DefaultPageSize != 20 || cfg.MaxPageSize != 500 {
		t.Errorf("Merge() = %+v", cfg)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
		wantSearch   string
		wantSort     []query.SortField
	}{
		{"empty", "", 1, 20, "", nil},
		{"explicit", "page=3&page_size=10", 3, 10, "", nil},
		{"page size clamped", "page_size=1000", 1, 100, "", nil},
		{"negative page", "page=-4", 1, 20, "", nil},
		{"garbage numbers", "page=abc&page_size=x", 1, 20, "", nil},
		{
			"search and sort",
			"search=bio&sort=-created_at,name",
			1, 20, "bio",
			[]query.SortField{{Field: "created_at", Descending: true}, {Field: "name"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			req := pagination.PageRequestFromQuery(values, testConfig)

			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("page = %d/%d, want %d/%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}

			gotSearch := ""
			if req.Search != nil {
				gotSearch = *req.Search
			}
			if gotSearch != tt.wantSearch {
				t.Errorf("search = %q, want %q", gotSearch, tt.wantSearch)
			}

			if !reflect.DeepEqual([]query.SortField(req.Sort), tt.wantSort) {
				t.Errorf("sort = %+v, want %+v", req.Sort, tt.wantSort)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestSortFields_UnmarshalJSON(t *testing.T) {
	want := pagination.SortFields{{Field: "name"}, {Field: "created_at", Descending: true}}

	inputs := map[string]string{
		"string": `"name,-created_at"`,
		"array":  `[{"field":"name"},{"field":"created_at","descending":true}]`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var got pagination.SortFields
			if err := json.Unmarshal([]byte(input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Unmarshal() = %+v, want %+v", got, want)
			}
		})
	}

	var bad pagination.SortFields
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Error("expected error for numeric sort")
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		data           []string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact", []string{"a"}, 40, 20, 2},
		{"remainder", []string{"a"}, 41, 20, 3},
		{"empty", nil, 0, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult(tt.data, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
			if result.Data == nil {
				t.Error("Data must never be nil")
			}
		})
	}
}
