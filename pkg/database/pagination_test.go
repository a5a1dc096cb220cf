package database

import "testing"

func TestPaginationNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Pagination
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", Pagination{}, 1, 50},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"zero limit", Pagination{Page: 2, Limit: 0}, 2, 50},
		{"limit capped at 100", Pagination{Page: 1, Limit: 500}, 1, 100},
		{"valid passes through", Pagination{Page: 4, Limit: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize() = %+v, want page %d limit %d", got, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestPaginationSkip(t *testing.T) {
	tests := []struct {
		page  int64
		limit int64
		want  int64
	}{
		{1, 50, 0},
		{2, 50, 50},
		{3, 20, 40},
		{10, 100, 900},
	}

	for _, tt := range tests {
		p := Pagination{Page: tt.page, Limit: tt.limit}
		if got := p.Skip(); got != tt.want {
			t.Errorf("Skip() for page %d limit %d = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestPaginationTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		total int64
		want  int64
	}{
		{"exact division", 50, 100, 2},
		{"remainder rounds up", 50, 101, 3},
		{"less than one page", 50, 7, 1},
		{"empty collection", 50, 0, 0},
		{"single item", 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pagination{Page: 1, Limit: tt.limit}
			if got := p.TotalPages(tt.total); got != tt.want {
				t.Errorf("TotalPages(%d) with limit %d = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
