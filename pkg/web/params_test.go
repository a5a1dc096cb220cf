package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func testContext(url string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", "/x", 1, 50},
		{"explicit", "/x?page=3&limit=20", 3, 20},
		{"garbage falls back", "/x?page=abc&limit=xyz", 1, 50},
		{"limit capped", "/x?limit=9999", 1, 100},
		{"negative page clamped", "/x?page=-4", 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pageFromQuery(testContext(tt.url))
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit {
				t.Errorf("pageFromQuery(%q) = %+v, want page %d limit %d",
					tt.url, p, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestDaysFromQuery(t *testing.T) {
	if got := daysFromQuery(testContext("/x"), 7); got != 7 {
		t.Errorf("default days = %d, want 7", got)
	}
	if got := daysFromQuery(testContext("/x?days=30"), 7); got != 30 {
		t.Errorf("days = %d, want 30", got)
	}
	if got := daysFromQuery(testContext("/x?days=-1"), 7); got != 7 {
		t.Errorf("negative days = %d, want fallback 7", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Run("plain date", func(t *testing.T) {
		got, err := parseDate("2025-06-15")
		if err != nil {
			t.Fatalf("parseDate returned error: %v", err)
		}
		want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("parseDate = %v, want %v", got, want)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		got, err := parseDate("2025-06-15T12:30:00Z")
		if err != nil {
			t.Fatalf("parseDate returned error: %v", err)
		}
		if got.Hour() != 12 || got.Minute() != 30 {
			t.Errorf("parseDate = %v, want 12:30", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := parseDate("not-a-date"); err == nil {
			t.Error("expected an error for invalid input")
		}
	})
}
