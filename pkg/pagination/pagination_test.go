package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=50&offset=10", 50, 10},
		{"limit capped", "limit=500", MaxLimit, 0},
		{"negative values", "limit=-1&offset=-5", DefaultLimit, 0},
		{"garbage", "limit=abc&offset=xyz", DefaultLimit, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := paramsFor(t, tc.query)
			if p.Limit != tc.limit || p.Offset != tc.offset {
				t.Errorf("got limit=%d offset=%d, want %d %d", p.Limit, p.Offset, tc.limit, tc.offset)
			}
		})
	}
}

func TestNewResponseHasMore(t *testing.T) {
	if !NewResponse(nil, 100, 20, 0).HasMore {
		t.Error("first page of 100 should have more")
	}
	if NewResponse(nil, 100, 20, 80).HasMore {
		t.Error("last page should not have more")
	}
	if NewResponse(nil, 0, 20, 0).HasMore {
		t.Error("empty set should not have more")
	}
}
