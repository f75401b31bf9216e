package pagination

import (
	"net/url"
	"testing"
)

func TestParsePageDefaultsToFirst(t *testing.T) {
	cases := []string{"", "0", "-2", "abc"}
	for _, raw := range cases {
		values := url.Values{}
		if raw != "" {
			values.Set("page", raw)
		}
		if got := ParsePage(values); got != 1 {
			t.Errorf("page %q: expected 1, got %d", raw, got)
		}
	}
}

func TestParsePageReadsValue(t *testing.T) {
	values := url.Values{"page": {"4"}}
	if got := ParsePage(values); got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestLastPage(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{20, 2},
		{21, 3},
	}
	for _, tc := range cases {
		if got := LastPage(tc.total, PerPage); got != tc.want {
			t.Errorf("total %d: expected last page %d, got %d", tc.total, tc.want, got)
		}
	}
}
