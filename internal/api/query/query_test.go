package query

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/ecomama/marketplace/internal/core/domain"
)

var listingFilters = Config{
	"status": EnumField("ACTIVE", "INACTIVE"),
	"search": StringField(),
}

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("invalid query %q: %v", raw, err)
	}
	return v
}

func TestParse_ValidInputIsLossless(t *testing.T) {
	got := Parse(mustQuery(t, "status=ACTIVE&search=bread"), listingFilters)
	want := Filter{"status": "ACTIVE", "search": "bread"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	again := Parse(mustQuery(t, "status=ACTIVE&search=bread"), listingFilters)
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("parsing is not idempotent: %v vs %v", got, again)
	}
}

func TestParse_OutOfEnumIsOmitted(t *testing.T) {
	got := Parse(mustQuery(t, "status=BOGUS"), listingFilters)
	if _, ok := got["status"]; ok {
		t.Fatalf("status should be omitted, got %v", got)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}
}

func TestParse_EnumIsCaseSensitive(t *testing.T) {
	got := Parse(mustQuery(t, "status=active"), listingFilters)
	if _, ok := got["status"]; ok {
		t.Fatalf("lowercase enum value should be omitted, got %v", got)
	}
}

func TestParse_Kinds(t *testing.T) {
	cfg := Config{
		"page":     NumberField(),
		"price":    NumberField(),
		"upcoming": BoolField(),
		"free":     BoolField(),
		"name":     StringField(),
	}

	cases := []struct {
		raw  string
		want Filter
	}{
		{"page=2&price=3.5", Filter{"page": 2.0, "price": 3.5}},
		{"page=-4", Filter{"page": -4.0}},
		{"page=abc&price=NaN", Filter{}},
		{"price=Inf&page=0x10", Filter{}},
		{"upcoming=TRUE&free=false", Filter{"upcoming": true, "free": false}},
		{"upcoming=yes&free=1", Filter{}},
		{"name=", Filter{}},
		{"page=&upcoming=", Filter{}},
		{"unknown=1", Filter{}},
		{"name=first&name=second", Filter{"name": "first"}},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got := Parse(mustQuery(t, tc.raw), cfg)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_Getters(t *testing.T) {
	f := Filter{"search": "bread", "page": 3.0, "upcoming": true}

	if f.String("search") != "bread" || f.String("missing") != "" {
		t.Fatalf("unexpected String results")
	}
	if n, ok := f.Number("page"); !ok || n != 3 {
		t.Fatalf("unexpected Number result %v %v", n, ok)
	}
	if f.Int("page", 1) != 3 || f.Int("limit", 20) != 20 {
		t.Fatalf("unexpected Int results")
	}
	if b, ok := f.Bool("upcoming"); !ok || !b {
		t.Fatalf("unexpected Bool result")
	}
	if _, ok := f.Bool("search"); ok {
		t.Fatalf("Bool on a string field should report absent")
	}
}

func TestFilter_IntOutOfRangeFallsBack(t *testing.T) {
	cfg := Config{"page": NumberField(), "limit": NumberField()}
	cases := []struct {
		raw  string
		want int
	}{
		{"page=1e17", 1},
		{"page=-1e17", 1},
		{"page=2147483647", 2147483647},
		{"page=2147483648", 1},
		{"page=7", 7},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			if got := Parse(mustQuery(t, tc.raw), cfg).Int("page", 1); got != tc.want {
				t.Fatalf("Int(page) = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRequired(t *testing.T) {
	params := mustQuery(t, "communityId=c1&empty=")

	v, err := Required(params, "communityId")
	if err != nil || v != "c1" {
		t.Fatalf("expected c1, got %q (%v)", v, err)
	}

	_, err = Required(params, "missing")
	e, ok := err.(*domain.Error)
	if !ok || e.Kind != domain.KindValidation || e.Message != "Missing required parameter: missing" {
		t.Fatalf("unexpected error %v", err)
	}

	_, err = Required(params, "empty", "communityId is required")
	if e, ok := err.(*domain.Error); !ok || e.Message != "communityId is required" {
		t.Fatalf("expected custom message, got %v", err)
	}
}
