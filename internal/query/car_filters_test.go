package query

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseCarFiltersReadsAllKeys(t *testing.T) {
	values := url.Values{}
	values.Set("make", "Honda")
	values.Set("model", "civic")
	values.Set("min_year", "2019")
	values.Set("max_year", "2023")
	values.Set("min_price", "5000")
	values.Set("max_price", "10000")
	values.Set("fuel_type", "Petrol")
	values.Set("transmission", "Manual")
	values.Set("body_type", "Sedan")
	values.Set("color", "red")
	values.Set("owner_number", "First")
	values.Set("min_mileage", "15.5")
	values.Set("features", "abs,sunroof")
	values.Set("sort", "newest")

	f := ParseCarFilters(values)

	if f.Make != "Honda" || f.Model != "civic" {
		t.Errorf("unexpected make/model: %q %q", f.Make, f.Model)
	}
	if f.MinYear != 2019 || f.MaxYear != 2023 {
		t.Errorf("unexpected year range: %d..%d", f.MinYear, f.MaxYear)
	}
	if f.MinPrice != 5000 || f.MaxPrice != 10000 {
		t.Errorf("unexpected price range: %v..%v", f.MinPrice, f.MaxPrice)
	}
	if f.MinMileage != 15.5 {
		t.Errorf("unexpected min mileage: %v", f.MinMileage)
	}
	if !reflect.DeepEqual(f.Features, []string{"abs", "sunroof"}) {
		t.Errorf("unexpected features: %v", f.Features)
	}
	if f.Sort != "newest" {
		t.Errorf("unexpected sort: %q", f.Sort)
	}
}

func TestParseCarFiltersIgnoresUnparsableNumbers(t *testing.T) {
	values := url.Values{}
	values.Set("min_year", "twenty")
	values.Set("max_price", "lots")

	f := ParseCarFilters(values)
	if f.MinYear != 0 || f.MaxPrice != 0 {
		t.Errorf("unparsable values should be treated as absent, got %d %v", f.MinYear, f.MaxPrice)
	}
}

func TestParseCarFiltersRepeatedFeaturesKey(t *testing.T) {
	values := url.Values{"features": {"abs", "airbags, navigation"}}

	f := ParseCarFilters(values)
	want := []string{"abs", "airbags", "navigation"}
	if !reflect.DeepEqual(f.Features, want) {
		t.Errorf("expected %v, got %v", want, f.Features)
	}
}

func TestConditionsEmptyFiltersComposeNothing(t *testing.T) {
	if conds := (CarFilters{}).Conditions(); len(conds) != 0 {
		t.Fatalf("expected no conditions, got %v", conds)
	}
}

func TestConditionsSubstringMatchOnMakeAndModel(t *testing.T) {
	conds := CarFilters{Make: "hon", Model: "civ"}.Conditions()
	want := []Condition{
		{Expr: "make ILIKE ?", Args: []interface{}{"%hon%"}},
		{Expr: "model ILIKE ?", Args: []interface{}{"%civ%"}},
	}
	if !reflect.DeepEqual(conds, want) {
		t.Errorf("expected %v, got %v", want, conds)
	}
}

func TestConditionsRangeFiltersCombine(t *testing.T) {
	conds := CarFilters{MinYear: 2019, MaxPrice: 10000}.Conditions()
	want := []Condition{
		{Expr: "year >= ?", Args: []interface{}{2019}},
		{Expr: "price <= ?", Args: []interface{}{10000.0}},
	}
	if !reflect.DeepEqual(conds, want) {
		t.Errorf("expected %v, got %v", want, conds)
	}
}

func TestConditionsRecognizedFeaturesAddBooleanConstraints(t *testing.T) {
	conds := CarFilters{Features: []string{"ABS", " sunroof "}}.Conditions()
	want := []Condition{
		{Expr: "abs = ?", Args: []interface{}{true}},
		{Expr: "sunroof = ?", Args: []interface{}{true}},
	}
	if !reflect.DeepEqual(conds, want) {
		t.Errorf("expected %v, got %v", want, conds)
	}
}

func TestConditionsUnrecognizedFeatureIsIgnored(t *testing.T) {
	conds := CarFilters{Features: []string{"flux_capacitor"}}.Conditions()
	if len(conds) != 0 {
		t.Errorf("unrecognized feature should add no condition, got %v", conds)
	}
}

func TestOrderByVariants(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{SortNewest, "year DESC"},
		{SortPriceAsc, "price"},
		{SortPriceDesc, "price DESC"},
		{SortMileageAsc, "mileage"},
		{"", ""},
		{"bogus", ""},
	}
	for _, tc := range cases {
		if got := (CarFilters{Sort: tc.sort}).OrderBy(); got != tc.want {
			t.Errorf("sort %q: expected %q, got %q", tc.sort, tc.want, got)
		}
	}
}
