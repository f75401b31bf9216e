package query

import (
	"net/url"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Condition is one SQL predicate produced by the filter composer. Keeping
// conditions as plain fragments lets the composition be exercised without a
// database connection.
type Condition struct {
	Expr string
	Args []interface{}
}

// Sort keys accepted by the listing endpoints. Anything else leaves the
// natural storage order in place.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortMileageAsc = "mileage_asc"
)

// CarFilters is the loose set of optional listing filters. Zero values are
// no-ops; every present filter is ANDed into the query.
type CarFilters struct {
	Make         string
	Model        string
	MinYear      int
	MaxYear      int
	MinPrice     float64
	MaxPrice     float64
	FuelType     string
	Transmission string
	BodyType     string
	Color        string
	OwnerNumber  string
	MinMileage   float64
	Features     []string
	Sort         string
}

// featureColumns maps recognized feature names to their boolean columns.
// Unrecognized names are silently ignored.
var featureColumns = map[string]string{
	"abs":        "abs",
	"airbags":    "airbags",
	"sunroof":    "sunroof",
	"navigation": "navigation",
}

// ParseCarFilters reads filters from request query parameters. Values that
// fail to parse are treated as absent.
func ParseCarFilters(values url.Values) CarFilters {
	f := CarFilters{
		Make:         values.Get("make"),
		Model:        values.Get("model"),
		MinYear:      parseInt(values.Get("min_year")),
		MaxYear:      parseInt(values.Get("max_year")),
		MinPrice:     parseFloat(values.Get("min_price")),
		MaxPrice:     parseFloat(values.Get("max_price")),
		FuelType:     values.Get("fuel_type"),
		Transmission: values.Get("transmission"),
		BodyType:     values.Get("body_type"),
		Color:        values.Get("color"),
		OwnerNumber:  values.Get("owner_number"),
		MinMileage:   parseFloat(values.Get("min_mileage")),
		Sort:         values.Get("sort"),
	}

	// features may arrive as a comma-separated value or a repeated key
	for _, raw := range values["features"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Features = append(f.Features, name)
			}
		}
	}

	return f
}

// Conditions composes the predicate list for the present filters.
func (f CarFilters) Conditions() []Condition {
	var conds []Condition
	add := func(expr string, args ...interface{}) {
		conds = append(conds, Condition{Expr: expr, Args: args})
	}

	if f.Make != "" {
		add("make ILIKE ?", "%"+f.Make+"%")
	}
	if f.Model != "" {
		add("model ILIKE ?", "%"+f.Model+"%")
	}
	if f.MinYear != 0 {
		add("year >= ?", f.MinYear)
	}
	if f.MaxYear != 0 {
		add("year <= ?", f.MaxYear)
	}
	if f.MinPrice != 0 {
		add("price >= ?", f.MinPrice)
	}
	if f.MaxPrice != 0 {
		add("price <= ?", f.MaxPrice)
	}
	if f.FuelType != "" {
		add("fuel_type = ?", f.FuelType)
	}
	if f.Transmission != "" {
		add("transmission = ?", f.Transmission)
	}
	if f.BodyType != "" {
		add("body_type = ?", f.BodyType)
	}
	if f.MinMileage != 0 {
		add("mileage >= ?", f.MinMileage)
	}
	for _, feature := range f.Features {
		if column, ok := featureColumns[strings.ToLower(strings.TrimSpace(feature))]; ok {
			add(column+" = ?", true)
		}
	}
	if f.Color != "" {
		add("color = ?", f.Color)
	}
	if f.OwnerNumber != "" {
		add("owner_number = ?", f.OwnerNumber)
	}

	return conds
}

// OrderBy returns the ORDER BY expression for the selected sort variant,
// or the empty string when no explicit sort was requested.
func (f CarFilters) OrderBy() string {
	switch f.Sort {
	case SortNewest:
		return "year DESC"
	case SortPriceAsc:
		return "price"
	case SortPriceDesc:
		return "price DESC"
	case SortMileageAsc:
		return "mileage"
	}
	return ""
}

// Apply attaches the composed predicate and sort to a gorm query.
func (f CarFilters) Apply(db *gorm.DB) *gorm.DB {
	for _, cond := range f.Conditions() {
		db = db.Where(cond.Expr, cond.Args...)
	}
	if order := f.OrderBy(); order != "" {
		db = db.Order(order)
	}
	return db
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
