package pagination

import (
	"net/url"
	"strconv"

	"gorm.io/gorm"
)

// PerPage is the fixed page size used across the whole API.
const PerPage = 10

// Pagination is the envelope metadata returned with every paginated list.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// ParsePage reads the page query parameter, defaulting to the first page.
func ParsePage(values url.Values) int {
	page, err := strconv.Atoi(values.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// LastPage computes the number of the final page for a total row count.
// An empty result set still has one (empty) page.
func LastPage(total int64, perPage int) int {
	if total <= 0 {
		return 1
	}
	last := int((total + int64(perPage) - 1) / int64(perPage))
	return last
}

// Paginate counts the query, applies offset and limit for the requested
// page, scans the rows into dest and returns the envelope metadata.
func Paginate(db *gorm.DB, page int, dest interface{}) (Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * PerPage
	if err := db.Offset(offset).Limit(PerPage).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	return Pagination{
		CurrentPage: page,
		PerPage:     PerPage,
		Total:       total,
		LastPage:    LastPage(total, PerPage),
	}, nil
}
