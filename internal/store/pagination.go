package store

import (
	"github.com/monocle-dev/herald/internal/apperror"
	"github.com/monocle-dev/herald/internal/types"
)

// Page is a 1-indexed page request.
type Page struct {
	Page  int
	Limit int
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

type Result[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPage applies the defaults to nil values and rejects non-positive ones.
func NewPage(page, limit *int) (Page, error) {
	p := Page{Page: types.DefaultPage, Limit: types.DefaultLimit}

	if page != nil {
		if *page < 1 {
			return Page{}, apperror.Validation("page: must be a positive integer")
		}
		p.Page = *page
	}
	if limit != nil {
		if *limit < 1 {
			return Page{}, apperror.Validation("limit: must be a positive integer")
		}
		p.Limit = *limit
	}

	return p, nil
}

func (p Page) normalize() (Page, error) {
	if p.Page == 0 {
		p.Page = types.DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = types.DefaultLimit
	}
	if p.Page < 0 || p.Limit < 0 {
		return Page{}, apperror.Validation("page and limit must be positive integers")
	}
	return p, nil
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func NewPagination(total int64, p Page) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}
