package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Filter is the set of optional predicates and paging parameters for a
// paged assessment query. Nil / empty fields are not applied. Title and
// location are case-insensitive substring matches; budget and closing date
// ranges are inclusive.
type Filter struct {
	Title           string     `form:"title"`
	Location        string     `form:"location"`
	Status          *Status    `form:"status"`
	RecruiterID     *int       `form:"recruiterId"`
	DepartmentID    *int       `form:"departmentId"`
	MinBudget       *float64   `form:"minBudget"`
	MaxBudget       *float64   `form:"maxBudget"`
	ClosingDateFrom *time.Time `form:"closingDateFrom" time_format:"2006-01-02"`
	ClosingDateTo   *time.Time `form:"closingDateTo" time_format:"2006-01-02"`
	PageNumber      int        `form:"pageNumber,default=1"`
	PageSize        int        `form:"pageSize,default=10"`
}

// Matches reports whether a satisfies every predicate present on f.
// Records without a closing date never match a closing date range.
func (f Filter) Matches(a Assessment) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(a.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.RecruiterID != nil && a.RecruiterID != *f.RecruiterID {
		return false
	}
	if f.DepartmentID != nil && a.DepartmentID != *f.DepartmentID {
		return false
	}
	if f.MinBudget != nil && a.Budget < *f.MinBudget {
		return false
	}
	if f.MaxBudget != nil && a.Budget > *f.MaxBudget {
		return false
	}
	if f.ClosingDateFrom != nil && (a.ClosingDate == nil || a.ClosingDate.Before(*f.ClosingDateFrom)) {
		return false
	}
	if f.ClosingDateTo != nil && (a.ClosingDate == nil || a.ClosingDate.After(*f.ClosingDateTo)) {
		return false
	}
	return true
}

// PagedResult is one page of records plus metadata about the unpaged total.
type PagedResult[T any] struct {
	Items           []T  `json:"items"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

// NewPagedResult computes the page metadata for items taken from a filtered
// set of totalCount records. An empty set yields zero total pages and both
// flags false.
func NewPagedResult[T any](items []T, totalCount, pageNumber, pageSize int) PagedResult[T] {
	totalPages := 0
	if totalCount > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(pageSize)))
	}
	if items == nil {
		items = []T{}
	}
	return PagedResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// ApplyFilter runs f against the full record set: predicate first, then a
// newest-first sort (created date descending, id descending on ties), then
// paging. TotalCount is taken before the page is cut.
func ApplyFilter(records []Assessment, f Filter) PagedResult[Assessment] {
	matched := make([]Assessment, 0, len(records))
	for _, a := range records {
		if f.Matches(a) {
			matched = append(matched, a)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedDate.Equal(matched[j].CreatedDate) {
			return matched[i].CreatedDate.After(matched[j].CreatedDate)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := (f.PageNumber - 1) * f.PageSize
	if start > total {
		start = total
	}
	end := start + f.PageSize
	if end > total {
		end = total
	}

	return NewPagedResult(matched[start:end], total, f.PageNumber, f.PageSize)
}
