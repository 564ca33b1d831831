package query

import "math"

// Result is one page of data plus pagination metadata derived from the total
// count. CurrentPage, PageSize and TotalPages are present only when the
// query carried a limit; an unlimited query reports just data and total.
type Result[T any] struct {
	Data        []T   `json:"data"`
	TotalCount  int64 `json:"totalCount"`
	CurrentPage int   `json:"currentPage,omitempty"`
	PageSize    int   `json:"pageSize,omitempty"`
	TotalPages  int   `json:"totalPages,omitempty"`
	HasMore     bool  `json:"hasMore"`
}

// NewResult assembles a page of results. limit and offset come straight from
// the builder's window (-1 meaning unset). With no limit the metadata fields
// stay zero and HasMore is false. The builder's setter keeps the limit
// strictly positive whenever it was set at all, so the page arithmetic here
// cannot divide by zero.
func NewResult[T any](data []T, totalCount int64, limit, offset int) *Result[T] {
	if data == nil {
		data = []T{}
	}
	r := &Result[T]{
		Data:       data,
		TotalCount: totalCount,
	}
	if limit <= 0 {
		return r
	}
	if offset < 0 {
		offset = 0
	}
	r.CurrentPage = offset/limit + 1
	r.PageSize = limit
	r.TotalPages = int(math.Ceil(float64(totalCount) / float64(limit)))
	r.HasMore = int64(offset+len(data)) < totalCount
	return r
}
