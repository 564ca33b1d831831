package query

import "fmt"

// PaginationSpec is either page-based (1-based page plus pageSize) or
// offset-based (0-based offset plus limit). When both forms are supplied,
// page/pageSize takes precedence. Offset is a pointer because an explicit
// offset of 0 is meaningful.
type PaginationSpec struct {
	Page     int  `json:"page,omitempty"`
	PageSize int  `json:"pageSize,omitempty"`
	Offset   *int `json:"offset,omitempty"`
	Limit    int  `json:"limit,omitempty"`
}

// ApplyPagination translates the pagination spec onto the builder.
//
// Page-based values are applied only when both page and pageSize are
// positive; offset-based values go through the builder's own guards (limit
// must be positive, offset non-negative). In Lenient mode out-of-range
// values are ignored rather than rejected; Strict mode reports them.
func ApplyPagination(b *Builder, p *PaginationSpec, mode Mode) error {
	if p == nil {
		return nil
	}

	if p.Page != 0 || p.PageSize != 0 {
		if p.Page > 0 && p.PageSize > 0 {
			b.Paginate(p.Page, p.PageSize)
			return nil
		}
		if mode == Strict {
			return fmt.Errorf("%w: page and pageSize must both be positive, got page=%d pageSize=%d",
				ErrInvalidPagination, p.Page, p.PageSize)
		}
		// Lenient: an unusable page window falls back to offset/limit below.
	}

	if p.Limit != 0 {
		if p.Limit < 0 && mode == Strict {
			return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPagination, p.Limit)
		}
		b.Limit(p.Limit)
	}
	if p.Offset != nil {
		if *p.Offset < 0 && mode == Strict {
			return fmt.Errorf("%w: offset must be non-negative, got %d", ErrInvalidPagination, *p.Offset)
		}
		b.Offset(*p.Offset)
	}
	return nil
}
