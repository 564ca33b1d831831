package query

import (
	"context"
	"fmt"
)

// Row is a single result row keyed by column name.
type Row = map[string]any

// Store executes bound statements against the backing tabular store.
// Implementations substitute parameters out of band; this package never
// inlines bound values into statement text.
type Store interface {
	Select(ctx context.Context, stmt Statement) ([]Row, error)
	Count(ctx context.Context, stmt Statement) (int64, error)
}

// Executor compiles requests into statements and runs them against a Store,
// assembling one page of results with metadata.
//
// The count and data round trips are issued sequentially and share the
// predicate set of a single builder, so the total stays logically consistent
// with the page. No snapshot isolation is assumed between the two calls;
// wrap the store in a transaction-scoped one where the backing database
// should guarantee it.
type Executor struct {
	store Store
	mode  Mode
}

// NewExecutor creates an Executor that translates requests in the given mode.
func NewExecutor(store Store, mode Mode) *Executor {
	return &Executor{store: store, mode: mode}
}

// BuildFromRequest applies the request onto a fresh builder in fixed order:
// projection, filters, search, sort, pagination. The order affects generated
// parameter names only, never query semantics.
func BuildFromRequest(table string, req *Request, mode Mode) (*Builder, error) {
	b := NewBuilder(table)
	if req == nil {
		return b, nil
	}

	if len(req.Fields) > 0 {
		fields := make([]string, 0, len(req.Fields))
		for _, f := range req.Fields {
			if !ValidFieldName(f) {
				if mode == Strict {
					return nil, fmt.Errorf("%w: %q", ErrInvalidField, f)
				}
				continue
			}
			fields = append(fields, f)
		}
		b.Select(fields...)
	}

	if err := ApplyFilters(b, req.Filters, mode); err != nil {
		return nil, err
	}
	if err := ApplySearch(b, req.Search, mode); err != nil {
		return nil, err
	}
	if err := ApplySort(b, req.Sort, mode); err != nil {
		return nil, err
	}
	if err := ApplyPagination(b, req.Pagination, mode); err != nil {
		return nil, err
	}
	return b, nil
}

// Execute runs the count round trip followed by the data round trip and
// derives pagination metadata from the combined outcome. Storage errors are
// returned unmodified; this layer neither retries nor wraps them.
func (e *Executor) Execute(ctx context.Context, table string, req *Request) (*Result[Row], error) {
	b, err := BuildFromRequest(table, req, e.mode)
	if err != nil {
		return nil, err
	}

	total, err := e.store.Count(ctx, b.CountStatement())
	if err != nil {
		return nil, err
	}

	rows, err := e.store.Select(ctx, b.Build())
	if err != nil {
		return nil, err
	}

	limit, offset := b.Window()
	return NewResult(rows, total, limit, offset), nil
}
