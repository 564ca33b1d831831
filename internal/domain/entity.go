package domain

import (
	"context"
	"slices"

	"github.com/querybase/querybase/internal/query"
)

// Entity describes one queryable entity: the name clients address it by, the
// backing table, and the fields they may project, filter, search, or sort on.
// Resolving an entity name to a table, and deciding which fields are fair
// game, is deliberately kept out of the query core; this registry entry is
// that external collaborator.
type Entity struct {
	Name   string
	Table  string
	Fields []string
}

// AllowsField reports whether the field is in the entity's allow list.
func (e *Entity) AllowsField(field string) bool {
	return slices.Contains(e.Fields, field)
}

// QueryStore is the storage collaborator: it executes bound statements and
// offers a snapshot scope under which a request's count and data round trips
// observe the same database state.
type QueryStore interface {
	query.Store
	Snapshot(ctx context.Context, fn func(query.Store) error) error
}

// QueryService executes declarative queries against registered entities.
type QueryService interface {
	Query(ctx context.Context, entity string, req *query.Request, strict bool) (*query.Result[query.Row], error)
	Entities() []Entity
}
