package queryapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/querybase/querybase/internal/domain"
	"github.com/querybase/querybase/internal/query"
)

// queryService implements domain.QueryService over a registry of entities.
type queryService struct {
	store    domain.QueryStore
	entities map[string]domain.Entity
	names    []string // registration order, for Entities()
}

// NewQueryService creates a QueryService for the given entities. Entity names
// are expected to be unique; config validation enforces that before wiring.
func NewQueryService(store domain.QueryStore, entities []domain.Entity) domain.QueryService {
	s := &queryService{
		store:    store,
		entities: make(map[string]domain.Entity, len(entities)),
	}
	for _, e := range entities {
		s.entities[e.Name] = e
		s.names = append(s.names, e.Name)
	}
	return s
}

// Entities returns the registered entities in registration order.
func (s *queryService) Entities() []domain.Entity {
	out := make([]domain.Entity, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.entities[name])
	}
	return out
}

// Query resolves the entity, checks every referenced field against its allow
// list, and executes the request with the count and data round trips inside
// one storage snapshot.
func (s *queryService) Query(ctx context.Context, entity string, req *query.Request, strict bool) (*query.Result[query.Row], error) {
	ent, ok := s.entities[entity]
	if !ok {
		return nil, domain.NewAppError(domain.CodeNotFound, fmt.Sprintf("unknown entity %q", entity), nil)
	}

	if err := validateFields(&ent, req); err != nil {
		return nil, err
	}

	mode := query.Lenient
	if strict {
		mode = query.Strict
	}

	var result *query.Result[query.Row]
	err := s.store.Snapshot(ctx, func(st query.Store) error {
		r, execErr := query.NewExecutor(st, mode).Execute(ctx, ent.Table, req)
		if execErr != nil {
			return execErr
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// validateFields rejects any field reference outside the entity's allow list.
// This runs in both modes: the allow list is access policy, not input shape.
func validateFields(ent *domain.Entity, req *query.Request) error {
	if req == nil {
		return nil
	}

	check := func(field, where string) error {
		if !ent.AllowsField(field) {
			return domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("field %q is not allowed in %s for entity %q", field, where, ent.Name), nil)
		}
		return nil
	}

	for _, f := range req.Fields {
		if err := check(f, "fields"); err != nil {
			return err
		}
	}
	for f := range req.Filters {
		if err := check(f, "filters"); err != nil {
			return err
		}
	}
	if req.Search != nil {
		if req.Search.Field != "" {
			if err := check(req.Search.Field, "search"); err != nil {
				return err
			}
		}
		for _, f := range req.Search.Fields {
			if err := check(f, "search"); err != nil {
				return err
			}
		}
	}
	for _, f := range req.Sort {
		if err := check(f.Field, "sort"); err != nil {
			return err
		}
	}
	return nil
}

// mapError converts translation errors to domain validation errors. Storage
// errors pass through unmodified; this layer does not retry or wrap them.
func mapError(err error) error {
	switch {
	case errors.Is(err, query.ErrUnsupportedOperator),
		errors.Is(err, query.ErrInvalidCondition),
		errors.Is(err, query.ErrInvalidField),
		errors.Is(err, query.ErrInvalidPagination):
		return domain.NewAppError(domain.CodeValidation, err.Error(), err)
	}
	return err
}
