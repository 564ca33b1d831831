package query

import (
	"fmt"
	"strings"
)

// SearchSpec describes a text search over one field or several. Multi-field
// searches always use LIKE; single-field searches use equality when Exact
// is set.
type SearchSpec struct {
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Term   string   `json:"term"`
	Exact  bool     `json:"exact,omitempty"`
}

// ApplySearch translates a search spec onto the builder.
//
// Multi-field: one OR group in which every field compares against the same
// bound parameter, the term wrapped in wildcards exactly once. Single-field:
// equality when Exact, otherwise LIKE with wildcards. A blank term yields no
// predicate in Lenient mode and an error in Strict mode.
func ApplySearch(b *Builder, s *SearchSpec, mode Mode) error {
	if s == nil {
		return nil
	}

	term := strings.TrimSpace(s.Term)
	if term == "" {
		if mode == Strict {
			return fmt.Errorf("%w: blank search term", ErrInvalidCondition)
		}
		return nil
	}

	if len(s.Fields) > 0 {
		if mode == Strict && s.Exact {
			return fmt.Errorf("%w: exact search is single-field only", ErrInvalidCondition)
		}
		fields := make([]string, 0, len(s.Fields))
		for _, f := range s.Fields {
			if !ValidFieldName(f) {
				if mode == Strict {
					return fmt.Errorf("%w: %q", ErrInvalidField, f)
				}
				continue
			}
			fields = append(fields, f)
		}
		b.MultiFieldSearch(fields, term)
		return nil
	}

	if s.Field == "" {
		if mode == Strict {
			return fmt.Errorf("%w: search needs a field", ErrInvalidCondition)
		}
		return nil
	}
	if !ValidFieldName(s.Field) {
		if mode == Strict {
			return fmt.Errorf("%w: %q", ErrInvalidField, s.Field)
		}
		return nil
	}

	if s.Exact {
		b.Where(s.Field, "=", term)
	} else {
		b.Where(s.Field, "LIKE", "%"+term+"%")
	}
	return nil
}
