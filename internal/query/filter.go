package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Mode controls how translation reacts to input that falls outside the
// recognized shapes. Lenient drops the offending piece and keeps going;
// Strict stops with a validation error.
type Mode int

const (
	Lenient Mode = iota
	Strict
)

// Recognized operator keys for operator-object conditions.
const (
	OpEq      = "eq"
	OpNe      = "ne"
	OpGt      = "gt"
	OpGte     = "gte"
	OpLt      = "lt"
	OpLte     = "lte"
	OpIn      = "in"
	OpBetween = "between"
	OpLike    = "like"
	OpSearch  = "search"
	OpIsNull  = "isNull"

	// exact is a modifier on the search operator, not an operator itself.
	keyExact = "exact"
)

// comparisonOps maps single-value operator keys to their SQL fragments.
var comparisonOps = map[string]string{
	OpEq:  "=",
	OpNe:  "!=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Condition is one filter entry: either a bare scalar, which means equality
// (a null scalar means IS NULL), or an operator object such as {"gte": 18}
// or {"in": ["a", "b"]}. Build conditions with NewCondition or
// NewOperatorCondition, or decode them from JSON.
type Condition struct {
	scalar   any
	isScalar bool
	ops      []conditionOp
	exact    bool
}

// conditionOp is one key of an operator object, in source order.
type conditionOp struct {
	key   string
	value any
}

// NewCondition returns a scalar condition, which translates to equality.
func NewCondition(value any) Condition {
	return Condition{scalar: value, isScalar: true}
}

// NewOperatorCondition returns an operator-object condition with a single key.
func NewOperatorCondition(op string, value any) Condition {
	return Condition{ops: []conditionOp{{key: op, value: value}}}
}

// Exact returns a copy of the condition with the exact modifier set.
// It only affects the search operator.
func (c Condition) Exact() Condition {
	c.exact = true
	return c
}

// UnmarshalJSON decodes either form of a condition. A JSON object becomes an
// operator object with its keys kept in source order; anything else becomes
// a scalar equality condition.
func (c *Condition) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty condition")
	}
	if trimmed[0] != '{' {
		c.isScalar = true
		return json.Unmarshal(trimmed, &c.scalar)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in condition", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if key == keyExact {
			b, _ := value.(bool)
			c.exact = b
			continue
		}
		c.ops = append(c.ops, conditionOp{key: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// ApplyFilters translates a filter mapping into AND-joined predicates on the
// builder. Fields are visited in sorted order so the generated parameter
// names are deterministic; ordering never affects query semantics.
//
// Documented skip rules in Lenient mode: an empty or non-array "in" value, a
// "between" value without exactly two elements, a blank search term, and any
// unrecognized operator key each yield no predicate. Strict mode turns every
// one of those into an error instead.
func ApplyFilters(b *Builder, filters map[string]Condition, mode Mode) error {
	if len(filters) == 0 {
		return nil
	}
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if err := applyCondition(b, field, filters[field], mode); err != nil {
			return err
		}
	}
	return nil
}

func applyCondition(b *Builder, field string, c Condition, mode Mode) error {
	if !ValidFieldName(field) {
		if mode == Strict {
			return fmt.Errorf("%w: %q", ErrInvalidField, field)
		}
		return nil
	}

	if c.isScalar {
		if c.scalar == nil {
			// A bound NULL would render "field = NULL", which matches nothing.
			b.WhereNull(field, true)
			return nil
		}
		b.Where(field, "=", c.scalar)
		return nil
	}

	if mode == Strict && len(c.ops) != 1 {
		return fmt.Errorf("%w: field %q wants exactly one operator, got %d",
			ErrInvalidCondition, field, len(c.ops))
	}

	for _, op := range c.ops {
		if frag, ok := comparisonOps[op.key]; ok {
			if op.value == nil && (op.key == OpEq || op.key == OpNe) {
				b.WhereNull(field, op.key == OpEq)
				continue
			}
			b.Where(field, frag, op.value)
			continue
		}
		switch op.key {
		case OpIn:
			values, ok := op.value.([]any)
			if !ok || len(values) == 0 {
				// Empty IN means unrestricted, not "match nothing".
				if mode == Strict {
					return fmt.Errorf("%w: %q requires a non-empty array", ErrInvalidCondition, OpIn)
				}
				continue
			}
			b.WhereIn(field, values)
		case OpBetween:
			values, ok := op.value.([]any)
			if !ok || len(values) != 2 {
				if mode == Strict {
					return fmt.Errorf("%w: %q requires exactly two values", ErrInvalidCondition, OpBetween)
				}
				continue
			}
			b.WhereBetween(field, values[0], values[1])
		case OpLike:
			pattern, ok := op.value.(string)
			if !ok {
				if mode == Strict {
					return fmt.Errorf("%w: %q requires a string pattern", ErrInvalidCondition, OpLike)
				}
				continue
			}
			// The pattern is passed through verbatim; callers supply wildcards.
			b.Where(field, "LIKE", pattern)
		case OpSearch:
			term, ok := op.value.(string)
			if !ok || strings.TrimSpace(term) == "" {
				if mode == Strict {
					return fmt.Errorf("%w: %q requires a non-blank term", ErrInvalidCondition, OpSearch)
				}
				continue
			}
			if c.exact {
				b.Where(field, "=", term)
			} else {
				b.Where(field, "LIKE", "%"+term+"%")
			}
		case OpIsNull:
			isNull, ok := op.value.(bool)
			if !ok {
				if mode == Strict {
					return fmt.Errorf("%w: %q requires a boolean", ErrInvalidCondition, OpIsNull)
				}
				continue
			}
			b.WhereNull(field, isNull)
		default:
			if mode == Strict {
				return fmt.Errorf("%w: %q", ErrUnsupportedOperator, op.key)
			}
		}
	}
	return nil
}
