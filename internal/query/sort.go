package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SortField is one entry of a sort specification. NullsFirst is accepted in
// the schema but reserved: it does not emit any null-ordering SQL.
type SortField struct {
	Field      string `json:"field"`
	Direction  string `json:"direction"`
	NullsFirst *bool  `json:"nullsFirst,omitempty"`
}

// SortSpec is an ordered sequence of sort fields. The caller-given order is
// preserved so multi-field sorts break ties deterministically.
type SortSpec []SortField

// UnmarshalJSON accepts either an array of sort fields or an object of
// field→direction pairs. For the object form the source key order is
// preserved, which plain map decoding would lose.
func (s *SortSpec) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty sort spec")
	}
	if string(trimmed) == "null" {
		// An explicit null means the same as an absent sort: no restriction.
		return nil
	}
	if trimmed[0] == '[' {
		var fields []SortField
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return err
		}
		*s = fields
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}
	var fields []SortField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		field, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in sort spec", tok)
		}
		var direction string
		if err := dec.Decode(&direction); err != nil {
			return err
		}
		fields = append(fields, SortField{Field: field, Direction: direction})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = fields
	return nil
}

// NormalizeDirection maps a direction string to "ASC" or "DESC"
// case-insensitively. Anything other than a spelling of desc is ASC.
func NormalizeDirection(direction string) string {
	if strings.EqualFold(strings.TrimSpace(direction), "DESC") {
		return "DESC"
	}
	return "ASC"
}

// ApplySort translates the sort spec into ORDER BY clauses on the builder,
// preserving the given field order.
func ApplySort(b *Builder, s SortSpec, mode Mode) error {
	for _, f := range s {
		if !ValidFieldName(f.Field) {
			if mode == Strict {
				return fmt.Errorf("%w: %q", ErrInvalidField, f.Field)
			}
			continue
		}
		b.OrderBy(f.Field, f.Direction)
	}
	return nil
}
