package query

import (
	"maps"
	"regexp"
	"strconv"
	"strings"
)

const defaultProjection = "*"

// validFieldName matches only alphanumeric characters and underscores.
// Field and table names are the one part of a statement that cannot be
// bound as a parameter, so they must pass this check before reaching SQL text.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidFieldName reports whether s is safe to use as a column or table
// identifier in generated SQL.
func ValidFieldName(s string) bool {
	return validFieldName.MatchString(s)
}

// Builder accumulates the parts of a single SELECT statement: projection,
// AND-joined predicates, ORDER BY clauses, an optional limit/offset window,
// and the parameters bound so far.
//
// Parameter names are drawn from one counter shared by every predicate-adding
// method, so no two bound values ever collide on a name within the same
// instance, even across repeated calls.
//
// A Builder is scoped to a single request on a single goroutine. Create a new
// one per request; concurrent mutation of a shared instance is not supported.
type Builder struct {
	table  string
	fields []string
	conds  []string
	orders []string
	params map[string]any
	limit  int // -1 means unset
	offset int // -1 means unset
	seq    int
}

// NewBuilder creates a Builder for the given table with the default "*"
// projection and no window.
func NewBuilder(table string) *Builder {
	return &Builder{
		table:  table,
		params: make(map[string]any),
		limit:  -1,
		offset: -1,
	}
}

// Select replaces the projection. Calling it with no fields keeps the
// default "*".
func (b *Builder) Select(fields ...string) *Builder {
	if len(fields) > 0 {
		b.fields = append([]string(nil), fields...)
	}
	return b
}

// bind stores value under the next parameter name and returns its placeholder.
func (b *Builder) bind(value any) string {
	name := "p" + strconv.Itoa(b.seq)
	b.seq++
	b.params[name] = value
	return "@" + name
}

// Where appends a single comparison predicate, e.g. Where("age", ">", 21).
// The value is bound as a parameter, never rendered into the text.
func (b *Builder) Where(field, operator string, value any) *Builder {
	b.conds = append(b.conds, field+" "+operator+" "+b.bind(value))
	return b
}

// WhereNull appends an IS NULL (or IS NOT NULL) predicate. No parameter
// is bound.
func (b *Builder) WhereNull(field string, isNull bool) *Builder {
	if isNull {
		b.conds = append(b.conds, field+" IS NULL")
	} else {
		b.conds = append(b.conds, field+" IS NOT NULL")
	}
	return b
}

// WhereIn appends an IN predicate with one bound parameter per value.
// An empty value list is a no-op: an absent IN restriction leaves the query
// unrestricted rather than matching nothing.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(v)
	}
	b.conds = append(b.conds, field+" IN ("+strings.Join(placeholders, ", ")+")")
	return b
}

// WhereBetween appends a BETWEEN predicate binding low and high in order.
func (b *Builder) WhereBetween(field string, low, high any) *Builder {
	b.conds = append(b.conds, field+" BETWEEN "+b.bind(low)+" AND "+b.bind(high))
	return b
}

// MultiFieldSearch appends one OR group comparing every field against the
// same bound parameter, wrapped once in wildcards:
//
//	(name LIKE @p0 OR email LIKE @p0)
//
// Empty fields or a blank term make it a no-op.
func (b *Builder) MultiFieldSearch(fields []string, term string) *Builder {
	if len(fields) == 0 || term == "" {
		return b
	}
	ph := b.bind("%" + term + "%")
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + " LIKE " + ph
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
	return b
}

// OrderBy appends an ORDER BY clause. The direction is normalized to
// ASC or DESC, defaulting to ASC. Clause order is preserved so multi-field
// sorts break ties deterministically.
func (b *Builder) OrderBy(field, direction string) *Builder {
	b.orders = append(b.orders, field+" "+NormalizeDirection(direction))
	return b
}

// Limit sets the row limit. Non-positive values are ignored, which keeps the
// limit strictly positive whenever it is set at all; metadata arithmetic
// relies on this guard rather than re-checking at read time.
func (b *Builder) Limit(n int) *Builder {
	if n > 0 {
		b.limit = n
	}
	return b
}

// Offset sets the row offset. Negative values are ignored.
func (b *Builder) Offset(n int) *Builder {
	if n >= 0 {
		b.offset = n
	}
	return b
}

// Paginate applies a 1-based page window: offset (page-1)*pageSize and limit
// pageSize. It is a no-op unless both values are positive.
func (b *Builder) Paginate(page, pageSize int) *Builder {
	if page > 0 && pageSize > 0 {
		b.offset = (page - 1) * pageSize
		b.limit = pageSize
	}
	return b
}

// Window reports the configured limit and offset; -1 means unset.
func (b *Builder) Window() (limit, offset int) {
	return b.limit, b.offset
}

// Build renders the data statement in fixed order:
//
//	SELECT <fields> FROM <table> [WHERE ...] [ORDER BY ...] [LIMIT n] [OFFSET n]
func (b *Builder) Build() Statement {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.fields) == 0 {
		sb.WriteString(defaultProjection)
	} else {
		sb.WriteString(strings.Join(b.fields, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	b.writeWhere(&sb)
	if len(b.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orders, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(b.limit))
	}
	if b.offset >= 0 {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa(b.offset))
	}
	return Statement{SQL: sb.String(), Params: maps.Clone(b.params)}
}

// CountStatement derives the count-shaped variant of the statement: the same
// predicate set with a COUNT(*) projection and no ordering or window. The
// builder itself is left untouched, so Build after CountStatement still
// renders the originally configured statement.
func (b *Builder) CountStatement() Statement {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.table)
	b.writeWhere(&sb)
	return Statement{SQL: sb.String(), Params: maps.Clone(b.params)}
}

func (b *Builder) writeWhere(sb *strings.Builder) {
	if len(b.conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.conds, " AND "))
	}
}
