package query

import "errors"

// Translation errors. They are only returned in Strict mode; Lenient mode
// drops the offending input instead (the documented skip rules).
var (
	ErrUnsupportedOperator = errors.New("unsupported filter operator")
	ErrInvalidCondition    = errors.New("invalid condition")
	ErrInvalidField        = errors.New("invalid field name")
	ErrInvalidPagination   = errors.New("invalid pagination value")
)
