package query

// Request is the declarative description of one query: projection, filters,
// text search, sort order, and pagination. Every part is optional; an empty
// request means an unrestricted scan in the store's default order. A Request
// is built per call and should be discarded after the statement is produced.
type Request struct {
	Fields     []string             `json:"fields,omitempty"`
	Filters    map[string]Condition `json:"filters,omitempty"`
	Search     *SearchSpec          `json:"search,omitempty"`
	Sort       SortSpec             `json:"sort,omitempty"`
	Pagination *PaginationSpec      `json:"pagination,omitempty"`
}
