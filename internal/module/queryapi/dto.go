package queryapi

import (
	"net/url"
	"strings"

	"github.com/querybase/querybase/internal/domain"
	"github.com/querybase/querybase/internal/query"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// reservedParams lists query parameter names used for pagination, sorting,
// and mode selection, not for filtering.
var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"sort":      true,
	"strict":    true,
}

// ListParams carries the reserved query parameters of the compact GET form.
type ListParams struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Sort     string `form:"sort"`
	Strict   bool   `form:"strict"`
}

// ToRequest converts the compact form into a full query request. Every
// non-reserved query parameter becomes a filter: a key ending in "__like"
// produces a LIKE condition wrapped in wildcards, anything else an equality
// condition. Sort is a comma-separated list of "field:direction" pairs.
func (p *ListParams) ToRequest(values url.Values) *query.Request {
	req := &query.Request{}

	filters := make(map[string]query.Condition)
	for key, vals := range values {
		if reservedParams[key] || len(vals) == 0 || vals[0] == "" {
			continue
		}
		if field, ok := strings.CutSuffix(key, "__like"); ok {
			filters[field] = query.NewOperatorCondition(query.OpLike, "%"+vals[0]+"%")
		} else {
			filters[key] = query.NewCondition(vals[0])
		}
	}
	if len(filters) > 0 {
		req.Filters = filters
	}

	if p.Sort != "" {
		var spec query.SortSpec
		for _, part := range strings.Split(p.Sort, ",") {
			field, direction, _ := strings.Cut(strings.TrimSpace(part), ":")
			if field == "" {
				continue
			}
			spec = append(spec, query.SortField{Field: field, Direction: direction})
		}
		req.Sort = spec
	}

	page := p.Page
	if page < 1 {
		page = defaultPage
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	req.Pagination = &query.PaginationSpec{Page: page, PageSize: pageSize}

	return req
}

// EntityInfo is the wire shape of one registered entity.
type EntityInfo struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

func toEntityInfos(entities []domain.Entity) []EntityInfo {
	out := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		out = append(out, EntityInfo{Name: e.Name, Fields: e.Fields})
	}
	return out
}
