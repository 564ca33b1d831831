package queryapi

import (
	"github.com/gin-gonic/gin"

	"github.com/querybase/querybase/internal/domain"
	"github.com/querybase/querybase/internal/pkg"
	"github.com/querybase/querybase/internal/query"
)

// QueryHandler handles the query API endpoints.
type QueryHandler struct {
	svc domain.QueryService
}

// NewQueryHandler creates a new QueryHandler with the given service.
func NewQueryHandler(svc domain.QueryService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// Query handles POST /api/v1/query/:entity. The body is the full declarative
// query request; `?strict=true` turns the documented silent-skip rules into
// validation errors.
func (h *QueryHandler) Query(c *gin.Context) {
	var req query.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "malformed query request: "+err.Error(), err))
		return
	}

	result, err := h.svc.Query(c.Request.Context(), c.Param("entity"), &req, strictMode(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// List handles GET /api/v1/query/:entity, the compact query-parameter form:
// page/page_size/sort plus field=value (or field__like=value) filters.
func (h *QueryHandler) List(c *gin.Context) {
	var params ListParams
	if !pkg.BindAndValidate(c, &params) {
		return
	}

	req := params.ToRequest(c.Request.URL.Query())

	result, err := h.svc.Query(c.Request.Context(), c.Param("entity"), req, params.Strict)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Entities handles GET /api/v1/entities.
func (h *QueryHandler) Entities(c *gin.Context) {
	pkg.Success(c, toEntityInfos(h.svc.Entities()))
}

func strictMode(c *gin.Context) bool {
	switch c.Query("strict") {
	case "1", "true":
		return true
	}
	return false
}
