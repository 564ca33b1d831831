package queryapi

import (
	"github.com/gin-gonic/gin"

	"github.com/querybase/querybase/internal/domain"
)

// Module bundles the query API service and handler and registers its routes.
type Module struct {
	handler *QueryHandler
}

// NewModule wires the query API module: store → service → handler.
func NewModule(store domain.QueryStore, entities []domain.Entity) *Module {
	svc := NewQueryService(store, entities)
	return &Module{handler: NewQueryHandler(svc)}
}

// RegisterRoutes registers the query API routes on the given group.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/entities", m.handler.Entities)
	api.POST("/query/:entity", m.handler.Query)
	api.GET("/query/:entity", m.handler.List)
}
