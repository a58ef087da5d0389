package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"invacc/internal/domain/catalogs"
	"invacc/internal/infrastructure/http/v1/dto"
)

// CatalogHandler serves read-only reference data.
type CatalogHandler struct {
	*BaseHandler
	repo catalogs.Repository
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(base *BaseHandler, repo catalogs.Repository) *CatalogHandler {
	return &CatalogHandler{BaseHandler: base, repo: repo}
}

// Warehouses handles GET /warehouses.
func (h *CatalogHandler) Warehouses(c *gin.Context) {
	serveList(h.BaseHandler, c, h.repo.ListWarehouses)
}

// DocTypes handles GET /doc-types.
func (h *CatalogHandler) DocTypes(c *gin.Context) {
	serveList(h.BaseHandler, c, h.repo.ListDocTypes)
}

// Accounts handles GET /accounts.
func (h *CatalogHandler) Accounts(c *gin.Context) {
	serveList(h.BaseHandler, c, h.repo.ListAccounts)
}

// CostCenters handles GET /cost-centers.
func (h *CatalogHandler) CostCenters(c *gin.Context) {
	serveList(h.BaseHandler, c, h.repo.ListCostCenters)
}

func serveList[T any](h *BaseHandler, c *gin.Context, list func(ctx context.Context) ([]T, error)) {
	items, err := list(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewItemsResponse(items))
}
