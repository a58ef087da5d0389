package handlers

import (
	"github.com/gin-gonic/gin"

	"invacc/internal/domain/documents/inventory"
	"invacc/internal/infrastructure/http/v1/dto"
)

// DocumentHandler serves inventory documents.
type DocumentHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(base *BaseHandler, service *inventory.Service) *DocumentHandler {
	return &DocumentHandler{BaseHandler: base, service: service}
}

// List handles GET /documents.
func (h *DocumentHandler) List(c *gin.Context) {
	var q dto.DocumentListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromListResult(result, dto.FromDocument))
}

// Get handles GET /documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDocument(doc))
}
