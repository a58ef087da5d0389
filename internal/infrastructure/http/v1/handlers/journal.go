package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"invacc/internal/domain/journal"
	"invacc/internal/infrastructure/http/v1/dto"
)

// GeneratedDocHandler serves the draft/approve workflow of generated accounting documents.
type GeneratedDocHandler struct {
	*BaseHandler
	service *journal.Service
}

// NewGeneratedDocHandler creates a new generated document handler.
func NewGeneratedDocHandler(base *BaseHandler, service *journal.Service) *GeneratedDocHandler {
	return &GeneratedDocHandler{BaseHandler: base, service: service}
}

// List handles GET /generated-docs.
func (h *GeneratedDocHandler) List(c *gin.Context) {
	var q dto.GeneratedDocListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromListResult(result, dto.FromGeneratedDoc))
}

// Get handles GET /generated-docs/:id.
func (h *GeneratedDocHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromGeneratedDoc(doc))
}

// Update handles PUT /generated-docs/:id.
func (h *GeneratedDocHandler) Update(c *gin.Context) {
	var req dto.UpdateEntryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.UpdateEntry(c.Request.Context(), c.Param("id"), req.Entry)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromGeneratedDoc(doc))
}

// Delete handles DELETE /generated-docs/:id.
func (h *GeneratedDocHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Approve handles POST /generated-docs/:id/approve.
func (h *GeneratedDocHandler) Approve(c *gin.Context) {
	doc, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromGeneratedDoc(doc))
}

// ApproveMany handles POST /generated-docs/approve.
func (h *GeneratedDocHandler) ApproveMany(c *gin.Context) {
	h.batch(c, h.service.ApproveMany)
}

// DeleteMany handles POST /generated-docs/delete.
func (h *GeneratedDocHandler) DeleteMany(c *gin.Context) {
	h.batch(c, h.service.DeleteMany)
}

func (h *GeneratedDocHandler) batch(c *gin.Context, op func(ctx context.Context, ids []string) ([]journal.BatchItem, error)) {
	var req dto.BatchIDsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	items, err := op(c.Request.Context(), req.IDs)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromBatchItems(items)
	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
