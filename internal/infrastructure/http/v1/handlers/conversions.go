package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invacc/internal/domain/conversion"
	"invacc/internal/infrastructure/http/v1/dto"
)

// ConversionHandler runs document-to-journal conversions.
type ConversionHandler struct {
	*BaseHandler
	service *conversion.Service
}

// NewConversionHandler creates a new conversion handler.
func NewConversionHandler(base *BaseHandler, service *conversion.Service) *ConversionHandler {
	return &ConversionHandler{BaseHandler: base, service: service}
}

// Preflight handles POST /conversions/preflight.
func (h *ConversionHandler) Preflight(c *gin.Context) {
	var req dto.PreflightRequest
	if !h.BindJSON(c, &req) {
		return
	}

	checks, err := h.service.Preflight(c.Request.Context(), req.DocumentIDs)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewItemsResponse(checks))
}

// Consolidated handles POST /conversions/consolidated.
func (h *ConversionHandler) Consolidated(c *gin.Context) {
	var req dto.ConsolidatedRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.ConvertConsolidated(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.ConsolidatedResponse{
		Generated:   result.Generated,
		Allocations: result.Allocations,
	})
}

// Individual handles POST /conversions/individual.
// Responds 200 when every document converted and 207 when any failed.
func (h *ConversionHandler) Individual(c *gin.Context) {
	var req dto.IndividualRequest
	if !h.BindJSON(c, &req) {
		return
	}

	results, err := h.service.ConvertIndividual(c.Request.Context(), conversion.IndividualRequest{
		DocumentIDs: req.DocumentIDs,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.FromIndividualResults(results)
	status := http.StatusOK
	if resp.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}
