package handlers

import (
	"github.com/gin-gonic/gin"

	"invacc/internal/domain/rules"
	"invacc/internal/infrastructure/http/v1/dto"
)

// RuleHandler serves the accounting rule set.
type RuleHandler struct {
	*BaseHandler
	service *rules.Service
}

// NewRuleHandler creates a new rule handler.
func NewRuleHandler(base *BaseHandler, service *rules.Service) *RuleHandler {
	return &RuleHandler{BaseHandler: base, service: service}
}

// List handles GET /rules.
func (h *RuleHandler) List(c *gin.Context) {
	set, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewItemsResponse(set))
}

// Replace handles PUT /rules.
func (h *RuleHandler) Replace(c *gin.Context) {
	var req dto.ReplaceRulesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	saved, err := h.service.Replace(c.Request.Context(), req.Rules)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewItemsResponse(saved))
}
