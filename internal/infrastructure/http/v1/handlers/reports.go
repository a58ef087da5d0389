package handlers

import (
	"github.com/gin-gonic/gin"

	"invacc/internal/domain/reports"
	"invacc/internal/infrastructure/http/v1/dto"
)

// ReportHandler serves financial and inventory reports.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{BaseHandler: base, service: service}
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	var q dto.ReportPeriodQuery
	if !h.BindQuery(c, &q) {
		return
	}

	report, err := h.service.TrialBalance(c.Request.Context(), q.ToPeriod())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// GeneralLedger handles GET /reports/general-ledger.
func (h *ReportHandler) GeneralLedger(c *gin.Context) {
	var q dto.GeneralLedgerQuery
	if !h.BindQuery(c, &q) {
		return
	}

	report, err := h.service.GeneralLedger(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// InventorySummary handles GET /reports/inventory-summary.
func (h *ReportHandler) InventorySummary(c *gin.Context) {
	var q dto.InventorySummaryQuery
	if !h.BindQuery(c, &q) {
		return
	}

	report, err := h.service.InventorySummary(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}
