package dto

import (
	"invacc/internal/core/types"
	"invacc/internal/domain/reports"
)

// ReportPeriodQuery is the date range shared by the financial reports.
type ReportPeriodQuery struct {
	FromDate string `form:"fromDate"`
	ToDate   string `form:"toDate"`
}

// ToPeriod maps the query to the report period.
func (q ReportPeriodQuery) ToPeriod() reports.Period {
	return reports.Period{FromDate: q.FromDate, ToDate: q.ToDate}
}

// GeneralLedgerQuery is the query string of GET /reports/general-ledger.
type GeneralLedgerQuery struct {
	AccountCode string `form:"accountCode" binding:"required"`
	ReportPeriodQuery
}

// ToFilter maps the query to the ledger filter.
func (q GeneralLedgerQuery) ToFilter() reports.GeneralLedgerFilter {
	return reports.GeneralLedgerFilter{AccountCode: q.AccountCode, Period: q.ToPeriod()}
}

// InventorySummaryQuery is the query string of GET /reports/inventory-summary.
type InventorySummaryQuery struct {
	WarehouseID string `form:"warehouseId"`
	Year        string `form:"year" binding:"omitempty,len=4,numeric"`
}

// ToFilter maps the query to the summary filter.
func (q InventorySummaryQuery) ToFilter() reports.InventorySummaryFilter {
	return reports.InventorySummaryFilter{WarehouseID: types.NewCode(q.WarehouseID), Year: q.Year}
}
