// Package reports provides financial and inventory reports built from
// approved accounting documents and inventory balances.
package reports

import (
	"invacc/internal/core/types"
	"invacc/internal/domain/documents/inventory"
)

// --- Period ---

// Period limits a report to entries dated between FromDate and ToDate,
// both inclusive, in YYYY/MM/DD form. Empty bounds are open.
type Period struct {
	FromDate string
	ToDate   string
}

// Contains reports whether date falls inside the period.
// Dates are zero-padded, so string order is calendar order.
func (p Period) Contains(date string) bool {
	if p.FromDate != "" && date < p.FromDate {
		return false
	}
	if p.ToDate != "" && date > p.ToDate {
		return false
	}
	return true
}

// --- Trial Balance ---

// TrialBalanceRow is the turnover of one account.
type TrialBalanceRow struct {
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Debit       types.Money `json:"debit"`
	Credit      types.Money `json:"credit"`
	// Balance is Debit minus Credit.
	Balance types.Money `json:"balance"`
}

// TrialBalance aggregates approved entries per account, sorted by account code.
type TrialBalance struct {
	FromDate      string            `json:"fromDate,omitempty"`
	ToDate        string            `json:"toDate,omitempty"`
	Rows          []TrialBalanceRow `json:"rows"`
	DocumentCount int               `json:"documentCount"`

	// Summary
	TotalDebit  types.Money `json:"totalDebit"`
	TotalCredit types.Money `json:"totalCredit"`
}

// --- General Ledger ---

// GeneralLedgerFilter selects the account and period of a ledger.
type GeneralLedgerFilter struct {
	AccountCode string
	Period
}

// LedgerRow is one posting to the account with the running balance after it.
type LedgerRow struct {
	Date           string      `json:"date"`
	Number         string      `json:"number"`
	GeneratedDocID string      `json:"generatedDocId"`
	Description    string      `json:"description"`
	Debit          types.Money `json:"debit"`
	Credit         types.Money `json:"credit"`
	Balance        types.Money `json:"balance"`
}

// GeneralLedger lists the postings of one account in date order.
type GeneralLedger struct {
	AccountCode    string      `json:"accountCode"`
	AccountName    string      `json:"accountName"`
	FromDate       string      `json:"fromDate,omitempty"`
	ToDate         string      `json:"toDate,omitempty"`
	Rows           []LedgerRow `json:"rows"`
	TotalDebit     types.Money `json:"totalDebit"`
	TotalCredit    types.Money `json:"totalCredit"`
	ClosingBalance types.Money `json:"closingBalance"`
}

// --- Inventory Summary ---

// InventorySummaryFilter narrows the documents the summary covers.
type InventorySummaryFilter struct {
	WarehouseID types.Code
	// Year is the four-digit prefix of the document date, e.g. "1403".
	Year string
}

// StatusSummary counts documents in one conversion status.
type StatusSummary struct {
	Status          inventory.Status `json:"status"`
	Label           string           `json:"label"`
	Count           int              `json:"count"`
	TotalAmount     types.Money      `json:"totalAmount"`
	ConvertedAmount types.Money      `json:"convertedAmount"`
}

// WarehouseSummary is the conversion progress of one warehouse.
type WarehouseSummary struct {
	WarehouseID     types.Code  `json:"warehouseId"`
	WarehouseName   string      `json:"warehouseName"`
	DocumentCount   int         `json:"documentCount"`
	TotalAmount     types.Money `json:"totalAmount"`
	ConvertedAmount types.Money `json:"convertedAmount"`
	RemainingAmount types.Money `json:"remainingAmount"`
}

// InventorySummary shows how much of the inventory value has been converted.
type InventorySummary struct {
	DocumentCount   int         `json:"documentCount"`
	TotalAmount     types.Money `json:"totalAmount"`
	ConvertedAmount types.Money `json:"convertedAmount"`
	RemainingAmount types.Money `json:"remainingAmount"`
	// ConversionRatio is ConvertedAmount as a percentage of TotalAmount.
	ConversionRatio types.Money `json:"conversionRatio"`

	// GeneratedCount and GeneratedAmount cover all generated accounting documents, drafts included.
	GeneratedCount  int         `json:"generatedCount"`
	GeneratedAmount types.Money `json:"generatedAmount"`

	ByStatus    []StatusSummary    `json:"byStatus"`
	ByWarehouse []WarehouseSummary `json:"byWarehouse"`
}
