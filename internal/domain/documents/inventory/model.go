// Package inventory provides the warehouse inventory document (رسید / حواله انبار)
// that is converted into accounting journal entries.
package inventory

import (
	"strings"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
)

// Kind is the broad class of a warehouse movement.
type Kind string

const (
	KindReceipt  Kind = "receipt"  // رسید
	KindDispatch Kind = "dispatch" // حواله
)

// Label returns the Persian display name.
func (k Kind) Label() string {
	switch k {
	case KindReceipt:
		return "رسید انبار"
	case KindDispatch:
		return "حواله انبار"
	default:
		return string(k)
	}
}

// Item is a document line.
type Item struct {
	Row            int         `json:"row" yaml:"row"`
	ItemID         string      `json:"itemId" yaml:"itemId" validate:"required"`
	ItemName       string      `json:"itemName" yaml:"itemName"`
	Quantity       types.Money `json:"quantity" yaml:"quantity"`
	UnitPrice      types.Money `json:"unitPrice" yaml:"unitPrice"`
	TotalPrice     types.Money `json:"totalPrice" yaml:"totalPrice"`
	CostCenterID   types.Code  `json:"costCenterId,omitempty" yaml:"costCenterId"`
	CostCenterName string      `json:"costCenterName,omitempty" yaml:"costCenterName"`
}

// Document is a single warehouse transaction record.
// TotalAmount never changes after import; ConvertedAmount only grows.
type Document struct {
	ID                 string      `json:"id" yaml:"id" validate:"required"`
	DocNo              string      `json:"docNo" yaml:"docNo" validate:"required"`
	Date               string      `json:"date" yaml:"date" validate:"required"`
	WarehouseID        types.Code  `json:"warehouseId" yaml:"warehouseId" validate:"required"`
	WarehouseName      string      `json:"warehouseName" yaml:"warehouseName"`
	Kind               Kind        `json:"kind" yaml:"kind" validate:"omitempty,oneof=receipt dispatch"`
	DocTypeCode        types.Code  `json:"docTypeCode" yaml:"docTypeCode" validate:"required"`
	DocTypeDescription string      `json:"docTypeDescription" yaml:"docTypeDescription"`
	ProductCode        string      `json:"productCode,omitempty" yaml:"productCode"`
	RequestNumber      string      `json:"requestNumber,omitempty" yaml:"requestNumber"`
	ReferenceDoc       string      `json:"referenceDoc,omitempty" yaml:"referenceDoc"`
	TotalAmount        types.Money `json:"totalAmount" yaml:"totalAmount"`
	ConvertedAmount    types.Money `json:"convertedAmount" yaml:"convertedAmount"`
	Status             Status      `json:"status" yaml:"-"`
	Details            []Item      `json:"details" yaml:"details" validate:"dive"`

	// Version increments on every balance update.
	Version int64 `json:"version" yaml:"-"`
}

// Remaining returns the amount still open for conversion.
func (d *Document) Remaining() types.Money {
	r := d.TotalAmount.Sub(d.ConvertedAmount)
	if r.IsNegative() {
		return types.Zero()
	}
	return r
}

// IsFullyConverted reports whether nothing is left to convert.
func (d *Document) IsFullyConverted() bool {
	return !d.Remaining().IsPositive()
}

// Year returns the leading year component of the document date, e.g. "1403".
func (d *Document) Year() string {
	year, _, _ := strings.Cut(d.Date, "/")
	return year
}

// Normalize recomputes the derived status.
func (d *Document) Normalize() {
	d.Status = DeriveStatus(d.TotalAmount, d.ConvertedAmount)
}

// Validate checks the monetary invariants of an imported document.
func (d *Document) Validate() error {
	if !d.TotalAmount.IsPositive() {
		return apperror.NewValidation("total amount must be positive").
			WithDetail("field", "totalAmount").
			WithDetail("document_id", d.ID)
	}
	if d.ConvertedAmount.IsNegative() || d.ConvertedAmount.GreaterThan(d.TotalAmount) {
		return apperror.NewValidation("converted amount must be between 0 and total amount").
			WithDetail("field", "convertedAmount").
			WithDetail("document_id", d.ID)
	}

	if len(d.Details) > 0 {
		sum := types.Zero()
		for _, it := range d.Details {
			sum = sum.Add(it.TotalPrice)
		}
		if !sum.Equal(d.TotalAmount) {
			return apperror.NewValidation("line totals must sum to total amount").
				WithDetail("field", "details").
				WithDetail("document_id", d.ID).
				WithDetail("lines_total", sum.String()).
				WithDetail("total_amount", d.TotalAmount.String())
		}
	}
	return nil
}

// ApplyConversion records delta as converted and updates status.
func (d *Document) ApplyConversion(delta types.Money) {
	d.ConvertedAmount = d.ConvertedAmount.Add(delta)
	d.Status = DeriveStatus(d.TotalAmount, d.ConvertedAmount)
	d.Version++
}

// SumRemaining adds up the open balance of docs.
func SumRemaining(docs []Document) types.Money {
	total := types.Zero()
	for i := range docs {
		total = total.Add(docs[i].Remaining())
	}
	return total
}

// matchesSearch does a case-insensitive substring match on the searchable fields.
func (d *Document) matchesSearch(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range []string{d.DocNo, d.WarehouseName, d.DocTypeDescription, d.ProductCode, d.RequestNumber, d.ReferenceDoc} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
