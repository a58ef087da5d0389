package dto

import (
	"invacc/internal/core/types"
	"invacc/internal/domain"
	"invacc/internal/domain/documents/inventory"
)

// DocumentListQuery is the query string of GET /documents.
type DocumentListQuery struct {
	WarehouseID string `form:"warehouseId"`
	DocTypeCode string `form:"docTypeCode"`
	Kind        string `form:"kind" binding:"omitempty,oneof=receipt dispatch"`
	Status      string `form:"status" binding:"omitempty,oneof=ready_for_conversion partially_settled issued"`
	Year        string `form:"year" binding:"omitempty,len=4,numeric"`
	Search      string `form:"search"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter maps the query to the domain filter.
func (q DocumentListQuery) ToFilter() inventory.ListFilter {
	f := inventory.ListFilter{
		ListFilter: domain.ListFilter{
			Search: q.Search,
			Limit:  q.Limit,
			Offset: q.Offset,
		},
		WarehouseID: types.NewCode(q.WarehouseID),
		DocTypeCode: types.NewCode(q.DocTypeCode),
		Kind:        inventory.Kind(q.Kind),
		Year:        q.Year,
	}
	if q.Status != "" {
		s := inventory.Status(q.Status)
		f.Status = &s
	}
	return f
}

// DocumentResponse is an inventory document with derived display fields.
type DocumentResponse struct {
	inventory.Document
	Remaining   types.Money `json:"remaining"`
	StatusLabel string      `json:"statusLabel"`
	KindLabel   string      `json:"kindLabel"`
}

// FromDocument creates DocumentResponse from inventory.Document.
func FromDocument(d inventory.Document) DocumentResponse {
	return DocumentResponse{
		Document:    d,
		Remaining:   d.Remaining(),
		StatusLabel: d.Status.Label(),
		KindLabel:   d.Kind.Label(),
	}
}
