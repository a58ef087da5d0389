package inventory

import (
	"context"

	"invacc/internal/core/types"
	"invacc/internal/domain"
)

// Repository reads inventory documents.
type Repository interface {
	ListDocuments(ctx context.Context, filter ListFilter) (domain.ListResult[Document], error)
	GetDocument(ctx context.Context, id string) (Document, error)
}

// ListFilter for filtering inventory documents.
type ListFilter struct {
	domain.ListFilter

	WarehouseID types.Code
	DocTypeCode types.Code
	Kind        Kind
	Status      *Status
	// Year is the four-digit prefix of the document date, e.g. "1403".
	Year string
}

// Matches reports whether d passes every filter field except pagination.
func (f ListFilter) Matches(d *Document) bool {
	if !f.WarehouseID.IsEmpty() && d.WarehouseID != f.WarehouseID {
		return false
	}
	if !f.DocTypeCode.IsEmpty() && d.DocTypeCode != f.DocTypeCode {
		return false
	}
	if f.Kind != "" && d.Kind != f.Kind {
		return false
	}
	if f.Status != nil && d.Status != *f.Status {
		return false
	}
	if f.Year != "" && d.Year() != f.Year {
		return false
	}
	if f.Search != "" && !d.matchesSearch(f.Search) {
		return false
	}
	return true
}
