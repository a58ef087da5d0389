package memory

import (
	"context"
	"fmt"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
	"invacc/internal/domain"
	"invacc/internal/domain/documents/inventory"
)

// PutDocuments validates and inserts or replaces docs. Status is derived from the amounts.
func (s *Store) PutDocuments(ctx context.Context, docs []inventory.Document) error {
	prepared := make([]inventory.Document, len(docs))
	for i, d := range docs {
		d.WarehouseID = types.NewCode(d.WarehouseID.String())
		d.DocTypeCode = types.NewCode(d.DocTypeCode.String())
		if err := d.Validate(); err != nil {
			return err
		}
		d.Normalize()
		prepared[i] = d
	}

	unlock := s.lockWrite(ctx)
	defer unlock()

	for _, d := range prepared {
		if _, exists := s.data.docs[d.ID]; !exists {
			s.data.docOrder = append(s.data.docOrder, d.ID)
		}
		s.data.docs[d.ID] = d
	}
	return nil
}

// ListDocuments implements inventory.Repository. Documents keep import order.
func (s *Store) ListDocuments(_ context.Context, filter inventory.ListFilter) (domain.ListResult[inventory.Document], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]inventory.Document, 0, len(s.data.docOrder))
	for _, docID := range s.data.docOrder {
		d := s.data.docs[docID]
		if filter.Matches(&d) {
			matched = append(matched, d)
		}
	}
	return domain.Paginate(matched, filter.ListFilter), nil
}

// GetDocument implements inventory.Repository.
func (s *Store) GetDocument(_ context.Context, docID string) (inventory.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data.docs[docID]
	if !ok {
		return inventory.Document{}, apperror.NewNotFound("inventory_document", docID)
	}
	return d, nil
}

// GetDocuments implements conversion.Store. The result follows the order of ids.
func (s *Store) GetDocuments(_ context.Context, ids []string) ([]inventory.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]inventory.Document, 0, len(ids))
	for _, docID := range ids {
		d, ok := s.data.docs[docID]
		if !ok {
			return nil, apperror.NewNotFound("inventory_document", docID)
		}
		out = append(out, d)
	}
	return out, nil
}

// UpdateDocument implements conversion.Store. The converted amount may only grow
// and never past the total; status must agree with the amounts.
func (s *Store) UpdateDocument(ctx context.Context, docID string, converted types.Money, status inventory.Status) error {
	unlock := s.lockWrite(ctx)
	defer unlock()

	d, ok := s.data.docs[docID]
	if !ok {
		return apperror.NewNotFound("inventory_document", docID)
	}
	if converted.LessThan(d.ConvertedAmount) || converted.GreaterThan(d.TotalAmount) {
		return apperror.NewValidation("converted amount out of bounds").
			WithDetail("document_id", docID).
			WithDetail("converted", converted.String()).
			WithDetail("current", d.ConvertedAmount.String()).
			WithDetail("total", d.TotalAmount.String())
	}
	if want := inventory.DeriveStatus(d.TotalAmount, converted); status != want {
		return fmt.Errorf("status %q does not match converted amount (want %q) for document %s", status, want, docID)
	}

	d.ConvertedAmount = converted
	d.Status = status
	d.Version++
	s.data.docs[docID] = d
	return nil
}
