package memory

import (
	"context"

	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
)

// GeneratedDocsByStatus implements reports.Repository.
func (s *Store) GeneratedDocsByStatus(_ context.Context, status *journal.ApprovalStatus) ([]journal.GeneratedDocInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]journal.GeneratedDocInfo, 0, len(s.data.generated))
	for _, g := range s.data.generated {
		if status != nil && g.ApprovalStatus != *status {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// MatchingDocuments implements reports.Repository. Documents keep import order.
func (s *Store) MatchingDocuments(_ context.Context, filter inventory.ListFilter) ([]inventory.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]inventory.Document, 0, len(s.data.docOrder))
	for _, docID := range s.data.docOrder {
		d := s.data.docs[docID]
		if filter.Matches(&d) {
			out = append(out, d)
		}
	}
	return out, nil
}
