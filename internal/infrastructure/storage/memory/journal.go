package memory

import (
	"context"
	"slices"

	"invacc/internal/core/apperror"
	"invacc/internal/domain"
	"invacc/internal/domain/journal"
)

// ListGeneratedDocs implements journal.Repository. Newest documents come first.
func (s *Store) ListGeneratedDocs(_ context.Context, filter journal.ListFilter) (domain.ListResult[journal.GeneratedDocInfo], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]journal.GeneratedDocInfo, 0, len(s.data.generated))
	for i := len(s.data.generated) - 1; i >= 0; i-- {
		g := s.data.generated[i]
		if filter.ApprovalStatus != nil && g.ApprovalStatus != *filter.ApprovalStatus {
			continue
		}
		if filter.SourceDocID != "" && !slices.Contains(g.SourceDocIDs, filter.SourceDocID) {
			continue
		}
		if filter.Search != "" && !matchesGenerated(&g, filter.Search) {
			continue
		}
		matched = append(matched, g)
	}
	return domain.Paginate(matched, filter.ListFilter), nil
}

// GetGeneratedDoc implements journal.Repository.
func (s *Store) GetGeneratedDoc(_ context.Context, docID string) (journal.GeneratedDocInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.generatedIndex(docID)
	if i < 0 {
		return journal.GeneratedDocInfo{}, apperror.NewNotFound("generated_document", docID)
	}
	return s.data.generated[i], nil
}

// AppendGeneratedDoc implements journal.Repository and conversion.Store.
func (s *Store) AppendGeneratedDoc(ctx context.Context, info journal.GeneratedDocInfo) error {
	unlock := s.lockWrite(ctx)
	defer unlock()

	if s.generatedIndex(info.ID) >= 0 {
		return apperror.NewValidation("generated document already exists").WithDetail("id", info.ID)
	}
	s.data.generated = append(s.data.generated, info)
	return nil
}

// UpdateGeneratedDoc implements journal.Repository.
func (s *Store) UpdateGeneratedDoc(ctx context.Context, info journal.GeneratedDocInfo) error {
	unlock := s.lockWrite(ctx)
	defer unlock()

	i := s.generatedIndex(info.ID)
	if i < 0 {
		return apperror.NewNotFound("generated_document", info.ID)
	}
	s.data.generated[i] = info
	return nil
}

// DeleteGeneratedDoc implements journal.Repository.
func (s *Store) DeleteGeneratedDoc(ctx context.Context, docID string) error {
	unlock := s.lockWrite(ctx)
	defer unlock()

	i := s.generatedIndex(docID)
	if i < 0 {
		return apperror.NewNotFound("generated_document", docID)
	}
	s.data.generated = slices.Delete(s.data.generated, i, i+1)
	return nil
}

func (s *Store) generatedIndex(docID string) int {
	return slices.IndexFunc(s.data.generated, func(g journal.GeneratedDocInfo) bool {
		return g.ID == docID
	})
}

func matchesGenerated(g *journal.GeneratedDocInfo, q string) bool {
	return containsFold(g.Number, q) || containsFold(g.Entry.Description, q) ||
		slices.ContainsFunc(g.SourceWarehouseNames, func(n string) bool { return containsFold(n, q) })
}
