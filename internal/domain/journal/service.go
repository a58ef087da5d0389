package journal

import (
	"context"
	"fmt"
	"time"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/core/tx"
	"invacc/internal/domain"
	"invacc/internal/domain/audit"
	"invacc/pkg/logger"
)

// Service provides the draft/approve workflow for generated documents.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a new journal service.
func NewService(repo Repository, txManager tx.Manager, recorder audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     recorder,
	}
}

// BatchItem is the outcome of a batch operation for one document.
type BatchItem struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error error  `json:"-"`
}

// List returns generated documents matching filter.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[GeneratedDocInfo], error) {
	filter.ListFilter = filter.ListFilter.Normalize()
	return s.repo.ListGeneratedDocs(ctx, filter)
}

// Get returns a single generated document.
func (s *Service) Get(ctx context.Context, id string) (GeneratedDocInfo, error) {
	return s.repo.GetGeneratedDoc(ctx, id)
}

// Approve moves a balanced draft to approved. Approving an approved document is a no-op.
func (s *Service) Approve(ctx context.Context, id string) (GeneratedDocInfo, error) {
	var result GeneratedDocInfo

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.approveInTx(ctx, id)
		result = doc
		return err
	})
	if err != nil {
		return GeneratedDocInfo{}, err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "سند حسابداری تصویب شد", map[string]any{
		"generatedDocId": id,
		"number":         result.Number,
	})
	logger.Info(ctx, "generated document approved", "id", id, "number", result.Number)
	return result, nil
}

// ApproveMany approves each id independently; one failure does not stop the rest.
func (s *Service) ApproveMany(ctx context.Context, ids []string) ([]BatchItem, error) {
	if len(ids) == 0 {
		return nil, apperror.NewValidation("no documents selected")
	}

	items := make([]BatchItem, 0, len(ids))
	approved := make([]string, 0, len(ids))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			if _, err := s.approveInTx(ctx, id); err != nil {
				items = append(items, BatchItem{ID: id, Error: err})
				continue
			}
			items = append(items, BatchItem{ID: id, OK: true})
			approved = append(approved, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "تصویب گروهی اسناد حسابداری", map[string]any{
		"approvedCount": len(approved),
		"docIds":        approved,
	})
	return items, nil
}

func (s *Service) approveInTx(ctx context.Context, id string) (GeneratedDocInfo, error) {
	doc, err := s.repo.GetGeneratedDoc(ctx, id)
	if err != nil {
		return GeneratedDocInfo{}, err
	}
	if !doc.IsDraft() {
		return doc, nil
	}
	if err := doc.Entry.ValidateForApproval(); err != nil {
		return GeneratedDocInfo{}, err
	}

	now := time.Now().UTC()
	doc.ApprovalStatus = StatusApproved
	doc.ApprovedAt = &now
	doc.ApprovedBy = appctx.GetUserID(ctx)

	if err := s.repo.UpdateGeneratedDoc(ctx, doc); err != nil {
		return GeneratedDocInfo{}, fmt.Errorf("update generated doc: %w", err)
	}
	return doc, nil
}

// UpdateEntry replaces the lines of a draft. Totals are recomputed from the
// lines and must balance to a non-zero amount.
func (s *Service) UpdateEntry(ctx context.Context, id string, entry Entry) (GeneratedDocInfo, error) {
	entry.RecomputeTotals()
	if err := entry.Validate(); err != nil {
		return GeneratedDocInfo{}, err
	}
	if err := entry.ValidateForApproval(); err != nil {
		return GeneratedDocInfo{}, err
	}

	var result GeneratedDocInfo
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetGeneratedDoc(ctx, id)
		if err != nil {
			return err
		}
		if !doc.IsDraft() {
			return apperror.NewDocumentApproved(id)
		}
		doc.Entry = entry
		if err := s.repo.UpdateGeneratedDoc(ctx, doc); err != nil {
			return fmt.Errorf("update generated doc: %w", err)
		}
		result = doc
		return nil
	})
	if err != nil {
		return GeneratedDocInfo{}, err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "سند حسابداری ویرایش شد", map[string]any{"generatedDocId": id})
	return result, nil
}

// Delete removes a draft. Inventory balances are not restored.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.deleteInTx(ctx, id)
	})
	if err != nil {
		return err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "سند حسابداری حذف شد", map[string]any{"generatedDocId": id})
	return nil
}

// DeleteMany removes each draft independently.
func (s *Service) DeleteMany(ctx context.Context, ids []string) ([]BatchItem, error) {
	if len(ids) == 0 {
		return nil, apperror.NewValidation("no documents selected")
	}

	items := make([]BatchItem, 0, len(ids))
	deleted := make([]string, 0, len(ids))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			if err := s.deleteInTx(ctx, id); err != nil {
				items = append(items, BatchItem{ID: id, Error: err})
				continue
			}
			items = append(items, BatchItem{ID: id, OK: true})
			deleted = append(deleted, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "حذف گروهی اسناد حسابداری", map[string]any{
		"deletedCount": len(deleted),
		"docIds":       deleted,
	})
	return items, nil
}

func (s *Service) deleteInTx(ctx context.Context, id string) error {
	doc, err := s.repo.GetGeneratedDoc(ctx, id)
	if err != nil {
		return err
	}
	if !doc.IsDraft() {
		return apperror.NewDocumentApproved(id)
	}
	return s.repo.DeleteGeneratedDoc(ctx, id)
}
