package conversion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/core/id"
	"invacc/internal/core/numerator"
	"invacc/internal/core/tx"
	"invacc/internal/core/types"
	"invacc/internal/domain/allocation"
	"invacc/internal/domain/audit"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/rules"
	"invacc/pkg/logger"
)

var tracer = otel.Tracer("invacc/conversion")

// Outcome labels reported to the Observer.
const (
	OutcomeSuccess           = "success"
	OutcomeRejected          = "rejected"
	OutcomeGenerationFailure = "generation_failure"
	OutcomeConflict          = "conflict"
	OutcomeError             = "error"
)

// NumberPrefix is the numbering prefix of generated accounting documents.
const NumberPrefix = "JV"

// Options tunes the conversion service.
type Options struct {
	// MaxConcurrency bounds in-flight generation calls in individual mode.
	// Zero means one call per document, all at once.
	MaxConcurrency int
	Observer       Observer
}

// Service orchestrates document-to-journal conversions.
type Service struct {
	store     Store
	generator Generator
	txManager tx.Manager
	numerator numerator.Generator
	audit     audit.Recorder
	observer  Observer

	maxConcurrency int
	now            func() time.Time
}

// NewService creates a new conversion service.
func NewService(
	store Store,
	generator Generator,
	txManager tx.Manager,
	numerator numerator.Generator,
	recorder audit.Recorder,
	opts Options,
) *Service {
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &Service{
		store:          store,
		generator:      generator,
		txManager:      txManager,
		numerator:      numerator,
		audit:          recorder,
		observer:       obs,
		maxConcurrency: opts.MaxConcurrency,
		now:            time.Now,
	}
}

// snapshot is the state a conversion validates against before the remote call.
type snapshot struct {
	docs       []inventory.Document
	rules      []rules.AccountingRule
	warehouses []catalogs.Warehouse
}

func (s *Service) load(ctx context.Context, ids []string) (*snapshot, error) {
	if len(ids) == 0 {
		return nil, apperror.NewValidation("at least one document must be selected")
	}
	if err := checkUnique(ids); err != nil {
		return nil, err
	}

	docs, err := s.store.GetDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if !appctx.HasWarehouseAccess(ctx, docs[i].WarehouseID) {
			return nil, apperror.NewForbidden("document belongs to another warehouse").
				WithDetail("document_id", docs[i].ID)
		}
	}

	active, err := s.store.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	warehouses, err := s.store.ListWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}

	return &snapshot{docs: docs, rules: active, warehouses: warehouses}, nil
}

// Preflight reports, per document, whether it can be converted.
func (s *Service) Preflight(ctx context.Context, ids []string) ([]Check, error) {
	snap, err := s.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Preflight(snap.docs, snap.rules, snap.warehouses), nil
}

// ConvertConsolidated produces one journal entry for all requested documents
// and distributes req.Amount over them in request order.
func (s *Service) ConvertConsolidated(ctx context.Context, req ConsolidatedRequest) (result *ConsolidatedResult, err error) {
	ctx, span := tracer.Start(ctx, "conversion.consolidated",
		trace.WithAttributes(
			attribute.Int("conversion.documents", len(req.DocumentIDs)),
			attribute.String("conversion.amount", req.Amount.String()),
		))
	defer func() {
		s.finish(ctx, span, ModeConsolidated, err)
	}()

	snap, err := s.load(ctx, req.DocumentIDs)
	if err != nil {
		return nil, err
	}

	if err := ValidateRuleCoverage(snap.docs, snap.rules, snap.warehouses); err != nil {
		s.recordPrecondition(ctx, err)
		return nil, err
	}
	if err := ValidateAmount(req.Amount, snap.docs); err != nil {
		return nil, err
	}
	date, err := ResolveDate(req.Date, snap.docs)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		first := &snap.docs[0]
		r, _ := rules.FindActiveRule(first, snap.rules)
		description = DefaultDescription(first, r)
	}

	entry, err := s.generate(ctx, GenerationRequest{
		Mode:        ModeConsolidated,
		Documents:   snap.docs,
		Rules:       rules.Applicable(snap.docs, snap.rules),
		Warehouses:  snap.warehouses,
		Amount:      req.Amount,
		Date:        date,
		Description: description,
	})
	if err != nil {
		audit.Record(ctx, s.audit, audit.TypeError, "خطا در صدور سند تجمیعی", map[string]any{
			"error":          userMessage(err),
			"sourceDocCount": len(snap.docs),
			"amount":         req.Amount.String(),
		})
		return nil, err
	}

	info := s.newGeneratedDoc(ctx, entry, snap.docs, snap.warehouses)

	var allocs []allocation.Allocation
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		fresh, err := s.store.GetDocuments(ctx, req.DocumentIDs)
		if err != nil {
			return err
		}
		if req.Amount.GreaterThan(inventory.SumRemaining(fresh)) {
			return apperror.NewConcurrentModification("inventory_document", req.DocumentIDs).
				WithDetail("reason", "remaining balance changed during generation")
		}

		res := allocation.Allocate(req.Amount, allocation.Candidates(fresh))
		if err := s.persist(ctx, &info, res.Allocations); err != nil {
			return err
		}
		allocs = res.Allocations
		return nil
	})
	if err != nil {
		audit.Record(ctx, s.audit, audit.TypeError, "خطا در صدور سند تجمیعی", map[string]any{
			"error":          userMessage(err),
			"sourceDocCount": len(snap.docs),
			"amount":         req.Amount.String(),
		})
		return nil, err
	}

	s.observer.Allocated(req.Amount)
	audit.Record(ctx, s.audit, audit.TypeSuccess, "صدور سند تجمیعی موفق", map[string]any{
		"generatedDocId": info.ID,
		"number":         info.Number,
		"sourceDocCount": len(snap.docs),
		"amount":         req.Amount.String(),
	})
	logger.Info(ctx, "consolidated conversion completed",
		"generated_doc_id", info.ID,
		"number", info.Number,
		"documents", len(snap.docs),
		"amount", req.Amount.String())

	return &ConsolidatedResult{Generated: info, Allocations: allocs}, nil
}

// ConvertIndividual produces one journal entry per document, each for the
// document's full remaining balance. Pre-flight failures abort the whole batch
// before any remote call; after that every document succeeds or fails on its own.
func (s *Service) ConvertIndividual(ctx context.Context, req IndividualRequest) (results []IndividualResult, err error) {
	ctx, span := tracer.Start(ctx, "conversion.individual",
		trace.WithAttributes(attribute.Int("conversion.documents", len(req.DocumentIDs))))
	defer func() {
		if err != nil {
			s.finish(ctx, span, ModeIndividual, err)
			return
		}
		span.End()
	}()

	snap, err := s.load(ctx, req.DocumentIDs)
	if err != nil {
		return nil, err
	}

	if err := ValidateRuleCoverage(snap.docs, snap.rules, snap.warehouses); err != nil {
		s.recordPrecondition(ctx, err)
		return nil, err
	}
	for i := range snap.docs {
		if err := ValidateAmount(snap.docs[i].Remaining(), snap.docs[i:i+1]); err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				appErr.WithDetail("document_id", snap.docs[i].ID)
			}
			return nil, err
		}
	}

	results = make([]IndividualResult, len(snap.docs))
	entries := make([]journal.Entry, len(snap.docs))

	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}
	for i := range snap.docs {
		doc := snap.docs[i]
		results[i] = IndividualResult{DocumentID: doc.ID, DocNo: doc.DocNo}

		g.Go(func() error {
			r, _ := rules.FindActiveRule(&doc, snap.rules)
			entry, err := s.generate(ctx, GenerationRequest{
				Mode:        ModeIndividual,
				Documents:   []inventory.Document{doc},
				Rules:       []rules.AccountingRule{*r},
				Warehouses:  snap.warehouses,
				Amount:      doc.Remaining(),
				Date:        doc.Date,
				Description: DefaultDescription(&doc, r),
			})
			if err != nil {
				results[i].Err = err
				return nil
			}
			entries[i] = entry
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for i := range snap.docs {
		doc := &snap.docs[i]
		if results[i].Err == nil {
			results[i].Err = s.commitIndividual(ctx, doc, entries[i], snap.warehouses, &results[i])
		}

		if results[i].Err != nil {
			s.observer.ConversionFinished(ModeIndividual, outcomeOf(results[i].Err))
			audit.Record(ctx, s.audit, audit.TypeError, "خطا در صدور انفرادی سند", map[string]any{
				"error":       userMessage(results[i].Err),
				"sourceDocId": doc.ID,
				"docNo":       doc.DocNo,
			})
			logger.Warn(ctx, "individual conversion failed", "document_id", doc.ID, "error", results[i].Err)
			continue
		}

		succeeded++
		s.observer.ConversionFinished(ModeIndividual, OutcomeSuccess)
		audit.Record(ctx, s.audit, audit.TypeSuccess, fmt.Sprintf("صدور سند انفرادی موفق: %s", doc.DocNo), map[string]any{
			"sourceDocId":    doc.ID,
			"generatedDocId": results[i].Generated.ID,
			"amount":         results[i].Allocation.Allocated.String(),
		})
	}

	span.SetAttributes(attribute.Int("conversion.succeeded", succeeded))
	logger.Info(ctx, "individual conversion completed", "documents", len(snap.docs), "succeeded", succeeded)
	return results, nil
}

func (s *Service) commitIndividual(
	ctx context.Context,
	doc *inventory.Document,
	entry journal.Entry,
	warehouses []catalogs.Warehouse,
	out *IndividualResult,
) error {
	amount := doc.Remaining()
	info := s.newGeneratedDoc(ctx, entry, []inventory.Document{*doc}, warehouses)

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		fresh, err := s.store.GetDocuments(ctx, []string{doc.ID})
		if err != nil {
			return err
		}
		if amount.GreaterThan(fresh[0].Remaining()) {
			return apperror.NewConcurrentModification("inventory_document", doc.ID).
				WithDetail("reason", "remaining balance changed during generation")
		}

		res := allocation.Allocate(amount, fresh)
		if err := s.persist(ctx, &info, res.Allocations); err != nil {
			return err
		}
		if len(res.Allocations) > 0 {
			out.Allocation = &res.Allocations[0]
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.observer.Allocated(amount)
	out.Generated = &info
	return nil
}

// persist writes balances and the generated document. Must run inside a transaction.
func (s *Service) persist(ctx context.Context, info *journal.GeneratedDocInfo, allocs []allocation.Allocation) error {
	for _, a := range allocs {
		if err := s.store.UpdateDocument(ctx, a.DocumentID, a.ConvertedAmount, a.Status); err != nil {
			return fmt.Errorf("update document %s: %w", a.DocumentID, err)
		}
	}

	number, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig(NumberPrefix), s.now())
	if err != nil {
		return fmt.Errorf("generate number: %w", err)
	}
	info.Number = number

	if err := s.store.AppendGeneratedDoc(ctx, *info); err != nil {
		return fmt.Errorf("append generated doc: %w", err)
	}
	return nil
}

// generate calls the generator and enforces the journal arithmetic.
func (s *Service) generate(ctx context.Context, req GenerationRequest) (journal.Entry, error) {
	entry, err := s.generator.Generate(ctx, req)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeGenerationFailure {
			return journal.Entry{}, appErr
		}
		return journal.Entry{}, apperror.NewGenerationFailure("generate journal entry", err)
	}

	if entry.Date == "" {
		entry.Date = req.Date
	}
	if entry.Description == "" {
		entry.Description = req.Description
	}
	for i := range entry.Lines {
		if entry.Lines[i].Row == 0 {
			entry.Lines[i].Row = i + 1
		}
	}

	if err := entry.Validate(); err != nil {
		return journal.Entry{}, apperror.NewGenerationFailure("generated entry failed validation", err).
			WithDetail("mode", string(req.Mode))
	}
	if err := entry.ValidateForApproval(); err != nil {
		return journal.Entry{}, apperror.NewGenerationFailure("generated entry is empty", err).
			WithDetail("mode", string(req.Mode))
	}
	if !entry.TotalDebit.Equal(req.Amount) {
		logger.Warn(ctx, "generated entry total differs from requested amount",
			"mode", req.Mode,
			"requested", req.Amount.String(),
			"total_debit", entry.TotalDebit.String())
	}
	return entry, nil
}

func (s *Service) newGeneratedDoc(
	ctx context.Context,
	entry journal.Entry,
	docs []inventory.Document,
	warehouses []catalogs.Warehouse,
) journal.GeneratedDocInfo {
	ids := make([]string, len(docs))
	names := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
		names[i] = warehouseName(&docs[i], warehouses)
	}

	return journal.GeneratedDocInfo{
		ID:                   id.NewString(),
		Entry:                entry,
		SourceDocIDs:         ids,
		SourceWarehouseNames: journal.UniqueStrings(names),
		ApprovalStatus:       journal.StatusDraft,
		CreatedAt:            s.now().UTC(),
		CreatedBy:            appctx.GetUserID(ctx),
	}
}

func (s *Service) recordPrecondition(ctx context.Context, err error) {
	details := map[string]any{"error": userMessage(err)}
	if appErr, ok := apperror.AsAppError(err); ok {
		details["document"] = map[string]any{
			"id":    appErr.Details["document_id"],
			"docNo": appErr.Details["doc_no"],
		}
	}
	audit.Record(ctx, s.audit, audit.TypeError, "پیش‌نیاز صدور سند ناموفق", details)
}

func (s *Service) finish(ctx context.Context, span trace.Span, mode Mode, err error) {
	defer span.End()

	outcome := outcomeOf(err)
	s.observer.ConversionFinished(mode, outcome)
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, outcome)
	logger.Warn(ctx, "conversion failed", "mode", mode, "outcome", outcome, "error", err)
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return OutcomeError
	}
	switch appErr.Code {
	case apperror.CodeGenerationFailure:
		return OutcomeGenerationFailure
	case apperror.CodeConcurrentModification:
		return OutcomeConflict
	case apperror.CodeInternal:
		return OutcomeError
	default:
		return OutcomeRejected
	}
}

func userMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.UserMessage != "" {
		return appErr.UserMessage
	}
	return err.Error()
}

// TotalAllocated sums the allocations of successful individual results.
func TotalAllocated(results []IndividualResult) types.Money {
	total := types.Zero()
	for _, r := range results {
		if r.Allocation != nil {
			total = total.Add(r.Allocation.Allocated)
		}
	}
	return total
}
