package rules

import (
	"context"
	"fmt"

	"invacc/internal/core/id"
	"invacc/internal/core/tx"
	"invacc/internal/core/types"
	"invacc/internal/core/validation"
	"invacc/internal/domain/audit"
	"invacc/pkg/logger"
)

// Service manages the accounting rule set.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a new rule service.
func NewService(repo Repository, txManager tx.Manager, recorder audit.Recorder) *Service {
	return &Service{repo: repo, txManager: txManager, audit: recorder}
}

// List returns all rules, active and inactive, in declaration order.
func (s *Service) List(ctx context.Context) ([]AccountingRule, error) {
	return s.repo.ListRules(ctx)
}

// Replace validates set and stores it in place of the current rules.
// Missing rule and action ids are generated; codes are canonicalized.
func (s *Service) Replace(ctx context.Context, set []AccountingRule) ([]AccountingRule, error) {
	prepared := make([]AccountingRule, len(set))
	for i := range set {
		prepared[i] = prepare(set[i])
		if err := validation.Struct(prepared[i]); err != nil {
			return nil, err
		}
	}
	if err := ValidateSet(prepared); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.ReplaceRules(ctx, prepared); err != nil {
			return fmt.Errorf("replace rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit.Record(ctx, s.audit, audit.TypeInfo, "ذخیره شابلون‌ها", map[string]any{
		"count":  len(prepared),
		"active": len(Active(prepared)),
	})
	logger.Info(ctx, "accounting rules replaced", "count", len(prepared))
	return prepared, nil
}

func prepare(r AccountingRule) AccountingRule {
	if r.ID == "" {
		r.ID = id.NewString()
	}
	r.WarehouseID = types.NewCode(r.WarehouseID.String())
	r.DocTypeCode = types.NewCode(r.DocTypeCode.String())

	actions := make([]Action, len(r.Actions))
	for i, a := range r.Actions {
		if a.ID == "" {
			a.ID = id.NewString()
		}
		a.Account = types.NewCode(a.Account.String())
		centers := make([]types.Code, 0, len(a.CostCenters))
		for _, c := range a.CostCenters {
			if c = types.NewCode(c.String()); !c.IsEmpty() {
				centers = append(centers, c)
			}
		}
		a.CostCenters = centers
		actions[i] = a
	}
	r.Actions = actions
	return r
}
