package memory

import (
	"context"
	"slices"

	"invacc/internal/domain/rules"
)

// ListRules implements rules.Repository.
func (s *Store) ListRules(_ context.Context) ([]rules.AccountingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data.rules), nil
}

// ListActiveRules implements conversion.Store.
func (s *Store) ListActiveRules(_ context.Context) ([]rules.AccountingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return rules.Active(s.data.rules), nil
}

// ReplaceRules implements rules.Repository. The set is validated before it is stored.
func (s *Store) ReplaceRules(ctx context.Context, set []rules.AccountingRule) error {
	if err := rules.ValidateSet(set); err != nil {
		return err
	}

	unlock := s.lockWrite(ctx)
	defer unlock()
	s.data.rules = slices.Clone(set)
	return nil
}
