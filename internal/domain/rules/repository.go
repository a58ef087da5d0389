package rules

import "context"

// Repository stores the accounting rule set. The set is replaced as a whole.
type Repository interface {
	ListRules(ctx context.Context) ([]AccountingRule, error)
	ReplaceRules(ctx context.Context, set []AccountingRule) error
}
