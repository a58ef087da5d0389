// Package rules provides accounting rules (شابلون) that map a
// (warehouse, document type) pair to ledger postings.
package rules

import (
	"fmt"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
)

// MaxCostCenters is the number of cost center slots per action.
const MaxCostCenters = 3

// TransactionType is the side of the ledger an action posts to.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Label returns the Persian display name.
func (t TransactionType) Label() string {
	switch t {
	case Debit:
		return "بدهکار"
	case Credit:
		return "بستانکار"
	default:
		return string(t)
	}
}

// Action is one posting line template.
type Action struct {
	ID              string          `json:"id" yaml:"id"`
	TransactionType TransactionType `json:"transactionType" yaml:"transactionType" validate:"required,oneof=debit credit"`
	Account         types.Code      `json:"account" yaml:"account" validate:"required"`
	CostCenters     []types.Code    `json:"costCenters" yaml:"costCenters" validate:"max=3"`
	LineDescription string          `json:"lineDescription" yaml:"lineDescription"`
}

// Key identifies the documents a rule applies to.
type Key struct {
	WarehouseID types.Code
	DocTypeCode types.Code
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.WarehouseID, k.DocTypeCode)
}

// AccountingRule is a conversion template.
type AccountingRule struct {
	ID             string     `json:"id" yaml:"id" validate:"required"`
	IsActive       bool       `json:"isActive" yaml:"isActive"`
	WarehouseID    types.Code `json:"warehouseId" yaml:"warehouseId" validate:"required"`
	DocTypeCode    types.Code `json:"docTypeCode" yaml:"docTypeCode" validate:"required"`
	DocDescription string     `json:"docDescription" yaml:"docDescription"`
	Actions        []Action   `json:"actions" yaml:"actions" validate:"required,min=1,dive"`
}

// Key returns the matching key of the rule.
func (r *AccountingRule) Key() Key {
	return Key{WarehouseID: r.WarehouseID, DocTypeCode: r.DocTypeCode}
}

// DebitActions returns actions posting to the debit side, in order.
func (r *AccountingRule) DebitActions() []Action {
	return r.actionsOf(Debit)
}

// CreditActions returns actions posting to the credit side, in order.
func (r *AccountingRule) CreditActions() []Action {
	return r.actionsOf(Credit)
}

func (r *AccountingRule) actionsOf(t TransactionType) []Action {
	out := make([]Action, 0, len(r.Actions))
	for _, a := range r.Actions {
		if a.TransactionType == t {
			out = append(out, a)
		}
	}
	return out
}

// Validate checks the schema of a rule on load, so that matching and
// prompt construction never see a malformed action.
func (r *AccountingRule) Validate() error {
	if r.WarehouseID.IsEmpty() || r.DocTypeCode.IsEmpty() {
		return apperror.NewValidation("rule must reference a warehouse and a document type").
			WithDetail("rule_id", r.ID)
	}
	if len(r.Actions) == 0 {
		return apperror.NewValidation("rule must have at least one action").
			WithDetail("rule_id", r.ID)
	}
	for i, a := range r.Actions {
		if a.TransactionType != Debit && a.TransactionType != Credit {
			return apperror.NewValidation("invalid transaction type").
				WithDetail("rule_id", r.ID).
				WithDetail("action", i).
				WithDetail("value", string(a.TransactionType))
		}
		if a.Account.IsEmpty() {
			return apperror.NewValidation("action account is required").
				WithDetail("rule_id", r.ID).
				WithDetail("action", i)
		}
		if len(a.CostCenters) > MaxCostCenters {
			return apperror.NewValidation("too many cost centers").
				WithDetail("rule_id", r.ID).
				WithDetail("action", i).
				WithDetail("max", MaxCostCenters)
		}
	}
	return nil
}

// ValidateSet validates every rule and rejects two active rules sharing a key.
func ValidateSet(set []AccountingRule) error {
	seenIDs := make(map[string]struct{}, len(set))
	activeKeys := make(map[Key]string, len(set))

	for i := range set {
		r := &set[i]
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seenIDs[r.ID]; dup {
			return apperror.NewValidation("duplicate rule id").WithDetail("rule_id", r.ID)
		}
		seenIDs[r.ID] = struct{}{}

		if !r.IsActive {
			continue
		}
		if other, dup := activeKeys[r.Key()]; dup {
			return apperror.NewValidation("more than one active rule for the same warehouse and document type").
				WithDetail("key", r.Key().String()).
				WithDetail("rule_ids", []string{other, r.ID})
		}
		activeKeys[r.Key()] = r.ID
	}
	return nil
}
