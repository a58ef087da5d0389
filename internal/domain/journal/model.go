// Package journal provides accounting journal entries produced by conversions
// and the draft/approve workflow around them.
package journal

import (
	"time"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
)

// Line is one article of a journal entry.
// Exactly one of Debit/Credit is non-zero; all-zero lines are tolerated.
type Line struct {
	Row         int         `json:"row"`
	AccountCode string      `json:"accountCode"`
	AccountName string      `json:"accountName"`
	Debit       types.Money `json:"debit"`
	Credit      types.Money `json:"credit"`
	Description string      `json:"description"`
	CostCenter1 string      `json:"costCenter1,omitempty"`
	CostCenter2 string      `json:"costCenter2,omitempty"`
	CostCenter3 string      `json:"costCenter3,omitempty"`
}

// Entry is a double-entry accounting document.
type Entry struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	TotalDebit  types.Money `json:"totalDebit"`
	TotalCredit types.Money `json:"totalCredit"`
	Lines       []Line      `json:"lines"`
}

// LineSums returns the debit and credit column totals.
func (e *Entry) LineSums() (debit, credit types.Money) {
	debit, credit = types.Zero(), types.Zero()
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// RecomputeTotals sets header totals from the lines and renumbers rows.
func (e *Entry) RecomputeTotals() {
	for i := range e.Lines {
		e.Lines[i].Row = i + 1
	}
	e.TotalDebit, e.TotalCredit = e.LineSums()
}

// IsBalanced reports whether debit and credit columns agree.
func (e *Entry) IsBalanced() bool {
	d, c := e.LineSums()
	return d.Equal(c)
}

// Validate checks the arithmetic of the entry: every line is one-sided and
// non-negative, header totals match the columns, and debit equals credit.
func (e *Entry) Validate() error {
	for _, l := range e.Lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return apperror.NewValidation("line amounts must not be negative").
				WithDetail("row", l.Row)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return apperror.NewValidation("line must be either debit or credit").
				WithDetail("row", l.Row)
		}
	}

	debit, credit := e.LineSums()
	if !debit.Equal(e.TotalDebit) || !credit.Equal(e.TotalCredit) {
		return apperror.NewValidation("header totals do not match line sums").
			WithDetail("total_debit", e.TotalDebit.String()).
			WithDetail("total_credit", e.TotalCredit.String()).
			WithDetail("lines_debit", debit.String()).
			WithDetail("lines_credit", credit.String())
	}
	if !debit.Equal(credit) {
		return apperror.NewUnbalancedEntry(debit.String(), credit.String())
	}
	return nil
}

// ValidateForApproval additionally rejects empty entries.
func (e *Entry) ValidateForApproval() error {
	if len(e.Lines) == 0 {
		return apperror.NewValidation("entry has no lines")
	}
	debit, credit := e.LineSums()
	if !debit.Equal(credit) {
		return apperror.NewUnbalancedEntry(debit.String(), credit.String())
	}
	if debit.IsZero() {
		return apperror.NewUnbalancedEntry(debit.String(), credit.String()).
			WithUserMessage("جمع بدهکار و بستانکار نمی‌تواند صفر باشد.")
	}
	return nil
}

// ApprovalStatus is the workflow state of a generated document.
type ApprovalStatus string

const (
	StatusDraft    ApprovalStatus = "draft"
	StatusApproved ApprovalStatus = "approved"
)

// Label returns the Persian display name.
func (s ApprovalStatus) Label() string {
	switch s {
	case StatusDraft:
		return "پیش‌نویس"
	case StatusApproved:
		return "تصویب شده"
	default:
		return string(s)
	}
}

// GeneratedDocInfo binds an entry to the inventory documents it came from.
type GeneratedDocInfo struct {
	ID                   string         `json:"id"`
	Number               string         `json:"number"`
	Entry                Entry          `json:"entry"`
	SourceDocIDs         []string       `json:"sourceDocIds"`
	SourceWarehouseNames []string       `json:"sourceWarehouseNames"`
	ApprovalStatus       ApprovalStatus `json:"approvalStatus"`
	CreatedAt            time.Time      `json:"createdAt"`
	CreatedBy            string         `json:"createdBy"`
	ApprovedAt           *time.Time     `json:"approvedAt,omitempty"`
	ApprovedBy           string         `json:"approvedBy,omitempty"`
}

// IsDraft reports whether the document may still be edited or deleted.
func (g *GeneratedDocInfo) IsDraft() bool {
	return g.ApprovalStatus == StatusDraft
}

// UniqueStrings returns values without duplicates, keeping first occurrence order.
func UniqueStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
