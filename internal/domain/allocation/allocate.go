// Package allocation distributes a converted amount across inventory documents.
//
// Distribution is greedy and follows the caller's order: each document absorbs
// as much of the amount as its remaining balance allows before the next one is
// considered. The caller controls fairness by ordering the input.
package allocation

import (
	"invacc/internal/core/types"
	"invacc/internal/domain/documents/inventory"
)

// Allocation is the effect of one conversion on a single document.
type Allocation struct {
	DocumentID      string           `json:"documentId"`
	Allocated       types.Money      `json:"allocated"`
	BalanceBefore   types.Money      `json:"balanceBefore"`
	BalanceAfter    types.Money      `json:"balanceAfter"`
	ConvertedAmount types.Money      `json:"convertedAmount"`
	Status          inventory.Status `json:"status"`
}

// Result holds the updated documents and the per-document allocations.
type Result struct {
	// Documents mirrors the input order; untouched documents are returned as-is.
	Documents []inventory.Document
	// Allocations lists only documents that received a non-zero amount.
	Allocations    []Allocation
	TotalAllocated types.Money
	// Unallocated is the part of the requested amount nobody could absorb.
	Unallocated types.Money
}

// Allocate applies amount to docs in input order and returns new document
// values. The input slice is not modified. amount must be positive; the
// caller is expected to have validated it against the remaining balance,
// any excess ends up in Result.Unallocated.
func Allocate(amount types.Money, docs []inventory.Document) Result {
	res := Result{
		Documents:      make([]inventory.Document, len(docs)),
		Allocations:    make([]Allocation, 0, len(docs)),
		TotalAllocated: types.Zero(),
	}
	copy(res.Documents, docs)

	left := amount
	for i := range res.Documents {
		if !left.IsPositive() {
			break
		}
		doc := &res.Documents[i]

		before := doc.Remaining()
		delta := types.MinMoney(left, before)
		if !delta.IsPositive() {
			continue
		}

		doc.ApplyConversion(delta)
		left = left.Sub(delta)
		res.TotalAllocated = res.TotalAllocated.Add(delta)

		res.Allocations = append(res.Allocations, Allocation{
			DocumentID:      doc.ID,
			Allocated:       delta,
			BalanceBefore:   before,
			BalanceAfter:    doc.Remaining(),
			ConvertedAmount: doc.ConvertedAmount,
			Status:          doc.Status,
		})
	}

	if left.IsPositive() {
		res.Unallocated = left
	} else {
		res.Unallocated = types.Zero()
	}
	return res
}

// Candidates drops documents that have nothing left to convert, preserving order.
func Candidates(docs []inventory.Document) []inventory.Document {
	out := make([]inventory.Document, 0, len(docs))
	for i := range docs {
		if !docs[i].IsFullyConverted() {
			out = append(out, docs[i])
		}
	}
	return out
}
