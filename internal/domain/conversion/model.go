// Package conversion turns inventory documents into accounting journal entries.
//
// A conversion validates rule coverage, amount and date up front, asks the
// Generator for a journal entry and, only when that succeeds, allocates the
// converted amount over the documents inside a store transaction.
package conversion

import (
	"context"

	"invacc/internal/core/types"
	"invacc/internal/domain/allocation"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/rules"
)

// Mode selects how selected documents are turned into journal entries.
type Mode string

const (
	// ModeIndividual produces one journal entry per document.
	ModeIndividual Mode = "individual"
	// ModeConsolidated produces one journal entry for all documents.
	ModeConsolidated Mode = "consolidated"
)

// Store is the document and rule state consumed and mutated by conversions.
type Store interface {
	// GetDocuments returns documents in the order of ids.
	GetDocuments(ctx context.Context, ids []string) ([]inventory.Document, error)
	ListActiveRules(ctx context.Context) ([]rules.AccountingRule, error)
	ListWarehouses(ctx context.Context) ([]catalogs.Warehouse, error)
	UpdateDocument(ctx context.Context, id string, converted types.Money, status inventory.Status) error
	AppendGeneratedDoc(ctx context.Context, info journal.GeneratedDocInfo) error
}

// GenerationRequest is everything the remote model needs to draft an entry.
type GenerationRequest struct {
	Mode        Mode
	Documents   []inventory.Document
	Rules       []rules.AccountingRule
	Warehouses  []catalogs.Warehouse
	Amount      types.Money
	Date        string
	Description string
}

// Generator drafts a journal entry for a request.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (journal.Entry, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req GenerationRequest) (journal.Entry, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, req GenerationRequest) (journal.Entry, error) {
	return f(ctx, req)
}

// Observer receives conversion outcomes for metrics.
type Observer interface {
	ConversionFinished(mode Mode, outcome string)
	Allocated(amount types.Money)
}

type nopObserver struct{}

func (nopObserver) ConversionFinished(Mode, string) {}
func (nopObserver) Allocated(types.Money)           {}

// ConsolidatedRequest converts several documents into one entry.
type ConsolidatedRequest struct {
	DocumentIDs []string
	Amount      types.Money
	// Date is an accounting date in YYYY/MM/DD form; optional for a single document.
	Date        string
	Description string
}

// ConsolidatedResult is the outcome of a consolidated conversion.
type ConsolidatedResult struct {
	Generated   journal.GeneratedDocInfo
	Allocations []allocation.Allocation
}

// IndividualRequest converts each document into its own entry.
type IndividualRequest struct {
	DocumentIDs []string
}

// IndividualResult is the outcome for one document of an individual conversion.
// Exactly one of Generated and Err is set.
type IndividualResult struct {
	DocumentID string
	DocNo      string
	Generated  *journal.GeneratedDocInfo
	Allocation *allocation.Allocation
	Err        error
}

// Check is the pre-flight verdict for one document.
type Check struct {
	DocumentID string      `json:"documentId"`
	DocNo      string      `json:"docNo"`
	HasRule    bool        `json:"hasRule"`
	RuleID     string      `json:"ruleId,omitempty"`
	Remaining  types.Money `json:"remaining"`
	Message    string      `json:"message,omitempty"`
}
