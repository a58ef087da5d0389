package conversion

import (
	"fmt"
	"regexp"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/rules"
)

// Solar Hijri calendar date, e.g. 1403/05/21.
var accountingDatePattern = regexp.MustCompile(`^14\d{2}/(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])$`)

// ValidateRuleCoverage fails with NoActiveTemplate for the first document
// that has no active matching rule.
func ValidateRuleCoverage(docs []inventory.Document, set []rules.AccountingRule, warehouses []catalogs.Warehouse) error {
	for i := range docs {
		doc := &docs[i]
		if _, ok := rules.FindActiveRule(doc, set); !ok {
			return noActiveTemplate(doc, warehouses)
		}
	}
	return nil
}

func noActiveTemplate(doc *inventory.Document, warehouses []catalogs.Warehouse) *apperror.AppError {
	return apperror.NewNoActiveTemplate(doc.ID, doc.DocNo, doc.DocTypeDescription, warehouseName(doc, warehouses)).
		WithDetail("warehouse_id", doc.WarehouseID.String()).
		WithDetail("doc_type_code", doc.DocTypeCode.String())
}

func warehouseName(doc *inventory.Document, warehouses []catalogs.Warehouse) string {
	name := catalogs.WarehouseName(warehouses, doc.WarehouseID)
	if name == doc.WarehouseID.String() && doc.WarehouseName != "" {
		return doc.WarehouseName
	}
	return name
}

// ValidateAmount requires 0 < amount <= sum of the documents' remaining balances.
func ValidateAmount(amount types.Money, docs []inventory.Document) error {
	if !amount.IsPositive() {
		return apperror.NewAmountNotPositive(amount.String())
	}
	remaining := inventory.SumRemaining(docs)
	if amount.GreaterThan(remaining) {
		return apperror.NewAmountExceedsRemaining(amount.String(), types.FormatMoney(remaining))
	}
	return nil
}

// ResolveDate returns the accounting date to use. A date is mandatory when
// more than one document is converted; a single document falls back to its own date.
func ResolveDate(date string, docs []inventory.Document) (string, error) {
	if date == "" {
		if len(docs) > 1 {
			return "", apperror.NewDateRequired(len(docs))
		}
		if len(docs) == 1 {
			return docs[0].Date, nil
		}
		return "", nil
	}
	if !ValidDate(date) {
		return "", apperror.NewDateFormatInvalid(date)
	}
	return date, nil
}

// ValidDate reports whether date matches YYYY/MM/DD with a 14xx year.
func ValidDate(date string) bool {
	return accountingDatePattern.MatchString(date)
}

// DefaultDescription returns the header text used when the caller gave none:
// the matching rule's document description, or a reference to the document number.
func DefaultDescription(doc *inventory.Document, rule *rules.AccountingRule) string {
	if rule != nil && rule.DocDescription != "" {
		return rule.DocDescription
	}
	return fmt.Sprintf("بر اساس سند انبار شماره %s", doc.DocNo)
}

// Preflight reports rule coverage and open balance for every document.
func Preflight(docs []inventory.Document, set []rules.AccountingRule, warehouses []catalogs.Warehouse) []Check {
	out := make([]Check, 0, len(docs))
	for i := range docs {
		doc := &docs[i]
		c := Check{
			DocumentID: doc.ID,
			DocNo:      doc.DocNo,
			Remaining:  doc.Remaining(),
		}
		if r, ok := rules.FindActiveRule(doc, set); ok {
			c.HasRule = true
			c.RuleID = r.ID
		} else {
			c.Message = noActiveTemplate(doc, warehouses).UserMessage
		}
		out = append(out, c)
	}
	return out
}

func checkUnique(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			return apperror.NewValidation("document id must not be empty")
		}
		if _, dup := seen[id]; dup {
			return apperror.NewValidation("document selected more than once").WithDetail("document_id", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
