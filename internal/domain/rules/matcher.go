package rules

import (
	"invacc/internal/core/types"
	"invacc/internal/domain/documents/inventory"
)

// FindActiveRule returns the first active rule whose key equals the
// document's (warehouse, document type). Declaration order breaks ties.
func FindActiveRule(doc *inventory.Document, set []AccountingRule) (*AccountingRule, bool) {
	return FindActiveRuleByKey(Key{WarehouseID: doc.WarehouseID, DocTypeCode: doc.DocTypeCode}, set)
}

// FindActiveRuleByKey is FindActiveRule for a bare key.
func FindActiveRuleByKey(key Key, set []AccountingRule) (*AccountingRule, bool) {
	key = Key{
		WarehouseID: types.NewCode(key.WarehouseID.String()),
		DocTypeCode: types.NewCode(key.DocTypeCode.String()),
	}
	for i := range set {
		r := &set[i]
		if !r.IsActive {
			continue
		}
		if types.NewCode(r.WarehouseID.String()) == key.WarehouseID &&
			types.NewCode(r.DocTypeCode.String()) == key.DocTypeCode {
			return r, true
		}
	}
	return nil, false
}

// Active filters set down to active rules, preserving order.
func Active(set []AccountingRule) []AccountingRule {
	out := make([]AccountingRule, 0, len(set))
	for _, r := range set {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

// Applicable returns the distinct active rules that match docs, in first-seen order.
func Applicable(docs []inventory.Document, set []AccountingRule) []AccountingRule {
	out := make([]AccountingRule, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i := range docs {
		r, ok := FindActiveRule(&docs[i], set)
		if !ok {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, *r)
	}
	return out
}
