package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
	"invacc/internal/domain/documents/inventory"
)

func rule(id, wh, dt string, active bool) AccountingRule {
	return AccountingRule{
		ID:          id,
		IsActive:    active,
		WarehouseID: types.Code(wh),
		DocTypeCode: types.Code(dt),
		Actions: []Action{
			{TransactionType: Debit, Account: "510101"},
			{TransactionType: Credit, Account: "110501"},
		},
	}
}

func TestFindActiveRule(t *testing.T) {
	set := []AccountingRule{
		rule("r-inactive", "1000", "40", false),
		rule("r1", "1000", "40", true),
		rule("r2", "1000", "40", true),
		rule("r3", "1001", "10", true),
	}

	tests := []struct {
		name   string
		doc    inventory.Document
		wantID string
		found  bool
	}{
		{"first active match wins", inventory.Document{WarehouseID: "1000", DocTypeCode: "40"}, "r1", true},
		{"other key", inventory.Document{WarehouseID: "1001", DocTypeCode: "10"}, "r3", true},
		{"no rule", inventory.Document{WarehouseID: "9999", DocTypeCode: "99"}, "", false},
		{"leading zeros normalize", inventory.Document{WarehouseID: "1001", DocTypeCode: types.NewCode("010")}, "r3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindActiveRule(&tt.doc, set)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

func TestFindActiveRule_Deterministic(t *testing.T) {
	set := []AccountingRule{rule("r1", "1000", "40", true), rule("r2", "1000", "40", true)}
	doc := inventory.Document{WarehouseID: "1000", DocTypeCode: "40"}

	for i := 0; i < 10; i++ {
		got, ok := FindActiveRule(&doc, set)
		require.True(t, ok)
		assert.Equal(t, "r1", got.ID)
	}
}

func TestFindActiveRule_InactiveOnlyIsNone(t *testing.T) {
	set := []AccountingRule{rule("r1", "1000", "40", false)}
	doc := inventory.Document{WarehouseID: "1000", DocTypeCode: "40"}

	_, ok := FindActiveRule(&doc, set)
	assert.False(t, ok)
}

func TestApplicable_Distinct(t *testing.T) {
	set := []AccountingRule{rule("r1", "1000", "40", true), rule("r3", "1001", "10", true)}
	docs := []inventory.Document{
		{ID: "a", WarehouseID: "1000", DocTypeCode: "40"},
		{ID: "b", WarehouseID: "1000", DocTypeCode: "40"},
		{ID: "c", WarehouseID: "1001", DocTypeCode: "10"},
	}

	got := Applicable(docs, set)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r3", got[1].ID)
}

func TestValidateSet(t *testing.T) {
	t.Run("duplicate active key", func(t *testing.T) {
		err := ValidateSet([]AccountingRule{rule("r1", "1000", "40", true), rule("r2", "1000", "40", true)})
		assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
	})

	t.Run("inactive duplicate allowed", func(t *testing.T) {
		err := ValidateSet([]AccountingRule{rule("r1", "1000", "40", true), rule("r2", "1000", "40", false)})
		assert.NoError(t, err)
	})

	t.Run("bad transaction type", func(t *testing.T) {
		r := rule("r1", "1000", "40", true)
		r.Actions[0].TransactionType = "sideways"
		assert.Error(t, ValidateSet([]AccountingRule{r}))
	})

	t.Run("too many cost centers", func(t *testing.T) {
		r := rule("r1", "1000", "40", true)
		r.Actions[0].CostCenters = []types.Code{"C100", "C200", "C300", "C400"}
		assert.Error(t, r.Validate())
	})

	t.Run("no actions", func(t *testing.T) {
		r := rule("r1", "1000", "40", true)
		r.Actions = nil
		assert.Error(t, r.Validate())
	})
}

func TestDebitCreditActions(t *testing.T) {
	r := rule("r1", "1000", "40", true)
	assert.Len(t, r.DebitActions(), 1)
	assert.Len(t, r.CreditActions(), 1)
	assert.Equal(t, types.Code("510101"), r.DebitActions()[0].Account)
}
