package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"invacc/internal/core/types"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/rules"
)

func promptFixture() conversion.GenerationRequest {
	docs := []inventory.Document{
		{
			ID: "d1", DocNo: "14030001", Date: "1403/05/01",
			WarehouseID: "1000", DocTypeCode: "40", DocTypeDescription: "حواله فروش",
			Kind:        inventory.KindDispatch,
			TotalAmount: types.NewMoney(2_500_000), ConvertedAmount: types.NewMoney(1_000_000),
		},
		{
			ID: "d2", DocNo: "14030002", Date: "1403/05/02",
			WarehouseID: "1000", DocTypeCode: "40", DocTypeDescription: "حواله فروش",
			Kind:        inventory.KindDispatch,
			TotalAmount: types.NewMoney(800_000),
		},
	}
	set := []rules.AccountingRule{
		{
			ID: "r1", IsActive: true, WarehouseID: "1000", DocTypeCode: "40",
			DocDescription: "بهای تمام شده فروش",
			Actions: []rules.Action{
				{TransactionType: rules.Debit, Account: "510101", CostCenters: []types.Code{"C100", "C200"}, LineDescription: "بهای تمام شده"},
				{TransactionType: rules.Credit, Account: "110501"},
			},
		},
		{
			ID: "r2", IsActive: true, WarehouseID: "1001", DocTypeCode: "10",
			Actions: []rules.Action{{TransactionType: rules.Debit, Account: "999999"}},
		},
		{
			ID: "r3", IsActive: false, WarehouseID: "1000", DocTypeCode: "40",
			Actions: []rules.Action{{TransactionType: rules.Debit, Account: "888888"}},
		},
	}
	return conversion.GenerationRequest{
		Mode:        conversion.ModeConsolidated,
		Documents:   docs,
		Rules:       set,
		Warehouses:  []catalogs.Warehouse{{ID: "1000", Name: "انبار محصول"}},
		Amount:      types.NewMoney(1_500_000),
		Date:        "1403/05/21",
		Description: "تبدیل تجمیعی",
	}
}

func TestBuildPrompt_Consolidated(t *testing.T) {
	p := BuildPrompt(promptFixture())

	assert.Contains(t, p, "بر اساس 2 سند انبار زیر")
	assert.Contains(t, p, "شماره: 14030001")
	assert.Contains(t, p, "شماره: 14030002")
	assert.Contains(t, p, "مبلغ کل: 2,500,000 ریال")
	assert.Contains(t, p, "مانده قابل تبدیل: 1,500,000 ریال")
	assert.Contains(t, p, "انبار محصول")
	assert.Contains(t, p, "'510101'")
	assert.Contains(t, p, "C100 - C200")
	assert.Contains(t, p, "(مراکز: ندارد)")
	assert.Contains(t, p, "1,500,000 ریال باشند")
	assert.Contains(t, p, "1403/05/21")
	assert.Contains(t, p, "تبدیل تجمیعی")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(p), "برگردان."))
}

func TestBuildPrompt_OnlyApplicableActiveRules(t *testing.T) {
	p := BuildPrompt(promptFixture())

	assert.NotContains(t, p, "999999", "rule for another warehouse must not leak into the prompt")
	assert.NotContains(t, p, "888888", "inactive rule must not leak into the prompt")
	assert.Equal(t, 1, strings.Count(p, "'510101'"), "a rule shared by two documents is listed once")
}

func TestBuildPrompt_Individual(t *testing.T) {
	req := promptFixture()
	req.Mode = conversion.ModeIndividual
	req.Documents = req.Documents[:1]
	req.Description = ""

	p := BuildPrompt(req)

	assert.Contains(t, p, "بر اساس سند انبار زیر")
	assert.NotContains(t, p, "تجمیعی")
	assert.NotContains(t, p, "14030002")
}

func TestBuildPrompt_FallsBackToDocumentWarehouseName(t *testing.T) {
	req := promptFixture()
	req.Warehouses = nil
	req.Documents[0].WarehouseName = "انبار مرکزی"

	p := BuildPrompt(req)

	assert.Contains(t, p, "(انبار مرکزی)")
}
