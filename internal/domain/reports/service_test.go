package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/core/types"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
)

type fakeRepo struct {
	generated []journal.GeneratedDocInfo
	docs      []inventory.Document
	accounts  []catalogs.Account

	lastFilter inventory.ListFilter
}

func (r *fakeRepo) GeneratedDocsByStatus(_ context.Context, status *journal.ApprovalStatus) ([]journal.GeneratedDocInfo, error) {
	var out []journal.GeneratedDocInfo
	for _, g := range r.generated {
		if status == nil || g.ApprovalStatus == *status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeRepo) MatchingDocuments(_ context.Context, filter inventory.ListFilter) ([]inventory.Document, error) {
	r.lastFilter = filter
	var out []inventory.Document
	for i := range r.docs {
		if filter.Matches(&r.docs[i]) {
			out = append(out, r.docs[i])
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAccounts(context.Context) ([]catalogs.Account, error) {
	return r.accounts, nil
}

func generated(number, date string, status journal.ApprovalStatus, amount int64) journal.GeneratedDocInfo {
	e := journal.Entry{
		Date:        date,
		Description: "سند " + number,
		Lines: []journal.Line{
			{AccountCode: "510101", AccountName: "بهای تمام شده", Debit: types.NewMoney(amount)},
			{AccountCode: "110501", Credit: types.NewMoney(amount), Description: "کاهش موجودی"},
		},
	}
	e.RecomputeTotals()
	return journal.GeneratedDocInfo{ID: "g-" + number, Number: number, Entry: e, ApprovalStatus: status}
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		generated: []journal.GeneratedDocInfo{
			generated("JV-2026-00010", "1403/05/20", journal.StatusApproved, 300),
			generated("JV-2026-00002", "1403/05/20", journal.StatusApproved, 200),
			generated("JV-2026-00003", "1403/04/01", journal.StatusApproved, 100),
			generated("JV-2026-00004", "1403/04/15", journal.StatusDraft, 5_000),
		},
		accounts: []catalogs.Account{
			{ID: "110501", Name: "موجودی کالا"},
			{ID: "510101", Name: "بهای تمام شده کالای فروش رفته"},
		},
	}
}

func TestTrialBalance_ApprovedOnly(t *testing.T) {
	svc := NewService(newRepo())

	tb, err := svc.TrialBalance(context.Background(), Period{})
	require.NoError(t, err)

	assert.Equal(t, 3, tb.DocumentCount)
	require.Len(t, tb.Rows, 2)
	assert.Equal(t, "110501", tb.Rows[0].AccountCode)
	assert.Equal(t, "موجودی کالا", tb.Rows[0].AccountName, "name falls back to the catalog")
	assert.True(t, tb.Rows[0].Credit.Equal(types.NewMoney(600)))
	assert.True(t, tb.Rows[0].Balance.Equal(types.NewMoney(-600)))
	assert.Equal(t, "510101", tb.Rows[1].AccountCode)
	assert.True(t, tb.Rows[1].Debit.Equal(types.NewMoney(600)))
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestTrialBalance_Period(t *testing.T) {
	svc := NewService(newRepo())

	tb, err := svc.TrialBalance(context.Background(), Period{FromDate: "1403/05/01", ToDate: "1403/05/31"})
	require.NoError(t, err)

	assert.Equal(t, 2, tb.DocumentCount)
	assert.True(t, tb.TotalDebit.Equal(types.NewMoney(500)))
}

func TestTrialBalance_InvalidPeriod(t *testing.T) {
	svc := NewService(newRepo())
	ctx := context.Background()

	_, err := svc.TrialBalance(ctx, Period{FromDate: "2024-01-01"})
	assert.True(t, apperror.IsCode(err, apperror.CodeDateFormatInvalid))

	_, err = svc.TrialBalance(ctx, Period{FromDate: "1403/06/01", ToDate: "1403/05/01"})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestGeneralLedger_RunningBalanceInDateAndNumberOrder(t *testing.T) {
	svc := NewService(newRepo())

	gl, err := svc.GeneralLedger(context.Background(), GeneralLedgerFilter{AccountCode: "510101"})
	require.NoError(t, err)

	assert.Equal(t, "بهای تمام شده کالای فروش رفته", gl.AccountName)
	require.Len(t, gl.Rows, 3)

	var numbers []string
	for _, r := range gl.Rows {
		numbers = append(numbers, r.Number)
	}
	// same date: 00002 before 00010
	assert.Equal(t, []string{"JV-2026-00003", "JV-2026-00002", "JV-2026-00010"}, numbers)

	assert.True(t, gl.Rows[0].Balance.Equal(types.NewMoney(100)))
	assert.True(t, gl.Rows[1].Balance.Equal(types.NewMoney(300)))
	assert.True(t, gl.Rows[2].Balance.Equal(types.NewMoney(600)))
	assert.True(t, gl.ClosingBalance.Equal(types.NewMoney(600)))
	assert.Equal(t, "سند JV-2026-00003", gl.Rows[0].Description, "entry description when the line has none")
}

func TestGeneralLedger_CreditAccountAndLineDescription(t *testing.T) {
	svc := NewService(newRepo())

	gl, err := svc.GeneralLedger(context.Background(), GeneralLedgerFilter{AccountCode: "110501"})
	require.NoError(t, err)

	require.Len(t, gl.Rows, 3)
	assert.Equal(t, "کاهش موجودی", gl.Rows[0].Description)
	assert.True(t, gl.ClosingBalance.Equal(types.NewMoney(-600)))
	assert.True(t, gl.TotalCredit.Equal(types.NewMoney(600)))
}

func TestGeneralLedger_RequiresAccount(t *testing.T) {
	svc := NewService(newRepo())

	_, err := svc.GeneralLedger(context.Background(), GeneralLedgerFilter{})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func inventoryRepo() *fakeRepo {
	repo := newRepo()
	docs := []inventory.Document{
		{ID: "a", Date: "1403/01/10", WarehouseID: "1000", WarehouseName: "انبار محصول", TotalAmount: types.NewMoney(1_000), ConvertedAmount: types.NewMoney(1_000)},
		{ID: "b", Date: "1403/02/10", WarehouseID: "1000", WarehouseName: "انبار محصول", TotalAmount: types.NewMoney(2_000), ConvertedAmount: types.NewMoney(500)},
		{ID: "c", Date: "1403/03/10", WarehouseID: "1001", WarehouseName: "انبار مواد", TotalAmount: types.NewMoney(5_000), ConvertedAmount: types.Zero()},
		{ID: "d", Date: "1402/12/10", WarehouseID: "1001", WarehouseName: "انبار مواد", TotalAmount: types.NewMoney(2_000), ConvertedAmount: types.Zero()},
	}
	for i := range docs {
		docs[i].Normalize()
	}
	repo.docs = docs
	return repo
}

func TestInventorySummary(t *testing.T) {
	svc := NewService(inventoryRepo())

	sum, err := svc.InventorySummary(context.Background(), InventorySummaryFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, sum.DocumentCount)
	assert.True(t, sum.TotalAmount.Equal(types.NewMoney(10_000)))
	assert.True(t, sum.ConvertedAmount.Equal(types.NewMoney(1_500)))
	assert.True(t, sum.RemainingAmount.Equal(types.NewMoney(8_500)))
	assert.True(t, sum.ConversionRatio.Equal(types.NewMoney(15)))

	require.Len(t, sum.ByStatus, 3)
	assert.Equal(t, inventory.StatusReadyForConversion, sum.ByStatus[0].Status)
	assert.Equal(t, 2, sum.ByStatus[0].Count)
	assert.Equal(t, 1, sum.ByStatus[1].Count)
	assert.Equal(t, 1, sum.ByStatus[2].Count)

	require.Len(t, sum.ByWarehouse, 2)
	assert.Equal(t, types.Code("1001"), sum.ByWarehouse[0].WarehouseID, "largest value first")
	assert.True(t, sum.ByWarehouse[1].RemainingAmount.Equal(types.NewMoney(1_500)))

	assert.Equal(t, 4, sum.GeneratedCount)
	assert.True(t, sum.GeneratedAmount.Equal(types.NewMoney(5_600)), "drafts are included")
}

func TestInventorySummary_YearFilter(t *testing.T) {
	svc := NewService(inventoryRepo())

	sum, err := svc.InventorySummary(context.Background(), InventorySummaryFilter{Year: "1402"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DocumentCount)
}

func TestInventorySummary_StorekeeperScope(t *testing.T) {
	repo := inventoryRepo()
	svc := NewService(repo)
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID: "u4", Roles: []string{appctx.RoleStorekeeper}, WarehouseID: "1000",
	})

	sum, err := svc.InventorySummary(ctx, InventorySummaryFilter{})
	require.NoError(t, err)
	assert.Equal(t, types.Code("1000"), repo.lastFilter.WarehouseID)
	assert.Equal(t, 2, sum.DocumentCount)
	assert.Zero(t, sum.GeneratedCount)

	_, err = svc.InventorySummary(ctx, InventorySummaryFilter{WarehouseID: "1001"})
	assert.True(t, apperror.IsCode(err, apperror.CodeForbidden))
}
