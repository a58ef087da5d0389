package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invacc/internal/core/apperror"
	"invacc/internal/core/types"
	"invacc/internal/domain"
	"invacc/internal/domain/audit"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/internal/domain/rules"
	"invacc/pkg/numerator"
)

func doc(id, wh, dt, date string, total, converted int64) inventory.Document {
	return inventory.Document{
		ID: id, DocNo: "N" + id, Date: date,
		WarehouseID: types.Code(wh), DocTypeCode: types.Code(dt),
		TotalAmount:     types.NewMoney(total),
		ConvertedAmount: types.NewMoney(converted),
	}
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	ctx := context.Background()
	require.NoError(t, s.PutDocuments(ctx, []inventory.Document{
		doc("a", "1000", "40", "1403/01/10", 2_500_000, 0),
		doc("b", "1000", "40", "1403/02/10", 800_000, 300_000),
		doc("c", "1001", "10", "1402/11/01", 100, 100),
	}))
	require.NoError(t, s.ReplaceRules(ctx, []rules.AccountingRule{{
		ID: "r1", IsActive: true, WarehouseID: "1000", DocTypeCode: "40",
		Actions: []rules.Action{
			{TransactionType: rules.Debit, Account: "510101"},
			{TransactionType: rules.Credit, Account: "110501"},
		},
	}}))
	s.SetCatalogs(ctx, Catalogs{Warehouses: []catalogs.Warehouse{{ID: "1000", Name: "انبار محصول"}}})
	return s
}

func TestPutDocuments_DerivesStatusAndCanonicalizesCodes(t *testing.T) {
	s := New()
	d := doc("x", "01000", "040", "1403/01/01", 1000, 400)
	require.NoError(t, s.PutDocuments(context.Background(), []inventory.Document{d}))

	got, err := s.GetDocument(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, inventory.StatusPartiallySettled, got.Status)
	assert.Equal(t, types.Code("1000"), got.WarehouseID)
	assert.Equal(t, types.Code("40"), got.DocTypeCode)
}

func TestPutDocuments_RejectsInvalid(t *testing.T) {
	s := New()
	err := s.PutDocuments(context.Background(), []inventory.Document{doc("x", "1", "1", "1403/01/01", 0, 0)})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	res, err := s.ListDocuments(context.Background(), inventory.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestListDocuments_Filters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	issued := inventory.StatusIssued

	tests := []struct {
		name   string
		filter inventory.ListFilter
		want   []string
	}{
		{"all in import order", inventory.ListFilter{}, []string{"a", "b", "c"}},
		{"warehouse", inventory.ListFilter{WarehouseID: "1000"}, []string{"a", "b"}},
		{"doc type", inventory.ListFilter{DocTypeCode: "10"}, []string{"c"}},
		{"status", inventory.ListFilter{Status: &issued}, []string{"c"}},
		{"year", inventory.ListFilter{Year: "1403"}, []string{"a", "b"}},
		{"search", inventory.ListFilter{ListFilter: domain.ListFilter{Search: "nb"}}, []string{"b"}},
		{"page", inventory.ListFilter{ListFilter: domain.ListFilter{Limit: 1, Offset: 1}}, []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.ListDocuments(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, len(res.Items))
			for i, d := range res.Items {
				ids[i] = d.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetDocuments_PreservesOrderAndReportsMissing(t *testing.T) {
	s := seeded(t)

	docs, err := s.GetDocuments(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)

	_, err = s.GetDocuments(context.Background(), []string{"a", "zzz"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateDocument_Bounds(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateDocument(ctx, "a", types.NewMoney(1_000_000), inventory.StatusPartiallySettled))
	got, _ := s.GetDocument(ctx, "a")
	assert.Equal(t, int64(1), got.Version)

	err := s.UpdateDocument(ctx, "a", types.NewMoney(500_000), inventory.StatusPartiallySettled)
	assert.Error(t, err, "converted amount must not shrink")

	err = s.UpdateDocument(ctx, "a", types.NewMoney(3_000_000), inventory.StatusIssued)
	assert.Error(t, err, "converted amount must not exceed total")

	err = s.UpdateDocument(ctx, "a", types.NewMoney(2_500_000), inventory.StatusPartiallySettled)
	assert.Error(t, err, "status must agree with amounts")

	assert.True(t, apperror.IsNotFound(s.UpdateDocument(ctx, "zzz", types.Zero(), inventory.StatusReadyForConversion)))
}

func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.RunInTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.UpdateDocument(ctx, "a", types.NewMoney(2_500_000), inventory.StatusIssued))
		require.NoError(t, s.AppendGeneratedDoc(ctx, journal.GeneratedDocInfo{ID: "g1"}))
		require.NoError(t, s.AppendLog(ctx, audit.Entry{ID: "l1"}))

		// nested call joins the outer transaction
		return s.RunInTransaction(ctx, func(context.Context) error { return boom })
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.GetDocument(ctx, "a")
	assert.True(t, got.ConvertedAmount.IsZero())
	assert.Equal(t, inventory.StatusReadyForConversion, got.Status)

	_, err = s.GetGeneratedDoc(ctx, "g1")
	assert.True(t, apperror.IsNotFound(err))

	logs, _ := s.ListLogs(ctx, 0)
	assert.Len(t, logs, 1, "audit log survives rollback")
}

func TestRunInTransaction_Commits(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	err := s.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.UpdateDocument(ctx, "a", types.NewMoney(2_500_000), inventory.StatusIssued)
	})
	require.NoError(t, err)

	got, _ := s.GetDocument(ctx, "a")
	assert.Equal(t, inventory.StatusIssued, got.Status)
}

func TestReplaceRules_ValidatesSet(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	r := rules.AccountingRule{
		ID: "r2", IsActive: true, WarehouseID: "1000", DocTypeCode: "40",
		Actions: []rules.Action{{TransactionType: rules.Debit, Account: "1"}},
	}
	existing, _ := s.ListRules(ctx)
	err := s.ReplaceRules(ctx, append(existing, r))
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))

	r.IsActive = false
	require.NoError(t, s.ReplaceRules(ctx, append(existing, r)))

	all, _ := s.ListRules(ctx)
	active, _ := s.ListActiveRules(ctx)
	assert.Len(t, all, 2)
	assert.Len(t, active, 1)
}

func TestGeneratedDocs_CRUD(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, id := range []string{"g1", "g2", "g3"} {
		require.NoError(t, s.AppendGeneratedDoc(ctx, journal.GeneratedDocInfo{
			ID: id, Number: "JV-" + id, ApprovalStatus: journal.StatusDraft, SourceDocIDs: []string{"d-" + id},
		}))
	}
	assert.Error(t, s.AppendGeneratedDoc(ctx, journal.GeneratedDocInfo{ID: "g1"}))

	g2, err := s.GetGeneratedDoc(ctx, "g2")
	require.NoError(t, err)
	g2.ApprovalStatus = journal.StatusApproved
	require.NoError(t, s.UpdateGeneratedDoc(ctx, g2))
	require.NoError(t, s.DeleteGeneratedDoc(ctx, "g1"))
	assert.True(t, apperror.IsNotFound(s.DeleteGeneratedDoc(ctx, "g1")))

	res, err := s.ListGeneratedDocs(ctx, journal.ListFilter{})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "g3", res.Items[0].ID, "newest first")

	approved := journal.StatusApproved
	res, err = s.ListGeneratedDocs(ctx, journal.ListFilter{ApprovalStatus: &approved})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "g2", res.Items[0].ID)

	res, err = s.ListGeneratedDocs(ctx, journal.ListFilter{SourceDocID: "d-g3"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "g3", res.Items[0].ID)
}

func TestReportQueries(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	for i, st := range []journal.ApprovalStatus{journal.StatusApproved, journal.StatusDraft, journal.StatusApproved} {
		id := string(rune('1' + i))
		require.NoError(t, s.AppendGeneratedDoc(ctx, journal.GeneratedDocInfo{ID: "g" + id, ApprovalStatus: st}))
	}

	approved := journal.StatusApproved
	got, err := s.GeneratedDocsByStatus(ctx, &approved)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g1", got[0].ID, "creation order")
	assert.Equal(t, "g3", got[1].ID)

	all, err := s.GeneratedDocsByStatus(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	docs, err := s.MatchingDocuments(ctx, inventory.ListFilter{
		ListFilter:  domain.ListFilter{Limit: 1},
		WarehouseID: "1000",
	})
	require.NoError(t, err)
	require.Len(t, docs, 2, "pagination is ignored")
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
}

func TestListLogs_NewestFirstWithLimit(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.AppendLog(ctx, audit.Entry{ID: id}))
	}

	logs, err := s.ListLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "3", logs[0].ID)
	assert.Equal(t, "2", logs[1].ID)
}

// Two conversions racing for the same balance must never over-convert it.
func TestConcurrentConversions_NeverExceedTotal(t *testing.T) {
	s := seeded(t)
	gen := conversion.GeneratorFunc(func(_ context.Context, req conversion.GenerationRequest) (journal.Entry, error) {
		e := journal.Entry{Lines: []journal.Line{
			{AccountCode: "510101", Debit: req.Amount},
			{AccountCode: "110501", Credit: req.Amount},
		}}
		e.RecomputeTotals()
		return e, nil
	})
	svc := conversion.NewService(s, gen, s, numerator.New(), s, conversion.Options{})

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ConvertConsolidated(context.Background(), conversion.ConsolidatedRequest{
				DocumentIDs: []string{"a"},
				Amount:      types.NewMoney(1_000_000),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t,
			apperror.IsConcurrentModification(err) || apperror.IsCode(err, apperror.CodeAmountOutOfRange),
			"unexpected error: %v", err)
	}

	got, err := s.GetDocument(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 2, succeeded)
	assert.True(t, got.ConvertedAmount.Equal(types.NewMoney(2_000_000)))
	assert.Equal(t, inventory.StatusPartiallySettled, got.Status)

	generated, err := s.ListGeneratedDocs(context.Background(), journal.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), generated.TotalCount)
}

func TestPing_RequiresCatalogs(t *testing.T) {
	s := New()
	ctx := context.Background()
	assert.Error(t, s.Ping(ctx))

	s.SetCatalogs(ctx, Catalogs{Warehouses: []catalogs.Warehouse{{ID: "1000", Name: "انبار محصول"}}})
	assert.NoError(t, s.Ping(ctx))
}
