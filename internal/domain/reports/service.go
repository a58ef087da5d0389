package reports

import (
	"context"
	"fmt"
	"sort"

	"invacc/internal/core/apperror"
	appctx "invacc/internal/core/context"
	"invacc/internal/core/types"
	"invacc/internal/domain/catalogs"
	"invacc/internal/domain/conversion"
	"invacc/internal/domain/documents/inventory"
	"invacc/internal/domain/journal"
	"invacc/pkg/numerator"
)

var hundred = types.NewMoney(100)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TrialBalance sums debit and credit per account over approved documents.
func (s *Service) TrialBalance(ctx context.Context, period Period) (*TrialBalance, error) {
	if err := period.validate(); err != nil {
		return nil, err
	}

	docs, err := s.approvedIn(ctx, period)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	rows := make(map[types.Code]*TrialBalanceRow)
	for i := range docs {
		for _, line := range docs[i].Entry.Lines {
			code := types.NewCode(line.AccountCode)
			row, ok := rows[code]
			if !ok {
				row = &TrialBalanceRow{
					AccountCode: code.String(),
					AccountName: catalogs.AccountName(accounts, code),
					Debit:       types.Zero(),
					Credit:      types.Zero(),
				}
				rows[code] = row
			}
			if row.AccountName == "" {
				row.AccountName = line.AccountName
			}
			row.Debit = row.Debit.Add(line.Debit)
			row.Credit = row.Credit.Add(line.Credit)
		}
	}

	report := &TrialBalance{
		FromDate:      period.FromDate,
		ToDate:        period.ToDate,
		Rows:          make([]TrialBalanceRow, 0, len(rows)),
		DocumentCount: len(docs),
		TotalDebit:    types.Zero(),
		TotalCredit:   types.Zero(),
	}
	for _, row := range rows {
		row.Balance = row.Debit.Sub(row.Credit)
		report.Rows = append(report.Rows, *row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountCode < report.Rows[j].AccountCode
	})

	return report, nil
}

// GeneralLedger lists the postings of one account over approved documents,
// ordered by entry date and then by document number.
func (s *Service) GeneralLedger(ctx context.Context, filter GeneralLedgerFilter) (*GeneralLedger, error) {
	code := types.NewCode(filter.AccountCode).String()
	if code == "" {
		return nil, apperror.NewValidation("accountCode is required").WithDetail("field", "accountCode")
	}
	if err := filter.Period.validate(); err != nil {
		return nil, err
	}

	docs, err := s.approvedIn(ctx, filter.Period)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Entry.Date != docs[j].Entry.Date {
			return docs[i].Entry.Date < docs[j].Entry.Date
		}
		return numerator.ParseNumber(docs[i].Number) < numerator.ParseNumber(docs[j].Number)
	})

	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	ledger := &GeneralLedger{
		AccountCode:    code,
		AccountName:    catalogs.AccountName(accounts, types.Code(code)),
		FromDate:       filter.FromDate,
		ToDate:         filter.ToDate,
		Rows:           []LedgerRow{},
		TotalDebit:     types.Zero(),
		TotalCredit:    types.Zero(),
		ClosingBalance: types.Zero(),
	}

	for i := range docs {
		doc := &docs[i]
		for _, line := range doc.Entry.Lines {
			if types.NewCode(line.AccountCode).String() != code {
				continue
			}
			if ledger.AccountName == "" {
				ledger.AccountName = line.AccountName
			}

			ledger.ClosingBalance = ledger.ClosingBalance.Add(line.Debit).Sub(line.Credit)
			ledger.TotalDebit = ledger.TotalDebit.Add(line.Debit)
			ledger.TotalCredit = ledger.TotalCredit.Add(line.Credit)

			description := line.Description
			if description == "" {
				description = doc.Entry.Description
			}
			ledger.Rows = append(ledger.Rows, LedgerRow{
				Date:           doc.Entry.Date,
				Number:         doc.Number,
				GeneratedDocID: doc.ID,
				Description:    description,
				Debit:          line.Debit,
				Credit:         line.Credit,
				Balance:        ledger.ClosingBalance,
			})
		}
	}

	return ledger, nil
}

// InventorySummary reports conversion progress by status and warehouse.
// Storekeepers only see their own warehouse and no generated document totals.
func (s *Service) InventorySummary(ctx context.Context, filter InventorySummaryFilter) (*InventorySummary, error) {
	scope, restricted := appctx.WarehouseScope(ctx)
	if restricted {
		if !filter.WarehouseID.IsEmpty() && filter.WarehouseID != scope {
			return nil, apperror.NewForbidden("warehouse is outside the user's scope").
				WithDetail("warehouse_id", filter.WarehouseID.String())
		}
		filter.WarehouseID = scope
	}

	docs, err := s.repo.MatchingDocuments(ctx, inventory.ListFilter{
		WarehouseID: filter.WarehouseID,
		Year:        filter.Year,
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summary := &InventorySummary{
		DocumentCount:   len(docs),
		TotalAmount:     types.Zero(),
		ConvertedAmount: types.Zero(),
		GeneratedAmount: types.Zero(),
		ConversionRatio: types.Zero(),
		ByStatus:        statusBuckets(),
		ByWarehouse:     []WarehouseSummary{},
	}

	byWarehouse := make(map[types.Code]*WarehouseSummary)
	order := make([]types.Code, 0)
	for i := range docs {
		doc := &docs[i]
		summary.TotalAmount = summary.TotalAmount.Add(doc.TotalAmount)
		summary.ConvertedAmount = summary.ConvertedAmount.Add(doc.ConvertedAmount)

		for j := range summary.ByStatus {
			if summary.ByStatus[j].Status == doc.Status {
				b := &summary.ByStatus[j]
				b.Count++
				b.TotalAmount = b.TotalAmount.Add(doc.TotalAmount)
				b.ConvertedAmount = b.ConvertedAmount.Add(doc.ConvertedAmount)
			}
		}

		w, ok := byWarehouse[doc.WarehouseID]
		if !ok {
			w = &WarehouseSummary{
				WarehouseID:     doc.WarehouseID,
				WarehouseName:   doc.WarehouseName,
				TotalAmount:     types.Zero(),
				ConvertedAmount: types.Zero(),
				RemainingAmount: types.Zero(),
			}
			byWarehouse[doc.WarehouseID] = w
			order = append(order, doc.WarehouseID)
		}
		w.DocumentCount++
		w.TotalAmount = w.TotalAmount.Add(doc.TotalAmount)
		w.ConvertedAmount = w.ConvertedAmount.Add(doc.ConvertedAmount)
		w.RemainingAmount = w.RemainingAmount.Add(doc.Remaining())
	}

	summary.RemainingAmount = summary.TotalAmount.Sub(summary.ConvertedAmount)
	if summary.TotalAmount.IsPositive() {
		summary.ConversionRatio = summary.ConvertedAmount.Mul(hundred).Div(summary.TotalAmount).Round(2)
	}

	for _, whID := range order {
		summary.ByWarehouse = append(summary.ByWarehouse, *byWarehouse[whID])
	}
	sort.SliceStable(summary.ByWarehouse, func(i, j int) bool {
		return summary.ByWarehouse[i].TotalAmount.GreaterThan(summary.ByWarehouse[j].TotalAmount)
	})

	if !restricted {
		generated, err := s.repo.GeneratedDocsByStatus(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("list generated documents: %w", err)
		}
		summary.GeneratedCount = len(generated)
		for i := range generated {
			summary.GeneratedAmount = summary.GeneratedAmount.Add(generated[i].Entry.TotalDebit)
		}
	}

	return summary, nil
}

func (s *Service) approvedIn(ctx context.Context, period Period) ([]journal.GeneratedDocInfo, error) {
	approved := journal.StatusApproved
	docs, err := s.repo.GeneratedDocsByStatus(ctx, &approved)
	if err != nil {
		return nil, fmt.Errorf("list approved documents: %w", err)
	}

	out := make([]journal.GeneratedDocInfo, 0, len(docs))
	for i := range docs {
		if period.Contains(docs[i].Entry.Date) {
			out = append(out, docs[i])
		}
	}
	return out, nil
}

func (p Period) validate() error {
	for _, d := range []string{p.FromDate, p.ToDate} {
		if d != "" && !conversion.ValidDate(d) {
			return apperror.NewDateFormatInvalid(d)
		}
	}
	if p.FromDate != "" && p.ToDate != "" && p.FromDate > p.ToDate {
		return apperror.NewValidation("fromDate must not be after toDate").
			WithDetail("from_date", p.FromDate).
			WithDetail("to_date", p.ToDate)
	}
	return nil
}

func statusBuckets() []StatusSummary {
	statuses := []inventory.Status{
		inventory.StatusReadyForConversion,
		inventory.StatusPartiallySettled,
		inventory.StatusIssued,
	}
	out := make([]StatusSummary, len(statuses))
	for i, st := range statuses {
		out[i] = StatusSummary{
			Status:          st,
			Label:           st.Label(),
			TotalAmount:     types.Zero(),
			ConvertedAmount: types.Zero(),
		}
	}
	return out
}
