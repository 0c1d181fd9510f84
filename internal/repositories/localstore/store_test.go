package localstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	"github.com/gitala/gitala_branch/internal/repositories/localstore"
)

func newTestProvider(t *testing.T) (portsrepo.RepositoryProvider, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := localstore.NewStore(dir)
	require.NoError(t, err)
	return localstore.NewRepositoryProvider(store), dir
}

func testClient(id, name string, createdAt time.Time) domain.Client {
	return domain.Client{
		ClientID:           id,
		FullName:           name,
		Phone:              "0712345678",
		LoanAmount:         decimal.NewFromInt(500000),
		TotalPayable:       decimal.NewFromInt(600000),
		DailyPayment:       decimal.NewFromInt(20000),
		OutstandingBalance: decimal.NewFromInt(600000),
		TotalPaid:          decimal.Zero,
		Status:             domain.ClientActive,
		StartDate:          createdAt,
		CurrentLoanNumber:  1,
		AuditFields:        domain.AuditFields{CreatedAt: createdAt},
	}
}

func TestClientRepository_RoundTrip(t *testing.T) {
	provider, dir := newTestProvider(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, provider.ClientRepo.SaveClient(ctx, testClient("cl-1-a", "Nakato Grace", created)))

	// A second store over the same directory sees the saved record.
	store, err := localstore.NewStore(dir)
	require.NoError(t, err)
	reopened := localstore.NewRepositoryProvider(store)

	got, err := reopened.ClientRepo.FindClientByID(ctx, "cl-1-a")
	require.NoError(t, err)
	assert.Equal(t, "Nakato Grace", got.FullName)
	assert.True(t, got.OutstandingBalance.Equal(decimal.NewFromInt(600000)))
}

func TestClientRepository_DuplicateSaveRejected(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()
	client := testClient("cl-1-a", "Nakato Grace", time.Now())

	require.NoError(t, provider.ClientRepo.SaveClient(ctx, client))
	err := provider.ClientRepo.SaveClient(ctx, client)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestClientRepository_UpdateMissingClient(t *testing.T) {
	provider, _ := newTestProvider(t)
	err := provider.ClientRepo.UpdateClient(context.Background(), testClient("cl-none", "Ghost", time.Now()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientRepository_DeleteIsIdempotent(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	require.NoError(t, provider.ClientRepo.SaveClient(ctx, testClient("cl-1-a", "Nakato Grace", time.Now())))
	require.NoError(t, provider.ClientRepo.DeleteClient(ctx, "cl-1-a"))
	require.NoError(t, provider.ClientRepo.DeleteClient(ctx, "cl-1-a"))

	_, err := provider.ClientRepo.FindClientByID(ctx, "cl-1-a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClientRepository_PaginationNewestFirst(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"cl-1-a", "cl-2-b", "cl-3-c"} {
		client := testClient(id, "Client "+id, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, provider.ClientRepo.SaveClient(ctx, client))
	}

	page1, err := provider.ClientRepo.FindClients(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "cl-3-c", page1[0].ClientID)
	assert.Equal(t, "cl-2-b", page1[1].ClientID)

	page2, err := provider.ClientRepo.FindClients(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "cl-1-a", page2[0].ClientID)

	beyond, err := provider.ClientRepo.FindClients(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestClientRepository_StatusFilter(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	active := testClient("cl-1-a", "Nakato Grace", time.Now())
	done := testClient("cl-2-b", "Okello James", time.Now())
	done.Status = domain.ClientCompleted
	require.NoError(t, provider.ClientRepo.SaveClient(ctx, active))
	require.NoError(t, provider.ClientRepo.SaveClient(ctx, done))

	completed, err := provider.ClientRepo.FindClientsByStatus(ctx, domain.ClientCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "cl-2-b", completed[0].ClientID)
}

func TestTransactionRepository_RoundTripAndDelete(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	txn := domain.Transaction{
		TransactionID: "txn-1-a",
		ClientID:      "cl-1-a",
		ClientName:    "Nakato Grace",
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:          "09:30",
		Amount:        decimal.NewFromInt(20000),
		Status:        domain.TransactionPaid,
		RecordedBy:    "akello",
		LoanNumber:    1,
	}
	require.NoError(t, provider.TransactionRepo.SaveTransaction(ctx, txn))

	got, err := provider.TransactionRepo.FindTransactionByID(ctx, "txn-1-a")
	require.NoError(t, err)
	assert.Equal(t, "cl-1-a", got.ClientID)

	byClient, err := provider.TransactionRepo.FindTransactionsByClientID(ctx, "cl-1-a")
	require.NoError(t, err)
	assert.Len(t, byClient, 1)

	require.NoError(t, provider.TransactionRepo.DeleteTransaction(ctx, "txn-1-a"))
	require.NoError(t, provider.TransactionRepo.DeleteTransaction(ctx, "txn-1-a"))
	_, err = provider.TransactionRepo.FindTransactionByID(ctx, "txn-1-a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCashbookRepository_DateRangeFilter(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	entry := func(id string, day int) domain.CashbookEntry {
		return domain.CashbookEntry{
			EntryID:     id,
			Date:        time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			Time:        "10:00",
			Description: "Loan repayment - Nakato Grace",
			Type:        domain.CashbookIncome,
			Amount:      decimal.NewFromInt(20000),
			Status:      domain.CashbookStatusPaid,
		}
	}
	for i, id := range []string{"cb-1-a", "cb-2-b", "cb-3-c"} {
		require.NoError(t, provider.CashbookRepo.SaveEntry(ctx, entry(id, 5+5*i)))
	}

	from := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	entries, err := provider.CashbookRepo.FindEntries(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cb-2-b", entries[0].EntryID)

	all, err := provider.CashbookRepo.FindAllEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCapitalRepository_NewestFirst(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	older := domain.OwnerCapitalTransaction{
		CapitalID: "cap-1-a",
		Type:      domain.CapitalInjection,
		Amount:    decimal.NewFromInt(1000000),
		Date:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := domain.OwnerCapitalTransaction{
		CapitalID: "cap-2-b",
		Type:      domain.CapitalWithdrawal,
		Amount:    decimal.NewFromInt(200000),
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, provider.CapitalRepo.SaveCapitalTransaction(ctx, older))
	require.NoError(t, provider.CapitalRepo.SaveCapitalTransaction(ctx, newer))

	got, err := provider.CapitalRepo.FindCapitalTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cap-2-b", got[0].CapitalID)
}

func TestReportingRepository_PortfolioSummary(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()

	active := testClient("cl-1-a", "Nakato Grace", time.Now())
	active.TotalPaid = decimal.NewFromInt(100000)
	active.OutstandingBalance = decimal.NewFromInt(500000)
	done := testClient("cl-2-b", "Okello James", time.Now())
	done.Status = domain.ClientCompleted
	done.TotalPaid = decimal.NewFromInt(600000)
	done.OutstandingBalance = decimal.Zero
	require.NoError(t, provider.ClientRepo.SaveClient(ctx, active))
	require.NoError(t, provider.ClientRepo.SaveClient(ctx, done))

	summary, err := provider.ReportingRepo.PortfolioSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ActiveClients)
	assert.Equal(t, 1, summary.CompletedClients)
	assert.True(t, summary.TotalDisbursed.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, summary.TotalCollected.Equal(decimal.NewFromInt(700000)))
	assert.True(t, summary.TotalOutstanding.Equal(decimal.NewFromInt(500000)))
}

func TestReportingRepository_CashbookSummary(t *testing.T) {
	provider, _ := newTestProvider(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	income := domain.CashbookEntry{
		EntryID: "cb-1-a", Date: day, Time: "10:00",
		Description: "Loan repayment - Nakato Grace",
		Type:        domain.CashbookIncome, Amount: decimal.NewFromInt(20000),
		Status: domain.CashbookStatusPaid,
	}
	expense := domain.CashbookEntry{
		EntryID: "cb-2-b", Date: day, Time: "11:00",
		Description: "Airtime",
		Type:        domain.CashbookExpense, Amount: decimal.NewFromInt(5000),
		Status: domain.CashbookStatusExpense,
	}
	require.NoError(t, provider.CashbookRepo.SaveEntry(ctx, income))
	require.NoError(t, provider.CashbookRepo.SaveEntry(ctx, expense))

	summary, err := provider.ReportingRepo.CashbookSummary(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.EntryCount)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(20000)))
	assert.True(t, summary.TotalExpense.Equal(decimal.NewFromInt(5000)))
	assert.True(t, summary.NetPosition.Equal(decimal.NewFromInt(15000)))
}
