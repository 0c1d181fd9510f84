package localstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

// localReportingRepository computes the report aggregates in memory. The
// collections are small enough for a single branch that a full scan is fine.
type localReportingRepository struct {
	store *Store
}

func newLocalReportingRepository(store *Store) portsrepo.ReportingRepository {
	return &localReportingRepository{store: store}
}

var _ portsrepo.ReportingRepository = (*localReportingRepository)(nil)

func (r *localReportingRepository) PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return nil, err
	}
	summary := &domain.PortfolioSummary{
		TotalDisbursed:   decimal.Zero,
		TotalPayable:     decimal.Zero,
		TotalCollected:   decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}
	for _, c := range clients {
		switch c.Status {
		case domain.ClientActive:
			summary.ActiveClients++
		case domain.ClientCompleted:
			summary.CompletedClients++
		case domain.ClientDefaulted:
			summary.DefaultedClients++
		}
		summary.TotalDisbursed = summary.TotalDisbursed.Add(c.LoanAmount)
		summary.TotalPayable = summary.TotalPayable.Add(c.TotalPayable)
		summary.TotalCollected = summary.TotalCollected.Add(c.TotalPaid)
		summary.TotalOutstanding = summary.TotalOutstanding.Add(c.OutstandingBalance)
	}
	return summary, nil
}

func (r *localReportingRepository) OfficerCollections(ctx context.Context, from, to time.Time) ([]domain.OfficerCollection, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return nil, err
	}
	byOfficer := map[string]*domain.OfficerCollection{}
	for _, t := range txns {
		if t.IsNewLoan || t.Status != domain.TransactionPaid {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		oc, ok := byOfficer[t.RecordedBy]
		if !ok {
			oc = &domain.OfficerCollection{Officer: t.RecordedBy, Collected: decimal.Zero}
			byOfficer[t.RecordedBy] = oc
		}
		oc.Payments++
		oc.Collected = oc.Collected.Add(t.Amount)
	}
	collections := make([]domain.OfficerCollection, 0, len(byOfficer))
	for _, oc := range byOfficer {
		collections = append(collections, *oc)
	}
	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Officer < collections[j].Officer
	})
	return collections, nil
}

func (r *localReportingRepository) CashbookSummary(ctx context.Context, from, to time.Time) (*domain.CashbookSummary, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries, err := load[domain.CashbookEntry](r.store, cashbookFile)
	if err != nil {
		return nil, err
	}
	summary := &domain.CashbookSummary{
		From:         from,
		To:           to,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, e := range entries {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		summary.EntryCount++
		switch e.Type {
		case domain.CashbookIncome:
			summary.TotalIncome = summary.TotalIncome.Add(e.Amount)
		case domain.CashbookExpense:
			summary.TotalExpense = summary.TotalExpense.Add(e.Amount)
		}
	}
	summary.NetPosition = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}
