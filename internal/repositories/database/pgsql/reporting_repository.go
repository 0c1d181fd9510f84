package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

// PgxReportingRepository pushes the report aggregation into SQL instead of
// loading whole collections into memory.
type PgxReportingRepository struct {
	db Querier
}

func newPgxReportingRepository(db Querier) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'Active'),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE status = 'Defaulted'),
			COALESCE(SUM(loan_amount), 0),
			COALESCE(SUM(total_payable), 0),
			COALESCE(SUM(total_paid), 0),
			COALESCE(SUM(outstanding_balance), 0)
		FROM clients;
	`
	var s domain.PortfolioSummary
	err := r.db.QueryRow(ctx, query).Scan(
		&s.ActiveClients,
		&s.CompletedClients,
		&s.DefaultedClients,
		&s.TotalDisbursed,
		&s.TotalPayable,
		&s.TotalCollected,
		&s.TotalOutstanding,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute portfolio summary: %w", err)
	}
	return &s, nil
}

func (r *PgxReportingRepository) OfficerCollections(ctx context.Context, from, to time.Time) ([]domain.OfficerCollection, error) {
	query := `
		SELECT recorded_by, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE is_new_loan = FALSE
		  AND status = 'Paid'
		  AND txn_date >= $1 AND txn_date <= $2
		GROUP BY recorded_by
		ORDER BY recorded_by;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute officer collections: %w", err)
	}
	defer rows.Close()

	collections := []domain.OfficerCollection{}
	for rows.Next() {
		var oc domain.OfficerCollection
		if err := rows.Scan(&oc.Officer, &oc.Payments, &oc.Collected); err != nil {
			return nil, fmt.Errorf("failed to scan officer collection row: %w", err)
		}
		collections = append(collections, oc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating officer collection rows: %w", rows.Err())
	}
	return collections, nil
}

func (r *PgxReportingRepository) CashbookSummary(ctx context.Context, from, to time.Time) (*domain.CashbookSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE entry_type = 'Expense'), 0),
			COUNT(*)
		FROM cashbook_entries
		WHERE entry_date >= $1 AND entry_date <= $2;
	`
	s := &domain.CashbookSummary{From: from, To: to}
	err := r.db.QueryRow(ctx, query, from, to).Scan(&s.TotalIncome, &s.TotalExpense, &s.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cashbook summary: %w", err)
	}
	s.NetPosition = s.TotalIncome.Sub(s.TotalExpense)
	return s, nil
}
