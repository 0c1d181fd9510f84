package repositories

import (
	"context"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// ReportingRepository aggregates across collections for the report views.
type ReportingRepository interface {
	// PortfolioSummary totals the loan book across all clients.
	PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error)

	// OfficerCollections totals repayments per recording officer in a range.
	OfficerCollections(ctx context.Context, from, to time.Time) ([]domain.OfficerCollection, error)

	// CashbookSummary totals ledger income and expense in a range.
	CashbookSummary(ctx context.Context, from, to time.Time) (*domain.CashbookSummary, error)
}
