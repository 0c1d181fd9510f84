package services

import (
	"context"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// ReportingSvcFacade exposes the owner's performance views.
type ReportingSvcFacade interface {
	PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error)
	OfficerCollections(ctx context.Context, from, to time.Time) ([]domain.OfficerCollection, error)
	CashbookSummary(ctx context.Context, from, to time.Time) (*domain.CashbookSummary, error)
}
