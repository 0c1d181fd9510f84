package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
)

// reportingService exposes the owner's performance views over the reporting
// repository.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) PortfolioSummary(ctx context.Context) (*domain.PortfolioSummary, error) {
	summary, err := s.reportingRepo.PortfolioSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build portfolio summary: %w", err)
	}
	return summary, nil
}

func (s *reportingService) OfficerCollections(ctx context.Context, from, to time.Time) ([]domain.OfficerCollection, error) {
	collections, err := s.reportingRepo.OfficerCollections(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build officer collections: %w", err)
	}
	return collections, nil
}

func (s *reportingService) CashbookSummary(ctx context.Context, from, to time.Time) (*domain.CashbookSummary, error) {
	summary, err := s.reportingRepo.CashbookSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build cashbook summary: %w", err)
	}
	return summary, nil
}
