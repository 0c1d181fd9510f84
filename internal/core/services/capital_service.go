package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// capitalService records owner capital movements. Each movement pairs with a
// cashbook entry (Income for injections, Expense for withdrawals); if the
// cashbook write fails the capital record is deleted again.
type capitalService struct {
	capitalRepo  portsrepo.CapitalRepositoryFacade
	cashbookRepo portsrepo.CashbookRepositoryFacade
	notifier     portssvc.Notifier
}

// NewCapitalService creates a new CapitalService.
func NewCapitalService(
	capitalRepo portsrepo.CapitalRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	notifier portssvc.Notifier,
) portssvc.CapitalSvcFacade {
	return &capitalService{
		capitalRepo:  capitalRepo,
		cashbookRepo: cashbookRepo,
		notifier:     notifier,
	}
}

var _ portssvc.CapitalSvcFacade = (*capitalService)(nil)

func (s *capitalService) RecordCapital(ctx context.Context, req dto.RecordCapitalRequest, enteredBy string) (*domain.OwnerCapitalTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: capital amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	capital := domain.OwnerCapitalTransaction{
		CapitalID:   domain.NewRecordID("cap"),
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		EnteredBy:   enteredBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     enteredBy,
			LastUpdatedAt: now,
			LastUpdatedBy: enteredBy,
		},
	}
	if err := s.capitalRepo.SaveCapitalTransaction(ctx, capital); err != nil {
		s.notify(portssvc.NotifyError, "Capital record failed")
		return nil, fmt.Errorf("failed to save capital transaction: %w", err)
	}

	entryType := domain.CashbookIncome
	entryStatus := domain.CashbookStatusProfit
	if req.Type == domain.CapitalWithdrawal {
		entryType = domain.CashbookExpense
		entryStatus = domain.CashbookStatusExpense
	}
	entry := domain.CashbookEntry{
		EntryID:     domain.NewRecordID("cb"),
		Date:        date,
		Time:        now.Format("15:04"),
		Description: fmt.Sprintf("Owner capital %s - %s", req.Type, req.Description),
		Type:        entryType,
		Amount:      req.Amount,
		Status:      entryStatus,
		EnteredBy:   enteredBy,
		AuditFields: capital.AuditFields,
	}
	if err := s.cashbookRepo.SaveEntry(ctx, entry); err != nil {
		// Compensate: remove the capital record so the two collections
		// stay in step.
		if delErr := s.capitalRepo.DeleteCapitalTransaction(ctx, capital.CapitalID); delErr != nil {
			logger.Error("Capital rollback failed", slog.String("capital_id", capital.CapitalID), slog.String("error", delErr.Error()))
			s.notify(portssvc.NotifyError, "Capital record failed and rollback did not complete - contact support")
			return nil, fmt.Errorf("%w: %w (after cashbook write: %w)", ErrRollbackFailed, delErr, err)
		}
		s.notify(portssvc.NotifyError, "Capital record failed; no changes were saved")
		return nil, fmt.Errorf("capital record rolled back: cashbook write failed: %w", err)
	}

	logger.Info("Owner capital recorded",
		slog.String("type", string(req.Type)),
		slog.String("amount", req.Amount.String()),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Capital %s of %s recorded", req.Type, req.Amount.String()))
	return &capital, nil
}

func (s *capitalService) ListCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error) {
	capitals, err := s.capitalRepo.FindCapitalTransactions(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.OwnerCapitalTransaction{}, nil
		}
		return nil, fmt.Errorf("failed to list capital transactions: %w", err)
	}
	return capitals, nil
}

func (s *capitalService) notify(kind portssvc.NotificationKind, message string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, message, 5*time.Second)
	}
}
