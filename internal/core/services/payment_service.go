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

var (
	// ErrInvalidAmount rejects non-positive payment amounts before any write.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrRollbackFailed means a compensating step itself failed and the
	// records may be inconsistent. Surfaced with its own severity so the
	// operator contacts support instead of retrying.
	ErrRollbackFailed = errors.New("rollback failed - contact support")
)

// paymentSteps tracks how far the three-write sequence got, so rollback
// knows exactly what to undo. Step outcomes are values, not panics.
type paymentSteps struct {
	snapshot           domain.Client
	clientUpdated      bool
	transactionID      string
	transactionCreated bool
	cashbookEntryID    string
	cashbookCreated    bool
}

// paymentService orchestrates the repayment workflow over the three record
// collections. The writes are strictly sequential; there is no transaction
// spanning them, so failure triggers compensating deletes/restores in
// reverse order.
type paymentService struct {
	clientRepo   portsrepo.ClientRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	cashbookRepo portsrepo.CashbookRepositoryFacade
	smsSvc       portssvc.SMSSvcFacade
	notifier     portssvc.Notifier
}

// NewPaymentService creates a new PaymentService. smsSvc and notifier are
// best-effort sinks and may be nil in tests.
func NewPaymentService(
	clientRepo portsrepo.ClientRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	smsSvc portssvc.SMSSvcFacade,
	notifier portssvc.Notifier,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		clientRepo:   clientRepo,
		txnRepo:      txnRepo,
		cashbookRepo: cashbookRepo,
		smsSvc:       smsSvc,
		notifier:     notifier,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment implements the repayment workflow:
//
//  1. resolve the client (no side effects on failure)
//  2. snapshot pre-payment state
//  3. compute updated balances
//  4. persist the updated client
//  5. persist the transaction
//  6. persist the cashbook income entry
//  7. on any write failure, undo completed writes in reverse order
//  8. on success, issue a receipt and attempt a best-effort SMS
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, recordedBy string) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidAmount)
	}

	client, err := s.clientRepo.FindClientByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", req.ClientID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up client %s: %w", req.ClientID, err)
	}

	steps := paymentSteps{snapshot: *client}

	now := time.Now()
	paymentDate := req.Date
	if paymentDate.IsZero() {
		paymentDate = now
	}
	paymentTime := req.Time
	if paymentTime == "" {
		paymentTime = now.Format("15:04")
	}

	outcome := domain.ApplyPayment(client.TotalPaid, client.OutstandingBalance, req.Amount)
	updated := outcome.Applied(*client)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = recordedBy

	// Write 1: client balances.
	if err := s.clientRepo.UpdateClient(ctx, updated); err != nil {
		// Nothing persisted yet; report and stop.
		s.notify(portssvc.NotifyError, "Payment failed: could not update client balance")
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	steps.clientUpdated = true

	// Write 2: transaction record.
	txn := domain.Transaction{
		TransactionID: domain.NewRecordID("txn"),
		ClientID:      client.ClientID,
		ClientName:    client.FullName,
		Date:          paymentDate,
		Time:          paymentTime,
		Amount:        req.Amount,
		Notes:         req.Notes,
		Status:        domain.TransactionPaid,
		RecordedBy:    recordedBy,
		LoanNumber:    client.CurrentLoanNumber,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     recordedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: recordedBy,
		},
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, s.rollback(ctx, steps, fmt.Errorf("failed to record transaction: %w", err))
	}
	steps.transactionID = txn.TransactionID
	steps.transactionCreated = true

	// Write 3: cashbook income entry, linked to the transaction.
	entry := domain.CashbookEntry{
		EntryID:       domain.NewRecordID("cb"),
		TransactionID: txn.TransactionID,
		Date:          paymentDate,
		Time:          paymentTime,
		Description:   domain.RepaymentDescription(client.FullName),
		Type:          domain.CashbookIncome,
		Amount:        req.Amount,
		Status:        domain.CashbookStatusPaid,
		EnteredBy:     recordedBy,
		AuditFields:   txn.AuditFields,
	}
	if err := s.cashbookRepo.SaveEntry(ctx, entry); err != nil {
		return nil, s.rollback(ctx, steps, fmt.Errorf("failed to record cashbook entry: %w", err))
	}
	steps.cashbookEntryID = entry.EntryID
	steps.cashbookCreated = true

	receipt := &domain.Receipt{
		ClientName:            client.FullName,
		Date:                  paymentDate,
		AmountPaid:            req.Amount,
		NewOutstandingBalance: outcome.NewOutstandingBalance,
		IssuedBy:              recordedBy,
	}

	logger.Info("Payment recorded",
		slog.String("client_id", client.ClientID),
		slog.String("amount", req.Amount.String()),
		slog.String("new_outstanding", outcome.NewOutstandingBalance.String()),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Payment of %s recorded for %s", req.Amount.String(), client.FullName))

	// SMS confirmation is explicitly non-critical: a failure is surfaced as
	// a warning and never affects the recorded payment.
	if s.smsSvc != nil {
		if result := s.smsSvc.SendReceipt(ctx, updated, *receipt); !result.Success {
			logger.Warn("Receipt SMS failed", slog.String("hint", string(result.Hint)), slog.String("error", result.Error))
			s.notify(portssvc.NotifyWarning, fmt.Sprintf("Payment saved, but receipt SMS failed: %s", result.Hint))
		}
	}

	return receipt, nil
}

// rollback undoes completed writes in reverse order. Each compensating step
// is attempted independently; any compensation failure escalates to
// ErrRollbackFailed since the records may now be inconsistent.
func (s *paymentService) rollback(ctx context.Context, steps paymentSteps, cause error) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Warn("Payment write failed, rolling back", slog.String("cause", cause.Error()))

	var compensationErrs []error

	if steps.cashbookCreated {
		if err := s.cashbookRepo.DeleteEntry(ctx, steps.cashbookEntryID); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("delete cashbook entry %s: %w", steps.cashbookEntryID, err))
		}
	}
	if steps.transactionCreated {
		if err := s.txnRepo.DeleteTransaction(ctx, steps.transactionID); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("delete transaction %s: %w", steps.transactionID, err))
		}
	}
	if steps.clientUpdated {
		if err := s.clientRepo.UpdateClient(ctx, steps.snapshot); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("restore client %s: %w", steps.snapshot.ClientID, err))
		}
	}

	if len(compensationErrs) > 0 {
		logger.Error("Payment rollback failed", slog.Int("failed_steps", len(compensationErrs)))
		s.notify(portssvc.NotifyError, "Payment failed and rollback did not complete - contact support")
		return fmt.Errorf("%w: %w (after %w)", ErrRollbackFailed, errors.Join(compensationErrs...), cause)
	}

	s.notify(portssvc.NotifyError, "Payment failed; no changes were saved")
	return fmt.Errorf("payment rolled back: %w", cause)
}

func (s *paymentService) notify(kind portssvc.NotificationKind, message string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, message, 5*time.Second)
	}
}
