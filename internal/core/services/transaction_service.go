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
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrDisbursementDelete rejects deleting a disbursement record; undoing a
// loan means deleting the client, not one of its transactions.
var ErrDisbursementDelete = errors.New("disbursement records cannot be deleted")

// transactionService serves the payment history and the owner's correction
// path: deleting a mistaken repayment puts the client's balances back where
// they were before it and removes the linked cashbook entries.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	clientRepo   portsrepo.ClientRepositoryFacade
	cashbookRepo portsrepo.CashbookRepositoryFacade
	notifier     portssvc.Notifier
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	clientRepo portsrepo.ClientRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	notifier portssvc.Notifier,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		clientRepo:   clientRepo,
		cashbookRepo: cashbookRepo,
		notifier:     notifier,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactions(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *transactionService) ListTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.FindTransactionsByClientID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for client %s: %w", clientID, err)
	}
	return txns, nil
}

// DeleteTransaction removes a mistakenly recorded repayment and reverses its
// effect on the client: total paid comes back down, the outstanding balance
// comes back up, and a loan the payment had completed reopens. The linked
// cashbook entries go with it so the ledger stays consistent with the
// history. Disbursement records are refused; those only leave through the
// client delete cascade.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requesterRole domain.StaffRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requesterRole != domain.RoleOwner {
		return fmt.Errorf("deleting a transaction: %w", apperrors.ErrForbidden)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	if txn.IsNewLoan {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDisbursementDelete)
	}

	var snapshot *domain.Client
	client, err := s.clientRepo.FindClientByID(ctx, txn.ClientID)
	switch {
	case err == nil:
		snapshot = new(domain.Client)
		*snapshot = *client
		reversed := reversePayment(*client, txn.Amount)
		reversed.LastUpdatedAt = time.Now()
		if err := s.clientRepo.UpdateClient(ctx, reversed); err != nil {
			s.notify(portssvc.NotifyError, "Transaction delete failed: could not reverse client balances")
			return fmt.Errorf("failed to reverse client %s: %w", txn.ClientID, err)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		// The client is already gone. The transaction is a leftover audit
		// row and there is nothing to reverse.
	default:
		return fmt.Errorf("failed to look up client %s: %w", txn.ClientID, err)
	}

	if err := s.deleteTransactionRecords(ctx, txn); err != nil {
		if snapshot != nil {
			if restoreErr := s.clientRepo.UpdateClient(ctx, *snapshot); restoreErr != nil {
				logger.Error("Transaction delete rollback failed",
					slog.String("transaction_id", transactionID),
					slog.String("error", restoreErr.Error()),
				)
				s.notify(portssvc.NotifyError, "Transaction delete failed and rollback did not complete - contact support")
				return fmt.Errorf("%w: %w (after %w)", ErrRollbackFailed, restoreErr, err)
			}
		}
		s.notify(portssvc.NotifyError, "Transaction delete failed; no changes were saved")
		return fmt.Errorf("transaction delete rolled back: %w", err)
	}

	logger.Info("Transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("client_id", txn.ClientID),
		slog.String("amount", txn.Amount.String()),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Payment of %s by %s deleted and reversed", txn.Amount.String(), txn.ClientName))
	return nil
}

// deleteTransactionRecords removes the linked cashbook entries, then the
// transaction itself. Entries from before the cashbook carried transaction
// links have an empty TransactionID and are left alone.
func (s *transactionService) deleteTransactionRecords(ctx context.Context, txn *domain.Transaction) error {
	entries, err := s.cashbookRepo.FindAllEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cashbook entries: %w", err)
	}
	for _, e := range entries {
		if e.TransactionID != txn.TransactionID {
			continue
		}
		if err := s.cashbookRepo.DeleteEntry(ctx, e.EntryID); err != nil {
			return fmt.Errorf("failed to delete cashbook entry %s: %w", e.EntryID, err)
		}
	}
	if err := s.txnRepo.DeleteTransaction(ctx, txn.TransactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// reversePayment undoes one repayment's effect on the client's balances.
// The outstanding balance is recomputed from the total payable so deleting
// an overpayment cannot push it past the loan's worth.
func reversePayment(client domain.Client, amount decimal.Decimal) domain.Client {
	newTotalPaid := client.TotalPaid.Sub(amount)
	if newTotalPaid.IsNegative() {
		newTotalPaid = decimal.Zero
	}
	newOutstanding := client.TotalPayable.Sub(newTotalPaid)
	if newOutstanding.IsNegative() {
		newOutstanding = decimal.Zero
	}

	if client.OutstandingBalance.IsZero() && newOutstanding.IsPositive() {
		// The deleted payment was the one that completed the loan.
		if client.TotalLoansCompleted > 0 {
			client.TotalLoansCompleted--
		}
		client.Status = domain.ClientActive
	}
	client.TotalPaid = newTotalPaid
	client.OutstandingBalance = newOutstanding
	return client
}

func (s *transactionService) notify(kind portssvc.NotificationKind, message string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, message, 5*time.Second)
	}
}
