package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// TransactionSvcFacade exposes the payment history. Transactions are only
// ever created through the loan and payment workflows; deletion is an
// owner-only correction that reverses the payment's effect on the client.
type TransactionSvcFacade interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)
	ListTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string, requesterRole domain.StaffRole) error
}
