package repositories

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// TransactionReader defines read operations for repayment/disbursement events.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByClientID retrieves every transaction for one client.
	FindTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error)

	// FindTransactions retrieves a paginated list, newest first.
	FindTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error)

	// FindAllTransactions retrieves the whole collection. Used by the
	// cashbook repair routine, which must cross-reference everything.
	FindAllTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction. Deleting an absent
	// transaction is not an error.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
