package repositories

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// CapitalReader defines read operations for owner capital records.
type CapitalReader interface {
	// FindCapitalTransactions retrieves every capital movement, newest first.
	FindCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error)
}

// CapitalWriter defines write operations for owner capital records.
type CapitalWriter interface {
	// SaveCapitalTransaction persists a new capital movement.
	SaveCapitalTransaction(ctx context.Context, capital domain.OwnerCapitalTransaction) error

	// DeleteCapitalTransaction removes a capital movement. Deleting an
	// absent record is not an error.
	DeleteCapitalTransaction(ctx context.Context, capitalID string) error
}

// CapitalRepositoryFacade combines all capital repository interfaces.
type CapitalRepositoryFacade interface {
	CapitalReader
	CapitalWriter
}
