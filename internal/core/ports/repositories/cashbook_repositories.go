package repositories

import (
	"context"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// CashbookReader defines read operations for ledger entries.
type CashbookReader interface {
	// FindEntryByID retrieves a specific entry by ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.CashbookEntry, error)

	// FindEntries retrieves entries within a date range, newest first.
	FindEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error)

	// FindAllEntries retrieves the whole ledger. Used by the duplicate
	// cleanup and repair routines.
	FindAllEntries(ctx context.Context) ([]domain.CashbookEntry, error)
}

// CashbookWriter defines write operations for ledger entries.
type CashbookWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.CashbookEntry) error

	// DeleteEntry removes a ledger entry. Deleting an absent entry is not
	// an error; the cleanup routine relies on that.
	DeleteEntry(ctx context.Context, entryID string) error
}

// CashbookRepositoryFacade combines all cashbook repository interfaces.
type CashbookRepositoryFacade interface {
	CashbookReader
	CashbookWriter
}
