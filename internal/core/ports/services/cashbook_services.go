package services

import (
	"context"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// CashbookSvcFacade covers manual ledger entry plus the two owner-run
// maintenance routines.
type CashbookSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateCashbookEntryRequest, enteredBy string) (*domain.CashbookEntry, error)
	ListEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error)

	// PreviewDuplicates counts what CleanupDuplicates would remove, for the
	// owner's confirmation prompt.
	PreviewDuplicates(ctx context.Context) (*dto.DuplicatePreviewResponse, error)

	// CleanupDuplicates deletes all but the oldest entry of every duplicate
	// group. Deletes of already-absent entries count as success.
	CleanupDuplicates(ctx context.Context) (*dto.CleanupResultResponse, error)

	// RepairFromTransactions synthesizes missing repayment entries for
	// transactions with no matching ledger line. Partial completion is
	// accepted and reported.
	RepairFromTransactions(ctx context.Context) (*dto.RepairResultResponse, error)
}
