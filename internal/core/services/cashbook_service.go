package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
)

// repairDateWindow is how far apart a transaction and a ledger entry may be
// dated and still count as the same event.
const repairDateWindow = 24 * time.Hour

// cashbookService covers manual ledger entries and the two owner-run
// maintenance routines that patch up the ledger after partial failures:
// duplicate cleanup and repayment-entry repair.
type cashbookService struct {
	cashbookRepo portsrepo.CashbookRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	notifier     portssvc.Notifier
	repairDelay  time.Duration
}

// NewCashbookService creates a new CashbookService. repairDelay paces the
// repair routine's writes so the backend is not flooded.
func NewCashbookService(
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	notifier portssvc.Notifier,
	repairDelay time.Duration,
) portssvc.CashbookSvcFacade {
	return &cashbookService{
		cashbookRepo: cashbookRepo,
		txnRepo:      txnRepo,
		notifier:     notifier,
		repairDelay:  repairDelay,
	}
}

var _ portssvc.CashbookSvcFacade = (*cashbookService)(nil)

func (s *cashbookService) CreateEntry(ctx context.Context, req dto.CreateCashbookEntryRequest, enteredBy string) (*domain.CashbookEntry, error) {
	now := time.Now()
	date := req.Date
	if date.IsZero() {
		date = now
	}
	wallClock := req.Time
	if wallClock == "" {
		wallClock = now.Format("15:04")
	}
	status := req.Status
	if status == "" {
		if req.Type == domain.CashbookIncome {
			status = domain.CashbookStatusPaid
		} else {
			status = domain.CashbookStatusExpense
		}
	}

	entry := domain.CashbookEntry{
		EntryID:     domain.NewRecordID("cb"),
		Date:        date,
		Time:        wallClock,
		Description: req.Description,
		Type:        req.Type,
		Amount:      req.Amount,
		Status:      status,
		EnteredBy:   enteredBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     enteredBy,
			LastUpdatedAt: now,
			LastUpdatedBy: enteredBy,
		},
	}
	if err := s.cashbookRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save cashbook entry: %w", err)
	}
	return &entry, nil
}

func (s *cashbookService) ListEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error) {
	entries, err := s.cashbookRepo.FindEntries(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashbook entries: %w", err)
	}
	return entries, nil
}

// duplicateGroups buckets the ledger by composite identity and returns only
// the buckets holding more than one entry.
func duplicateGroups(entries []domain.CashbookEntry) map[string][]domain.CashbookEntry {
	byKey := make(map[string][]domain.CashbookEntry)
	for _, e := range entries {
		key := e.DuplicateKey()
		byKey[key] = append(byKey[key], e)
	}
	for key, group := range byKey {
		if len(group) < 2 {
			delete(byKey, key)
		}
	}
	return byKey
}

// keeperID picks the entry to retain from a duplicate group: the one whose
// ID embeds the smallest timestamp. Deterministic regardless of input order.
func keeperID(group []domain.CashbookEntry) string {
	keeper := group[0].EntryID
	for _, e := range group[1:] {
		if domain.IDBefore(e.EntryID, keeper) {
			keeper = e.EntryID
		}
	}
	return keeper
}

// PreviewDuplicates counts what a cleanup run would remove, for the owner's
// confirmation prompt.
func (s *cashbookService) PreviewDuplicates(ctx context.Context) (*dto.DuplicatePreviewResponse, error) {
	entries, err := s.cashbookRepo.FindAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cashbook: %w", err)
	}

	groups := duplicateGroups(entries)
	toDelete := 0
	for _, group := range groups {
		toDelete += len(group) - 1
	}
	return &dto.DuplicatePreviewResponse{
		DuplicateGroups: len(groups),
		EntriesToDelete: toDelete,
	}, nil
}

// CleanupDuplicates removes every duplicate ledger entry, keeping the one
// with the oldest embedded ID timestamp per group. The repositories treat
// deleting an absent entry as success, which makes re-running safe.
func (s *cashbookService) CleanupDuplicates(ctx context.Context) (*dto.CleanupResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.cashbookRepo.FindAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cashbook: %w", err)
	}

	groups := duplicateGroups(entries)
	result := &dto.CleanupResultResponse{DuplicateGroups: len(groups)}

	for _, group := range groups {
		keep := keeperID(group)
		for _, e := range group {
			if e.EntryID == keep {
				continue
			}
			if err := s.cashbookRepo.DeleteEntry(ctx, e.EntryID); err != nil {
				logger.Warn("Failed to delete duplicate entry", slog.String("entry_id", e.EntryID), slog.String("error", err.Error()))
				result.Failed++
				continue
			}
			result.Deleted++
		}
	}

	logger.Info("Duplicate cleanup finished",
		slog.Int("groups", result.DuplicateGroups),
		slog.Int("deleted", result.Deleted),
		slog.Int("failed", result.Failed),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Removed %d duplicate cashbook entries", result.Deleted))
	return result, nil
}

// RepairFromTransactions synthesizes the missing Income entry for every
// repayment transaction that has no matching ledger line. Writes are paced
// by the configured delay; partial completion is accepted and reported.
func (s *cashbookService) RepairFromTransactions(ctx context.Context) (*dto.RepairResultResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.txnRepo.FindAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	entries, err := s.cashbookRepo.FindAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan cashbook: %w", err)
	}

	result := &dto.RepairResultResponse{}
	for _, txn := range txns {
		if txn.IsNewLoan {
			continue
		}
		result.Scanned++
		if hasRepaymentEntry(entries, txn) {
			continue
		}

		if result.Created+result.Failed > 0 {
			// Pace writes so a large backlog does not flood the backend.
			select {
			case <-time.After(s.repairDelay):
			case <-ctx.Done():
				logger.Warn("Repair interrupted", slog.Int("created", result.Created))
				return result, nil
			}
		}

		now := time.Now()
		entry := domain.CashbookEntry{
			EntryID:       domain.NewRecordID("cb"),
			TransactionID: txn.TransactionID,
			Date:          txn.Date,
			Time:          txn.Time,
			Description:   domain.RepaymentDescription(txn.ClientName),
			Type:          domain.CashbookIncome,
			Amount:        txn.Amount,
			Status:        domain.CashbookStatusPaid,
			EnteredBy:     txn.RecordedBy,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     txn.RecordedBy,
				LastUpdatedAt: now,
				LastUpdatedBy: txn.RecordedBy,
			},
		}
		if err := s.cashbookRepo.SaveEntry(ctx, entry); err != nil {
			logger.Warn("Failed to synthesize cashbook entry", slog.String("transaction_id", txn.TransactionID), slog.String("error", err.Error()))
			result.Failed++
			continue
		}
		result.Created++
	}

	logger.Info("Cashbook repair finished",
		slog.Int("scanned", result.Scanned),
		slog.Int("created", result.Created),
		slog.Int("failed", result.Failed),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Repair created %d missing cashbook entries", result.Created))
	return result, nil
}

// hasRepaymentEntry reports whether the ledger already records a repayment
// transaction: either through the transaction link, or for historical rows,
// by client-name substring plus equal amount plus a date within one day.
func hasRepaymentEntry(entries []domain.CashbookEntry, txn domain.Transaction) bool {
	for _, e := range entries {
		if e.TransactionID == txn.TransactionID {
			return true
		}
		if e.Type != domain.CashbookIncome || !strings.Contains(e.Description, "Loan repayment") {
			continue
		}
		if !strings.Contains(e.Description, txn.ClientName) || !e.Amount.Equal(txn.Amount) {
			continue
		}
		gap := e.Date.Sub(txn.Date)
		if gap < 0 {
			gap = -gap
		}
		if gap <= repairDateWindow {
			return true
		}
	}
	return false
}

func (s *cashbookService) notify(kind portssvc.NotificationKind, message string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, message, 5*time.Second)
	}
}
