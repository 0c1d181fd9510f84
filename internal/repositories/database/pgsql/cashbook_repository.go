package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type PgxCashbookRepository struct {
	db Querier
}

func newPgxCashbookRepository(db Querier) portsrepo.CashbookRepositoryFacade {
	return &PgxCashbookRepository{db: db}
}

var _ portsrepo.CashbookRepositoryFacade = (*PgxCashbookRepository)(nil)

const cashbookColumns = `entry_id, transaction_id, entry_date, entry_time, description,
		entry_type, amount, status, entered_by,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCashbookEntry(row pgx.Row) (domain.CashbookEntry, error) {
	var e domain.CashbookEntry
	err := row.Scan(
		&e.EntryID,
		&e.TransactionID,
		&e.Date,
		&e.Time,
		&e.Description,
		&e.Type,
		&e.Amount,
		&e.Status,
		&e.EnteredBy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

func (r *PgxCashbookRepository) SaveEntry(ctx context.Context, entry domain.CashbookEntry) error {
	query := `
		INSERT INTO cashbook_entries (` + cashbookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		entry.EntryID,
		entry.TransactionID,
		entry.Date,
		entry.Time,
		entry.Description,
		entry.Type,
		entry.Amount,
		entry.Status,
		entry.EnteredBy,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save cashbook entry: %w", err)
	}
	return nil
}

func (r *PgxCashbookRepository) DeleteEntry(ctx context.Context, entryID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cashbook_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete cashbook entry %s: %w", entryID, err)
	}
	return nil
}

func (r *PgxCashbookRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashbookEntry, error) {
	query := `SELECT ` + cashbookColumns + ` FROM cashbook_entries WHERE entry_id = $1;`
	entry, err := scanCashbookEntry(r.db.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cashbook entry by ID %s: %w", entryID, err)
	}
	return &entry, nil
}

func (r *PgxCashbookRepository) FindEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error) {
	query := `
		SELECT ` + cashbookColumns + `
		FROM cashbook_entries
		WHERE entry_date >= $1 AND entry_date <= $2
		ORDER BY entry_date DESC, entry_id DESC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cashbook entries: %w", err)
	}
	defer rows.Close()

	return collectCashbookEntries(rows)
}

func (r *PgxCashbookRepository) FindAllEntries(ctx context.Context) ([]domain.CashbookEntry, error) {
	query := `SELECT ` + cashbookColumns + ` FROM cashbook_entries ORDER BY entry_date ASC;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all cashbook entries: %w", err)
	}
	defer rows.Close()

	return collectCashbookEntries(rows)
}

func collectCashbookEntries(rows pgx.Rows) ([]domain.CashbookEntry, error) {
	entries := []domain.CashbookEntry{}
	for rows.Next() {
		e, err := scanCashbookEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cashbook row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating cashbook rows: %w", rows.Err())
	}
	return entries, nil
}
