package pgsql

import (
	"context"
	"fmt"

	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type PgxCapitalRepository struct {
	db Querier
}

func newPgxCapitalRepository(db Querier) portsrepo.CapitalRepositoryFacade {
	return &PgxCapitalRepository{db: db}
}

var _ portsrepo.CapitalRepositoryFacade = (*PgxCapitalRepository)(nil)

const capitalColumns = `capital_id, capital_type, amount, description, capital_date, entered_by,
		created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxCapitalRepository) SaveCapitalTransaction(ctx context.Context, capital domain.OwnerCapitalTransaction) error {
	query := `
		INSERT INTO owner_capital_transactions (` + capitalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		capital.CapitalID,
		capital.Type,
		capital.Amount,
		capital.Description,
		capital.Date,
		capital.EnteredBy,
		capital.CreatedAt,
		capital.CreatedBy,
		capital.LastUpdatedAt,
		capital.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save capital transaction: %w", err)
	}
	return nil
}

func (r *PgxCapitalRepository) DeleteCapitalTransaction(ctx context.Context, capitalID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM owner_capital_transactions WHERE capital_id = $1;`, capitalID)
	if err != nil {
		return fmt.Errorf("failed to delete capital transaction %s: %w", capitalID, err)
	}
	return nil
}

func (r *PgxCapitalRepository) FindCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error) {
	query := `
		SELECT ` + capitalColumns + `
		FROM owner_capital_transactions
		ORDER BY capital_date DESC, capital_id DESC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query capital transactions: %w", err)
	}
	defer rows.Close()

	records := []domain.OwnerCapitalTransaction{}
	for rows.Next() {
		var c domain.OwnerCapitalTransaction
		err := rows.Scan(
			&c.CapitalID,
			&c.Type,
			&c.Amount,
			&c.Description,
			&c.Date,
			&c.EnteredBy,
			&c.CreatedAt,
			&c.CreatedBy,
			&c.LastUpdatedAt,
			&c.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capital row: %w", err)
		}
		records = append(records, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating capital rows: %w", rows.Err())
	}
	return records, nil
}
