package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type PgxClientRepository struct {
	db Querier
}

func newPgxClientRepository(db Querier) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, full_name, phone, address, loan_amount, total_payable,
		daily_payment, outstanding_balance, total_paid, status, start_date,
		guarantor_name, guarantor_phone, assigned_to, current_loan_number,
		total_loans_completed, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ClientID,
		&c.FullName,
		&c.Phone,
		&c.Address,
		&c.LoanAmount,
		&c.TotalPayable,
		&c.DailyPayment,
		&c.OutstandingBalance,
		&c.TotalPaid,
		&c.Status,
		&c.StartDate,
		&c.GuarantorName,
		&c.GuarantorPhone,
		&c.AssignedTo,
		&c.CurrentLoanNumber,
		&c.TotalLoansCompleted,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.FullName,
		client.Phone,
		client.Address,
		client.LoanAmount,
		client.TotalPayable,
		client.DailyPayment,
		client.OutstandingBalance,
		client.TotalPaid,
		client.Status,
		client.StartDate,
		client.GuarantorName,
		client.GuarantorPhone,
		client.AssignedTo,
		client.CurrentLoanNumber,
		client.TotalLoansCompleted,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients SET
			full_name = $2,
			phone = $3,
			address = $4,
			loan_amount = $5,
			total_payable = $6,
			daily_payment = $7,
			outstanding_balance = $8,
			total_paid = $9,
			status = $10,
			start_date = $11,
			guarantor_name = $12,
			guarantor_phone = $13,
			assigned_to = $14,
			current_loan_number = $15,
			total_loans_completed = $16,
			last_updated_at = $17,
			last_updated_by = $18
		WHERE client_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		client.ClientID,
		client.FullName,
		client.Phone,
		client.Address,
		client.LoanAmount,
		client.TotalPayable,
		client.DailyPayment,
		client.OutstandingBalance,
		client.TotalPaid,
		client.Status,
		client.StartDate,
		client.GuarantorName,
		client.GuarantorPhone,
		client.AssignedTo,
		client.CurrentLoanNumber,
		client.TotalLoansCompleted,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	// Zero rows affected is fine, the client is gone either way.
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`
	client, err := scanClient(r.db.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (r *PgxClientRepository) FindClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE status = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients by status: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", rows.Err())
	}
	return clients, nil
}
