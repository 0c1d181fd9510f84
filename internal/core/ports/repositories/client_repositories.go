package repositories

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// ClientReader defines read operations for borrower records.
type ClientReader interface {
	// FindClientByID retrieves a specific client by ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// FindClients retrieves a paginated list of clients.
	FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)

	// FindClientsByStatus retrieves every client in the given status.
	FindClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error)
}

// ClientWriter defines write operations for borrower records.
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient replaces an existing client's record.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client permanently. Deleting an absent client
	// is not an error.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
