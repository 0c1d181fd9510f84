package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// ClientReaderSvc defines read operations over borrowers.
type ClientReaderSvc interface {
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error)
	ListClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error)
}

// ClientWriterSvc defines edit and lifecycle operations over borrowers.
type ClientWriterSvc interface {
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUsername string) (*domain.Client, error)

	// DeleteClient hard-deletes a client and cascades to their transactions
	// and cashbook entries. Owner only.
	DeleteClient(ctx context.Context, clientID string, requesterRole domain.StaffRole) error
}

// ClientSvcFacade combines all client service interfaces.
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
}
