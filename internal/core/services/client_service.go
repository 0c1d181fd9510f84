package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/gitala/gitala_branch/internal/utils"
)

// clientService provides borrower read/edit/delete operations. Creation
// happens in the loan service, since a client only exists once a loan is
// disbursed.
type clientService struct {
	clientRepo   portsrepo.ClientRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	cashbookRepo portsrepo.CashbookRepositoryFacade
}

// NewClientService creates a new ClientService.
func NewClientService(
	clientRepo portsrepo.ClientRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
) portssvc.ClientSvcFacade {
	return &clientService{
		clientRepo:   clientRepo,
		txnRepo:      txnRepo,
		cashbookRepo: cashbookRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

func (s *clientService) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}
	return client, nil
}

func (s *clientService) ListClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClients(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) ListClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	clients, err := s.clientRepo.FindClientsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s clients: %w", status, err)
	}
	return clients, nil
}

// UpdateClient edits contact and assignment details. Balances are never
// edited here; they only move through the payment workflow.
func (s *clientService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUsername string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client %s: %w", clientID, err)
	}

	if req.FullName != nil {
		client.FullName = *req.FullName
	}
	if req.Phone != nil {
		phone, err := utils.NormalizePhone(*req.Phone)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		client.Phone = phone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.GuarantorName != nil {
		client.GuarantorName = *req.GuarantorName
	}
	if req.GuarantorPhone != nil {
		phone, err := utils.NormalizePhone(*req.GuarantorPhone)
		if err != nil {
			return nil, fmt.Errorf("%w: guarantor %w", apperrors.ErrValidation, err)
		}
		client.GuarantorPhone = phone
	}
	if req.AssignedTo != nil {
		client.AssignedTo = *req.AssignedTo
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = updaterUsername

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("failed to update client %s: %w", clientID, err)
	}
	return client, nil
}

// DeleteClient hard-deletes a client and cascades to their transactions and
// cashbook entries. Linked entries are found by the transaction foreign key;
// historical entries predating the link are caught by the description
// heuristic the maintenance routines also use.
func (s *clientService) DeleteClient(ctx context.Context, clientID string, requesterRole domain.StaffRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requesterRole != domain.RoleOwner {
		return fmt.Errorf("deleting a client: %w", apperrors.ErrForbidden)
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %s: %w", clientID, err)
	}

	txns, err := s.txnRepo.FindTransactionsByClientID(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to list transactions for client %s: %w", clientID, err)
	}
	txnIDs := make(map[string]struct{}, len(txns))
	for _, t := range txns {
		txnIDs[t.TransactionID] = struct{}{}
	}

	entries, err := s.cashbookRepo.FindAllEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cashbook entries: %w", err)
	}

	var deleteErrs []error
	for _, e := range entries {
		_, linked := txnIDs[e.TransactionID]
		if !linked && !strings.Contains(e.Description, client.FullName) {
			continue
		}
		if err := s.cashbookRepo.DeleteEntry(ctx, e.EntryID); err != nil {
			deleteErrs = append(deleteErrs, fmt.Errorf("delete cashbook entry %s: %w", e.EntryID, err))
		}
	}
	for _, t := range txns {
		if err := s.txnRepo.DeleteTransaction(ctx, t.TransactionID); err != nil {
			deleteErrs = append(deleteErrs, fmt.Errorf("delete transaction %s: %w", t.TransactionID, err))
		}
	}
	if err := s.clientRepo.DeleteClient(ctx, clientID); err != nil {
		deleteErrs = append(deleteErrs, fmt.Errorf("delete client %s: %w", clientID, err))
	}

	if len(deleteErrs) > 0 {
		return fmt.Errorf("client delete incomplete: %w", errors.Join(deleteErrs...))
	}

	logger.Info("Client deleted with cascade",
		slog.String("client_id", clientID),
		slog.Int("transactions", len(txns)),
	)
	return nil
}
