package localstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type localClientRepository struct {
	store *Store
}

func newLocalClientRepository(store *Store) portsrepo.ClientRepositoryFacade {
	return &localClientRepository{store: store}
}

var _ portsrepo.ClientRepositoryFacade = (*localClientRepository)(nil)

func (r *localClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return err
	}
	for _, c := range clients {
		if c.ClientID == client.ClientID {
			return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrDuplicate)
		}
	}
	return save(r.store, clientsFile, append(clients, client))
}

func (r *localClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return err
	}
	for i, c := range clients {
		if c.ClientID == client.ClientID {
			clients[i] = client
			return save(r.store, clientsFile, clients)
		}
	}
	return fmt.Errorf("client %s: %w", client.ClientID, apperrors.ErrNotFound)
}

func (r *localClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return err
	}
	kept := clients[:0]
	for _, c := range clients {
		if c.ClientID != clientID {
			kept = append(kept, c)
		}
	}
	// Absent client counts as deleted.
	return save(r.store, clientsFile, kept)
}

func (r *localClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ClientID == clientID {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *localClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return nil, err
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return page(clients, limit, offset), nil
}

func (r *localClientRepository) FindClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	clients, err := load[domain.Client](r.store, clientsFile)
	if err != nil {
		return nil, err
	}
	matched := []domain.Client{}
	for _, c := range clients {
		if c.Status == status {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

// page applies the default limit and bounds the offset.
func page[T any](records []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return []T{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
