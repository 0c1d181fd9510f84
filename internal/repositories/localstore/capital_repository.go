package localstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type localCapitalRepository struct {
	store *Store
}

func newLocalCapitalRepository(store *Store) portsrepo.CapitalRepositoryFacade {
	return &localCapitalRepository{store: store}
}

var _ portsrepo.CapitalRepositoryFacade = (*localCapitalRepository)(nil)

func (r *localCapitalRepository) SaveCapitalTransaction(ctx context.Context, capital domain.OwnerCapitalTransaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := load[domain.OwnerCapitalTransaction](r.store, ownerCapitalFile)
	if err != nil {
		return err
	}
	for _, c := range records {
		if c.CapitalID == capital.CapitalID {
			return fmt.Errorf("capital transaction %s: %w", capital.CapitalID, apperrors.ErrDuplicate)
		}
	}
	return save(r.store, ownerCapitalFile, append(records, capital))
}

func (r *localCapitalRepository) DeleteCapitalTransaction(ctx context.Context, capitalID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	records, err := load[domain.OwnerCapitalTransaction](r.store, ownerCapitalFile)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, c := range records {
		if c.CapitalID != capitalID {
			kept = append(kept, c)
		}
	}
	return save(r.store, ownerCapitalFile, kept)
}

func (r *localCapitalRepository) FindCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records, err := load[domain.OwnerCapitalTransaction](r.store, ownerCapitalFile)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CapitalID > records[j].CapitalID
	})
	return records, nil
}
