package localstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type localCashbookRepository struct {
	store *Store
}

func newLocalCashbookRepository(store *Store) portsrepo.CashbookRepositoryFacade {
	return &localCashbookRepository{store: store}
}

var _ portsrepo.CashbookRepositoryFacade = (*localCashbookRepository)(nil)

func (r *localCashbookRepository) SaveEntry(ctx context.Context, entry domain.CashbookEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, err := load[domain.CashbookEntry](r.store, cashbookFile)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.EntryID == entry.EntryID {
			return fmt.Errorf("cashbook entry %s: %w", entry.EntryID, apperrors.ErrDuplicate)
		}
	}
	return save(r.store, cashbookFile, append(entries, entry))
}

func (r *localCashbookRepository) DeleteEntry(ctx context.Context, entryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entries, err := load[domain.CashbookEntry](r.store, cashbookFile)
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.EntryID != entryID {
			kept = append(kept, e)
		}
	}
	return save(r.store, cashbookFile, kept)
}

func (r *localCashbookRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashbookEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries, err := load[domain.CashbookEntry](r.store, cashbookFile)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.EntryID == entryID {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *localCashbookRepository) FindEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries, err := load[domain.CashbookEntry](r.store, cashbookFile)
	if err != nil {
		return nil, err
	}
	matched := []domain.CashbookEntry{}
	for _, e := range entries {
		if e.Date.Before(from) || e.Date.After(to) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].EntryID > matched[j].EntryID
	})
	return matched, nil
}

func (r *localCashbookRepository) FindAllEntries(ctx context.Context) ([]domain.CashbookEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return load[domain.CashbookEntry](r.store, cashbookFile)
}
