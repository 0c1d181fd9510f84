package localstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

type localTransactionRepository struct {
	store *Store
}

func newLocalTransactionRepository(store *Store) portsrepo.TransactionRepositoryFacade {
	return &localTransactionRepository{store: store}
}

var _ portsrepo.TransactionRepositoryFacade = (*localTransactionRepository)(nil)

func (r *localTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return err
	}
	for _, t := range txns {
		if t.TransactionID == txn.TransactionID {
			return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
		}
	}
	return save(r.store, transactionsFile, append(txns, txn))
}

func (r *localTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return err
	}
	kept := txns[:0]
	for _, t := range txns {
		if t.TransactionID != transactionID {
			kept = append(kept, t)
		}
	}
	return save(r.store, transactionsFile, kept)
}

func (r *localTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		if t.TransactionID == transactionID {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *localTransactionRepository) FindTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return nil, err
	}
	matched := []domain.Transaction{}
	for _, t := range txns {
		if t.ClientID == clientID {
			matched = append(matched, t)
		}
	}
	sortTransactionsNewestFirst(matched)
	return matched, nil
}

func (r *localTransactionRepository) FindTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txns, err := load[domain.Transaction](r.store, transactionsFile)
	if err != nil {
		return nil, err
	}
	sortTransactionsNewestFirst(txns)
	return page(txns, limit, offset), nil
}

func (r *localTransactionRepository) FindAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return load[domain.Transaction](r.store, transactionsFile)
}

func sortTransactionsNewestFirst(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].TransactionID > txns[j].TransactionID
	})
}
