package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gitala/gitala_branch/internal/core/domain"
)

// --- Mock ClientRepository ---

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

func (m *MockClientRepository) FindClients(ctx context.Context, limit int, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

func (m *MockClientRepository) FindClientsByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	args := m.Called(ctx, status)
	var clients []domain.Client
	if args.Get(0) != nil {
		clients = args.Get(0).([]domain.Client)
	}
	return clients, args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindAllTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

// --- Mock CashbookRepository ---

type MockCashbookRepository struct {
	mock.Mock
}

func (m *MockCashbookRepository) SaveEntry(ctx context.Context, entry domain.CashbookEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashbookRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockCashbookRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashbookEntry, error) {
	args := m.Called(ctx, entryID)
	var entry *domain.CashbookEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.CashbookEntry)
	}
	return entry, args.Error(1)
}

func (m *MockCashbookRepository) FindEntries(ctx context.Context, from, to time.Time) ([]domain.CashbookEntry, error) {
	args := m.Called(ctx, from, to)
	var entries []domain.CashbookEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.CashbookEntry)
	}
	return entries, args.Error(1)
}

func (m *MockCashbookRepository) FindAllEntries(ctx context.Context) ([]domain.CashbookEntry, error) {
	args := m.Called(ctx)
	var entries []domain.CashbookEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.CashbookEntry)
	}
	return entries, args.Error(1)
}

// --- Mock CapitalRepository ---

type MockCapitalRepository struct {
	mock.Mock
}

func (m *MockCapitalRepository) SaveCapitalTransaction(ctx context.Context, capital domain.OwnerCapitalTransaction) error {
	args := m.Called(ctx, capital)
	return args.Error(0)
}

func (m *MockCapitalRepository) DeleteCapitalTransaction(ctx context.Context, capitalID string) error {
	args := m.Called(ctx, capitalID)
	return args.Error(0)
}

func (m *MockCapitalRepository) FindCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error) {
	args := m.Called(ctx)
	var records []domain.OwnerCapitalTransaction
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.OwnerCapitalTransaction)
	}
	return records, args.Error(1)
}

// --- Mock SMS gateway ---

type MockSMSGateway struct {
	mock.Mock
}

func (m *MockSMSGateway) Send(ctx context.Context, req domain.SMSRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
