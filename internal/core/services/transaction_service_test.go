package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/core/services"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockClientRepo   *MockClientRepository
	mockCashbookRepo *MockCashbookRepository
	service          portssvc.TransactionSvcFacade

	client domain.Client
	txn    domain.Transaction
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockCashbookRepo = new(MockCashbookRepository)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockClientRepo,
		suite.mockCashbookRepo,
		nil,
	)

	suite.client = domain.Client{
		ClientID:           "cl-1000-abcd1234",
		FullName:           "Nakato Grace",
		Phone:              "0712345678",
		LoanAmount:         decimal.NewFromInt(500000),
		TotalPayable:       decimal.NewFromInt(600000),
		DailyPayment:       decimal.NewFromInt(20000),
		OutstandingBalance: decimal.NewFromInt(560000),
		TotalPaid:          decimal.NewFromInt(40000),
		Status:             domain.ClientActive,
		CurrentLoanNumber:  1,
	}
	suite.txn = domain.Transaction{
		TransactionID: "txn-2000-efgh5678",
		ClientID:      suite.client.ClientID,
		ClientName:    suite.client.FullName,
		Amount:        decimal.NewFromInt(20000),
		Status:        domain.TransactionPaid,
		LoanNumber:    1,
	}
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesClientBalances() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(20000)) &&
			c.OutstandingBalance.Equal(decimal.NewFromInt(580000)) &&
			c.Status == domain.ClientActive
	})).Return(nil)
	suite.mockCashbookRepo.On("FindAllEntries", ctx).Return([]domain.CashbookEntry{
		{EntryID: "cbk-1", TransactionID: suite.txn.TransactionID},
		{EntryID: "cbk-2", TransactionID: "txn-other"},
	}, nil)
	suite.mockCashbookRepo.On("DeleteEntry", ctx, "cbk-1").Return(nil)
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.txn.TransactionID).Return(nil)

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockCashbookRepo.AssertExpectations(suite.T())
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "DeleteEntry", ctx, "cbk-2")
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReopensCompletedLoan() {
	ctx := context.Background()
	suite.client.TotalPaid = decimal.NewFromInt(600000)
	suite.client.OutstandingBalance = decimal.Zero
	suite.client.Status = domain.ClientCompleted
	suite.client.TotalLoansCompleted = 1
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(580000)) &&
			c.OutstandingBalance.Equal(decimal.NewFromInt(20000)) &&
			c.Status == domain.ClientActive &&
			c.TotalLoansCompleted == 0
	})).Return(nil)
	suite.mockCashbookRepo.On("FindAllEntries", ctx).Return([]domain.CashbookEntry{}, nil)
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.txn.TransactionID).Return(nil)

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.NoError(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RequiresOwner() {
	ctx := context.Background()

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOfficer)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionByID", mock.Anything, mock.Anything)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RejectsDisbursementRecords() {
	ctx := context.Background()
	suite.txn.IsNewLoan = true
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrDisbursementDelete)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ClientGoneStillDeletesRecords() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(nil, apperrors.ErrNotFound)
	suite.mockCashbookRepo.On("FindAllEntries", ctx).Return([]domain.CashbookEntry{
		{EntryID: "cbk-1", TransactionID: suite.txn.TransactionID},
	}, nil)
	suite.mockCashbookRepo.On("DeleteEntry", ctx, "cbk-1").Return(nil)
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.txn.TransactionID).Return(nil)

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.NoError(err)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_DeleteFailureRestoresClient() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(20000))
	})).Return(nil).Once()
	suite.mockCashbookRepo.On("FindAllEntries", ctx).Return([]domain.CashbookEntry{}, nil)
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.txn.TransactionID).Return(errors.New("disk full"))
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(40000)) &&
			c.OutstandingBalance.Equal(decimal.NewFromInt(560000))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.Error(err)
	suite.NotErrorIs(err, services.ErrRollbackFailed)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_FailedRestoreEscalates() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.txn.TransactionID).Return(&suite.txn, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(20000))
	})).Return(nil).Once()
	suite.mockCashbookRepo.On("FindAllEntries", ctx).Return([]domain.CashbookEntry{}, nil)
	suite.mockTxnRepo.On("DeleteTransaction", ctx, suite.txn.TransactionID).Return(errors.New("disk full"))
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.TotalPaid.Equal(decimal.NewFromInt(40000))
	})).Return(errors.New("connection reset")).Once()

	err := suite.service.DeleteTransaction(ctx, suite.txn.TransactionID, domain.RoleOwner)

	suite.ErrorIs(err, services.ErrRollbackFailed)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
