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
	"github.com/gitala/gitala_branch/internal/dto"
)

type LoanServiceTestSuite struct {
	suite.Suite
	mockClientRepo   *MockClientRepository
	mockTxnRepo      *MockTransactionRepository
	mockCashbookRepo *MockCashbookRepository
	service          portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCashbookRepo = new(MockCashbookRepository)
	suite.service = services.NewLoanService(
		suite.mockClientRepo,
		suite.mockTxnRepo,
		suite.mockCashbookRepo,
		nil,
	)
}

func disburseReq() dto.DisburseLoanRequest {
	return dto.DisburseLoanRequest{
		FullName:      "Okello James",
		Phone:         "+256712345678",
		Address:       "Gitala",
		LoanAmount:    decimal.NewFromInt(500000),
		ProcessingFee: decimal.NewFromInt(10000),
	}
}

func (suite *LoanServiceTestSuite) TestDisburseLoan_DerivesBalances() {
	ctx := context.Background()
	var saved domain.Client
	suite.mockClientRepo.On("SaveClient", ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.Client)
	}).Return(nil)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.IsNewLoan && txn.Amount.Equal(decimal.NewFromInt(500000))
	})).Return(nil)
	suite.mockCashbookRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.CashbookEntry) bool {
		return e.Type == domain.CashbookExpense && e.Status == domain.CashbookStatusDisbursement
	})).Return(nil)
	suite.mockCashbookRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.CashbookEntry) bool {
		return e.Type == domain.CashbookIncome && e.Status == domain.CashbookStatusProfit &&
			e.Amount.Equal(decimal.NewFromInt(10000))
	})).Return(nil)

	client, err := suite.service.DisburseLoan(ctx, disburseReq(), "owner")

	suite.NoError(err)
	suite.True(decimal.NewFromInt(600000).Equal(client.TotalPayable))
	suite.True(decimal.NewFromInt(20000).Equal(client.DailyPayment))
	suite.True(client.OutstandingBalance.Equal(client.TotalPayable))
	suite.True(client.TotalPaid.IsZero())
	suite.Equal(domain.ClientActive, client.Status)
	suite.Equal(1, client.CurrentLoanNumber)
	suite.Equal("0712345678", saved.Phone)
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestDisburseLoan_NoFeeSkipsIncomeEntry() {
	ctx := context.Background()
	req := disburseReq()
	req.ProcessingFee = decimal.Zero
	suite.mockClientRepo.On("SaveClient", ctx, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything).Return(nil)
	suite.mockCashbookRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.CashbookEntry) bool {
		return e.Status == domain.CashbookStatusDisbursement
	})).Return(nil)

	_, err := suite.service.DisburseLoan(ctx, req, "owner")

	suite.NoError(err)
	suite.mockCashbookRepo.AssertNumberOfCalls(suite.T(), "SaveEntry", 1)
}

func (suite *LoanServiceTestSuite) TestDisburseLoan_RejectsBadInput() {
	ctx := context.Background()

	req := disburseReq()
	req.LoanAmount = decimal.Zero
	_, err := suite.service.DisburseLoan(ctx, req, "owner")
	suite.ErrorIs(err, services.ErrInvalidPrincipal)

	req = disburseReq()
	req.Phone = "12345"
	_, err = suite.service.DisburseLoan(ctx, req, "owner")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockClientRepo.AssertNotCalled(suite.T(), "SaveClient", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestDisburseLoan_TransactionFailureDeletesClient() {
	ctx := context.Background()
	suite.mockClientRepo.On("SaveClient", ctx, mock.Anything).Return(nil)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything).Return(errors.New("backend down"))
	suite.mockClientRepo.On("DeleteClient", ctx, mock.Anything).Return(nil)

	_, err := suite.service.DisburseLoan(ctx, disburseReq(), "owner")

	suite.Error(err)
	suite.mockClientRepo.AssertCalled(suite.T(), "DeleteClient", ctx, mock.Anything)
}

func completedClient() *domain.Client {
	return &domain.Client{
		ClientID:            "cl-1000-abcd1234",
		FullName:            "Okello James",
		Phone:               "0712345678",
		LoanAmount:          decimal.NewFromInt(500000),
		TotalPayable:        decimal.NewFromInt(600000),
		DailyPayment:        decimal.NewFromInt(20000),
		OutstandingBalance:  decimal.Zero,
		TotalPaid:           decimal.NewFromInt(600000),
		Status:              domain.ClientCompleted,
		CurrentLoanNumber:   1,
		TotalLoansCompleted: 1,
	}
}

func (suite *LoanServiceTestSuite) TestIssueNewLoan_ResetsBalances() {
	ctx := context.Background()
	suite.mockClientRepo.On("FindClientByID", ctx, "cl-1000-abcd1234").Return(completedClient(), nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.CurrentLoanNumber == 2 &&
			c.Status == domain.ClientActive &&
			c.TotalPaid.IsZero() &&
			c.OutstandingBalance.Equal(decimal.NewFromInt(720000))
	})).Return(nil)
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.IsNewLoan && txn.LoanNumber == 2
	})).Return(nil)
	suite.mockCashbookRepo.On("SaveEntry", ctx, mock.Anything).Return(nil)

	client, err := suite.service.IssueNewLoan(ctx, "cl-1000-abcd1234", dto.IssueNewLoanRequest{
		LoanAmount:    decimal.NewFromInt(600000),
		ProcessingFee: decimal.NewFromInt(12000),
	}, "owner")

	suite.NoError(err)
	suite.Equal(2, client.CurrentLoanNumber)
	suite.Equal(1, client.TotalLoansCompleted)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestIssueNewLoan_RequiresCompletedStatus() {
	ctx := context.Background()
	active := completedClient()
	active.Status = domain.ClientActive
	active.OutstandingBalance = decimal.NewFromInt(100000)
	suite.mockClientRepo.On("FindClientByID", ctx, "cl-1000-abcd1234").Return(active, nil)

	_, err := suite.service.IssueNewLoan(ctx, "cl-1000-abcd1234", dto.IssueNewLoanRequest{
		LoanAmount: decimal.NewFromInt(600000),
	}, "owner")

	suite.ErrorIs(err, services.ErrLoanNotCompleted)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "UpdateClient", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestIssueNewLoan_RollbackRestoresSnapshot() {
	ctx := context.Background()
	suite.mockClientRepo.On("FindClientByID", ctx, "cl-1000-abcd1234").Return(completedClient(), nil)
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.CurrentLoanNumber == 2
	})).Return(nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything).Return(errors.New("backend down"))
	// Compensation restores the completed snapshot.
	suite.mockClientRepo.On("UpdateClient", ctx, mock.MatchedBy(func(c domain.Client) bool {
		return c.CurrentLoanNumber == 1 && c.Status == domain.ClientCompleted
	})).Return(nil).Once()

	_, err := suite.service.IssueNewLoan(ctx, "cl-1000-abcd1234", dto.IssueNewLoanRequest{
		LoanAmount: decimal.NewFromInt(600000),
	}, "owner")

	suite.Error(err)
	suite.mockClientRepo.AssertExpectations(suite.T())
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
