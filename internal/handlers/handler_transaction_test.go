package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/gitala/gitala_branch/internal/utils"
)

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactionsByClientID(ctx context.Context, clientID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string, requesterRole domain.StaffRole) error {
	args := m.Called(ctx, transactionID, requesterRole)
	return args.Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	jwtSecret              string
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockTransactionService = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	registerTransactionRoutes(v1, suite.mockTransactionService)
}

func (suite *TransactionHandlerTestSuite) authToken(username, role string) string {
	token, err := utils.GenerateJWT(username, role, suite.jwtSecret, time.Hour, "gitala-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransactionHandlerTestSuite) deleteTransaction(id, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/transactions/"+id, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_OwnerSucceeds() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "txn-2000-efgh5678", domain.RoleOwner).
		Return(nil).Once()

	w := suite.deleteTransaction("txn-2000-efgh5678", suite.authToken("mugisha", "owner"))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransactionService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_OfficerIsForbidden() {
	w := suite.deleteTransaction("txn-2000-efgh5678", suite.authToken("akello", "officer"))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_RequiresToken() {
	w := suite.deleteTransaction("txn-2000-efgh5678", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_NotFound() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "txn-missing", domain.RoleOwner).
		Return(apperrors.ErrNotFound).Once()

	w := suite.deleteTransaction("txn-missing", suite.authToken("mugisha", "owner"))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_DisbursementIsBadRequest() {
	suite.mockTransactionService.On("DeleteTransaction", mock.Anything, "txn-2000-efgh5678", domain.RoleOwner).
		Return(apperrors.ErrValidation).Once()

	w := suite.deleteTransaction("txn-2000-efgh5678", suite.authToken("mugisha", "owner"))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
