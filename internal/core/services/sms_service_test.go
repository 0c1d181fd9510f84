package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/core/services"
	"github.com/gitala/gitala_branch/internal/dto"
)

func TestClassifySMSError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.SMSFailureHint
	}{
		{"nil error", nil, ""},
		{"bad credentials", errors.New("invalid username or password"), domain.SMSHintMissingCredentials},
		{"unauthorized", errors.New("401 Unauthorized"), domain.SMSHintMissingCredentials},
		{"no balance", errors.New("insufficient account balance"), domain.SMSHintInsufficientBalance},
		{"bad sender", errors.New("sender id not approved"), domain.SMSHintInvalidSender},
		{"bad number", errors.New("invalid recipient number"), domain.SMSHintInvalidPhone},
		{"anything else", errors.New("gateway timeout"), domain.SMSHintOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ClassifySMSError(tt.err))
		})
	}
}

type SMSServiceTestSuite struct {
	suite.Suite
	mockGateway    *MockSMSGateway
	mockClientRepo *MockClientRepository
	service        portssvc.SMSSvcFacade
}

func (suite *SMSServiceTestSuite) SetupTest() {
	suite.mockGateway = new(MockSMSGateway)
	suite.mockClientRepo = new(MockClientRepository)
	suite.service = services.NewSMSService(suite.mockGateway, suite.mockClientRepo, 4)
}

func reminderClient(id, name, phone string) domain.Client {
	return domain.Client{
		ClientID:           id,
		FullName:           name,
		Phone:              phone,
		DailyPayment:       decimal.NewFromInt(20000),
		OutstandingBalance: decimal.NewFromInt(400000),
		Status:             domain.ClientActive,
	}
}

func (suite *SMSServiceTestSuite) TestSendReceipt_Success() {
	ctx := context.Background()
	client := reminderClient("cl-1000-abcd1234", "Nakato Grace", "0712345678")
	suite.mockGateway.On("Send", ctx, mock.MatchedBy(func(req domain.SMSRequest) bool {
		return req.Type == domain.SMSReceipt && len(req.Recipients) == 1 && req.Recipients[0] == "0712345678"
	})).Return(nil)

	result := suite.service.SendReceipt(ctx, client, domain.Receipt{
		AmountPaid:            decimal.NewFromInt(20000),
		NewOutstandingBalance: decimal.NewFromInt(380000),
	})

	suite.True(result.Success)
	suite.Equal("cl-1000-abcd1234", result.ClientID)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *SMSServiceTestSuite) TestSendReceipt_FailureCarriesHint() {
	ctx := context.Background()
	client := reminderClient("cl-1000-abcd1234", "Nakato Grace", "0712345678")
	suite.mockGateway.On("Send", ctx, mock.Anything).Return(errors.New("insufficient balance"))

	result := suite.service.SendReceipt(ctx, client, domain.Receipt{
		AmountPaid:            decimal.NewFromInt(20000),
		NewOutstandingBalance: decimal.NewFromInt(380000),
	})

	suite.False(result.Success)
	suite.Equal(domain.SMSHintInsufficientBalance, result.Hint)
	suite.NotEmpty(result.Error)
}

func (suite *SMSServiceTestSuite) TestSendReminders_DefaultsToActiveClients() {
	ctx := context.Background()
	clients := []domain.Client{
		reminderClient("cl-1000-aaaa1111", "Nakato Grace", "0712345678"),
		reminderClient("cl-1001-bbbb2222", "Okello James", "0701234567"),
	}
	suite.mockClientRepo.On("FindClientsByStatus", ctx, domain.ClientActive).Return(clients, nil)
	suite.mockGateway.On("Send", ctx, mock.MatchedBy(func(req domain.SMSRequest) bool {
		return req.Type == domain.SMSReminder
	})).Return(nil)

	results, err := suite.service.SendReminders(ctx, dto.SendRemindersRequest{})

	suite.NoError(err)
	suite.Len(results, 2)
	suite.Equal("cl-1000-aaaa1111", results[0].ClientID)
	suite.Equal("cl-1001-bbbb2222", results[1].ClientID)
	suite.True(results[0].Success)
	suite.True(results[1].Success)
	suite.mockGateway.AssertNumberOfCalls(suite.T(), "Send", 2)
}

func (suite *SMSServiceTestSuite) TestSendReminders_PerRecipientFailures() {
	ctx := context.Background()
	good := reminderClient("cl-1000-aaaa1111", "Nakato Grace", "0712345678")
	bad := reminderClient("cl-1001-bbbb2222", "Okello James", "0701234567")
	suite.mockClientRepo.On("FindClientByID", ctx, good.ClientID).Return(&good, nil)
	suite.mockClientRepo.On("FindClientByID", ctx, bad.ClientID).Return(&bad, nil)
	suite.mockGateway.On("Send", ctx, mock.MatchedBy(func(req domain.SMSRequest) bool {
		return req.Recipients[0] == good.Phone
	})).Return(nil)
	suite.mockGateway.On("Send", ctx, mock.MatchedBy(func(req domain.SMSRequest) bool {
		return req.Recipients[0] == bad.Phone
	})).Return(errors.New("invalid recipient number"))

	results, err := suite.service.SendReminders(ctx, dto.SendRemindersRequest{
		ClientIDs: []string{good.ClientID, bad.ClientID},
	})

	suite.NoError(err)
	suite.Len(results, 2)
	suite.True(results[0].Success)
	suite.False(results[1].Success)
	suite.Equal(domain.SMSHintInvalidPhone, results[1].Hint)
}

func (suite *SMSServiceTestSuite) TestSendReminders_UnknownClientFailsUpFront() {
	ctx := context.Background()
	suite.mockClientRepo.On("FindClientByID", ctx, "cl-missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.SendReminders(ctx, dto.SendRemindersRequest{ClientIDs: []string{"cl-missing"}})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockGateway.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

func (suite *SMSServiceTestSuite) TestSendReminders_NoActiveClients() {
	ctx := context.Background()
	suite.mockClientRepo.On("FindClientsByStatus", ctx, domain.ClientActive).Return([]domain.Client{}, nil)

	results, err := suite.service.SendReminders(ctx, dto.SendRemindersRequest{})

	suite.NoError(err)
	suite.Empty(results)
	suite.mockGateway.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything)
}

func (suite *SMSServiceTestSuite) TestSendReminders_CustomMessage() {
	ctx := context.Background()
	client := reminderClient("cl-1000-aaaa1111", "Nakato Grace", "0712345678")
	suite.mockClientRepo.On("FindClientByID", ctx, client.ClientID).Return(&client, nil)
	suite.mockGateway.On("Send", ctx, mock.MatchedBy(func(req domain.SMSRequest) bool {
		return req.Message == "Office closed Monday"
	})).Return(nil)

	results, err := suite.service.SendReminders(ctx, dto.SendRemindersRequest{
		ClientIDs: []string{client.ClientID},
		Message:   "Office closed Monday",
	})

	suite.NoError(err)
	suite.True(results[0].Success)
	suite.mockGateway.AssertExpectations(suite.T())
}

func TestSMSServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SMSServiceTestSuite))
}
