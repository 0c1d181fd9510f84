package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// SMSGateway is the outbound port to the third-party SMS provider. A failed
// send never blocks the workflow that requested it.
type SMSGateway interface {
	Send(ctx context.Context, req domain.SMSRequest) error
}

// SMSSvcFacade sends receipts and payment reminders.
type SMSSvcFacade interface {
	// SendReceipt confirms a recorded payment to the client. Best effort.
	SendReceipt(ctx context.Context, client domain.Client, receipt domain.Receipt) domain.SMSResult

	// SendReminders fans reminder messages out to the targeted clients
	// (all Active clients when the request names none).
	SendReminders(ctx context.Context, req dto.SendRemindersRequest) ([]domain.SMSResult, error)
}
