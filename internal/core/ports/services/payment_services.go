package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// PaymentSvcFacade runs the repayment workflow: balance update, transaction
// and cashbook writes in strict sequence, compensating rollback on failure,
// best-effort SMS receipt on success.
type PaymentSvcFacade interface {
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, recordedBy string) (*domain.Receipt, error)
}
