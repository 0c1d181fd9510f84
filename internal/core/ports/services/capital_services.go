package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// CapitalSvcFacade records owner capital movements together with their
// paired cashbook entry.
type CapitalSvcFacade interface {
	RecordCapital(ctx context.Context, req dto.RecordCapitalRequest, enteredBy string) (*domain.OwnerCapitalTransaction, error)
	ListCapitalTransactions(ctx context.Context) ([]domain.OwnerCapitalTransaction, error)
}
