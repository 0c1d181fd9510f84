package services

import (
	"context"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/gitala/gitala_branch/internal/dto"
)

// LoanSvcFacade issues loans: the first one (which registers the client) and
// follow-on cycles for completed clients.
type LoanSvcFacade interface {
	// DisburseLoan registers a borrower, books the disbursement transaction
	// and its cashbook entries, with compensating rollback on failure.
	DisburseLoan(ctx context.Context, req dto.DisburseLoanRequest, recordedBy string) (*domain.Client, error)

	// IssueNewLoan starts the next cycle for a Completed client.
	IssueNewLoan(ctx context.Context, clientID string, req dto.IssueNewLoanRequest, recordedBy string) (*domain.Client, error)
}
