package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gitala/gitala_branch/internal/apperrors"
	"github.com/gitala/gitala_branch/internal/core/domain"
	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
	portssvc "github.com/gitala/gitala_branch/internal/core/ports/services"
	"github.com/gitala/gitala_branch/internal/dto"
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/gitala/gitala_branch/internal/utils"
	"github.com/shopspring/decimal"
)

var (
	// ErrLoanNotCompleted rejects a new loan cycle while the current one is
	// still outstanding.
	ErrLoanNotCompleted = errors.New("client's current loan is not completed")

	// ErrInvalidPrincipal rejects non-positive loan amounts.
	ErrInvalidPrincipal = errors.New("loan amount must be positive")
)

// disbursementSteps tracks the write sequence of a loan issuance for
// compensating rollback.
type disbursementSteps struct {
	snapshot           *domain.Client // nil when the client itself was created
	clientID           string
	clientWritten      bool
	transactionID      string
	transactionCreated bool
	expenseEntryID     string
	expenseCreated     bool
	feeEntryID         string
	feeCreated         bool
}

// loanService issues loans: first-time disbursement (which registers the
// client) and follow-on cycles. Same sequential-write, compensating-rollback
// shape as the payment workflow.
type loanService struct {
	clientRepo   portsrepo.ClientRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	cashbookRepo portsrepo.CashbookRepositoryFacade
	notifier     portssvc.Notifier
}

// NewLoanService creates a new LoanService.
func NewLoanService(
	clientRepo portsrepo.ClientRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	notifier portssvc.Notifier,
) portssvc.LoanSvcFacade {
	return &loanService{
		clientRepo:   clientRepo,
		txnRepo:      txnRepo,
		cashbookRepo: cashbookRepo,
		notifier:     notifier,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// DisburseLoan registers a borrower and issues their first loan.
func (s *loanService) DisburseLoan(ctx context.Context, req dto.DisburseLoanRequest, recordedBy string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.LoanAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidPrincipal)
	}
	if req.ProcessingFee.IsNegative() {
		return nil, fmt.Errorf("%w: processing fee cannot be negative", apperrors.ErrValidation)
	}
	phone, err := utils.NormalizePhone(req.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	guarantorPhone := ""
	if req.GuarantorPhone != "" {
		guarantorPhone, err = utils.NormalizePhone(req.GuarantorPhone)
		if err != nil {
			return nil, fmt.Errorf("%w: guarantor %w", apperrors.ErrValidation, err)
		}
	}

	now := time.Now()
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	totalPayable := domain.TotalPayable(req.LoanAmount)
	client := domain.Client{
		ClientID:           domain.NewRecordID("cl"),
		FullName:           req.FullName,
		Phone:              phone,
		Address:            req.Address,
		LoanAmount:         req.LoanAmount,
		TotalPayable:       totalPayable,
		DailyPayment:       domain.DailyPayment(req.LoanAmount),
		OutstandingBalance: totalPayable,
		TotalPaid:          decimal.Zero,
		Status:             domain.ClientActive,
		StartDate:          startDate,
		GuarantorName:      req.GuarantorName,
		GuarantorPhone:     guarantorPhone,
		AssignedTo:         req.AssignedTo,
		CurrentLoanNumber:  1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     recordedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: recordedBy,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.notify(portssvc.NotifyError, "Loan disbursement failed: could not save client")
		return nil, fmt.Errorf("failed to save client: %w", err)
	}
	steps := disbursementSteps{clientID: client.ClientID, clientWritten: true}

	if err := s.writeDisbursementRecords(ctx, &steps, client, req.ProcessingFee, startDate, recordedBy, now); err != nil {
		return nil, s.rollback(ctx, steps, err)
	}

	logger.Info("Loan disbursed",
		slog.String("client_id", client.ClientID),
		slog.String("principal", req.LoanAmount.String()),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Loan of %s disbursed to %s", req.LoanAmount.String(), client.FullName))
	return &client, nil
}

// IssueNewLoan starts the next loan cycle for a Completed client.
func (s *loanService) IssueNewLoan(ctx context.Context, clientID string, req dto.IssueNewLoanRequest, recordedBy string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.LoanAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidPrincipal)
	}
	if req.ProcessingFee.IsNegative() {
		return nil, fmt.Errorf("%w: processing fee cannot be negative", apperrors.ErrValidation)
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up client %s: %w", clientID, err)
	}
	if client.Status != domain.ClientCompleted {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrLoanNotCompleted)
	}

	now := time.Now()
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	snapshot := *client
	totalPayable := domain.TotalPayable(req.LoanAmount)
	updated := *client
	updated.LoanAmount = req.LoanAmount
	updated.TotalPayable = totalPayable
	updated.DailyPayment = domain.DailyPayment(req.LoanAmount)
	updated.OutstandingBalance = totalPayable
	updated.TotalPaid = decimal.Zero
	updated.Status = domain.ClientActive
	updated.StartDate = startDate
	updated.CurrentLoanNumber++
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = recordedBy

	if err := s.clientRepo.UpdateClient(ctx, updated); err != nil {
		s.notify(portssvc.NotifyError, "New loan failed: could not update client")
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	steps := disbursementSteps{snapshot: &snapshot, clientID: client.ClientID, clientWritten: true}

	if err := s.writeDisbursementRecords(ctx, &steps, updated, req.ProcessingFee, startDate, recordedBy, now); err != nil {
		return nil, s.rollback(ctx, steps, err)
	}

	logger.Info("New loan issued",
		slog.String("client_id", client.ClientID),
		slog.Int("loan_number", updated.CurrentLoanNumber),
	)
	s.notify(portssvc.NotifySuccess, fmt.Sprintf("Loan %d of %s issued to %s", updated.CurrentLoanNumber, req.LoanAmount.String(), client.FullName))
	return &updated, nil
}

// writeDisbursementRecords persists the disbursement transaction, the
// principal expense entry and, when a fee was collected, the processing-fee
// income entry. Steps are marked as they complete.
func (s *loanService) writeDisbursementRecords(ctx context.Context, steps *disbursementSteps, client domain.Client, fee decimal.Decimal, date time.Time, recordedBy string, now time.Time) error {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     recordedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: recordedBy,
	}
	wallClock := now.Format("15:04")

	txn := domain.Transaction{
		TransactionID: domain.NewRecordID("txn"),
		ClientID:      client.ClientID,
		ClientName:    client.FullName,
		Date:          date,
		Time:          wallClock,
		Amount:        client.LoanAmount,
		Notes:         "Loan disbursement",
		Status:        domain.TransactionPaid,
		RecordedBy:    recordedBy,
		LoanNumber:    client.CurrentLoanNumber,
		IsNewLoan:     true,
		AuditFields:   audit,
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to record disbursement transaction: %w", err)
	}
	steps.transactionID = txn.TransactionID
	steps.transactionCreated = true

	expense := domain.CashbookEntry{
		EntryID:       domain.NewRecordID("cb"),
		TransactionID: txn.TransactionID,
		Date:          date,
		Time:          wallClock,
		Description:   "Loan disbursement - " + client.FullName,
		Type:          domain.CashbookExpense,
		Amount:        client.LoanAmount,
		Status:        domain.CashbookStatusDisbursement,
		EnteredBy:     recordedBy,
		AuditFields:   audit,
	}
	if err := s.cashbookRepo.SaveEntry(ctx, expense); err != nil {
		return fmt.Errorf("failed to record disbursement expense: %w", err)
	}
	steps.expenseEntryID = expense.EntryID
	steps.expenseCreated = true

	if fee.IsPositive() {
		feeEntry := domain.CashbookEntry{
			EntryID:       domain.NewRecordID("cb"),
			TransactionID: txn.TransactionID,
			Date:          date,
			Time:          wallClock,
			Description:   "Processing fee - " + client.FullName,
			Type:          domain.CashbookIncome,
			Amount:        fee,
			Status:        domain.CashbookStatusProfit,
			EnteredBy:     recordedBy,
			AuditFields:   audit,
		}
		if err := s.cashbookRepo.SaveEntry(ctx, feeEntry); err != nil {
			return fmt.Errorf("failed to record processing fee: %w", err)
		}
		steps.feeEntryID = feeEntry.EntryID
		steps.feeCreated = true
	}

	return nil
}

// rollback undoes completed disbursement writes in reverse order. A created
// client is deleted; an updated client is restored from its snapshot.
func (s *loanService) rollback(ctx context.Context, steps disbursementSteps, cause error) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Warn("Disbursement write failed, rolling back", slog.String("cause", cause.Error()))

	var compensationErrs []error

	if steps.feeCreated {
		if err := s.cashbookRepo.DeleteEntry(ctx, steps.feeEntryID); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("delete fee entry %s: %w", steps.feeEntryID, err))
		}
	}
	if steps.expenseCreated {
		if err := s.cashbookRepo.DeleteEntry(ctx, steps.expenseEntryID); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("delete expense entry %s: %w", steps.expenseEntryID, err))
		}
	}
	if steps.transactionCreated {
		if err := s.txnRepo.DeleteTransaction(ctx, steps.transactionID); err != nil {
			compensationErrs = append(compensationErrs, fmt.Errorf("delete transaction %s: %w", steps.transactionID, err))
		}
	}
	if steps.clientWritten {
		if steps.snapshot != nil {
			if err := s.clientRepo.UpdateClient(ctx, *steps.snapshot); err != nil {
				compensationErrs = append(compensationErrs, fmt.Errorf("restore client %s: %w", steps.clientID, err))
			}
		} else {
			if err := s.clientRepo.DeleteClient(ctx, steps.clientID); err != nil {
				compensationErrs = append(compensationErrs, fmt.Errorf("delete client %s: %w", steps.clientID, err))
			}
		}
	}

	if len(compensationErrs) > 0 {
		logger.Error("Disbursement rollback failed", slog.Int("failed_steps", len(compensationErrs)))
		s.notify(portssvc.NotifyError, "Loan failed and rollback did not complete - contact support")
		return fmt.Errorf("%w: %w (after %w)", ErrRollbackFailed, errors.Join(compensationErrs...), cause)
	}

	s.notify(portssvc.NotifyError, "Loan failed; no changes were saved")
	return fmt.Errorf("disbursement rolled back: %w", cause)
}

func (s *loanService) notify(kind portssvc.NotificationKind, message string) {
	if s.notifier != nil {
		s.notifier.Notify(kind, message, 5*time.Second)
	}
}
