package dto

import (
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashbookEntryRequest records a manual ledger line.
type CreateCashbookEntryRequest struct {
	Date        time.Time                  `json:"date"`
	Time        string                     `json:"time"`
	Description string                     `json:"description" binding:"required"`
	Type        domain.CashbookEntryType   `json:"type" binding:"required,oneof=Income Expense"`
	Amount      decimal.Decimal            `json:"amount" binding:"required"`
	Status      domain.CashbookEntryStatus `json:"status" binding:"omitempty,oneof=Paid Expense Profit Disbursement"`
}

// ListCashbookParams bounds a ledger listing by date.
type ListCashbookParams struct {
	From time.Time `form:"from" time_format:"2006-01-02"`
	To   time.Time `form:"to" time_format:"2006-01-02"`
}

// CashbookEntryResponse is the API representation of a ledger line.
type CashbookEntryResponse struct {
	EntryID       string          `json:"entryID"`
	TransactionID string          `json:"transactionID,omitempty"`
	Date          time.Time       `json:"date"`
	Time          string          `json:"time"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	EnteredBy     string          `json:"enteredBy"`
}

// ToCashbookEntryResponse maps a domain entry to its API representation.
func ToCashbookEntryResponse(e *domain.CashbookEntry) CashbookEntryResponse {
	return CashbookEntryResponse{
		EntryID:       e.EntryID,
		TransactionID: e.TransactionID,
		Date:          e.Date,
		Time:          e.Time,
		Description:   e.Description,
		Type:          string(e.Type),
		Amount:        e.Amount,
		Status:        string(e.Status),
		EnteredBy:     e.EnteredBy,
	}
}

// DuplicatePreviewResponse summarizes what a cleanup run would remove, for
// the owner's confirmation prompt.
type DuplicatePreviewResponse struct {
	DuplicateGroups int `json:"duplicateGroups"`
	EntriesToDelete int `json:"entriesToDelete"`
}

// CleanupResultResponse reports a completed duplicate cleanup.
type CleanupResultResponse struct {
	DuplicateGroups int `json:"duplicateGroups"`
	Deleted         int `json:"deleted"`
	Failed          int `json:"failed"`
}

// RepairResultResponse reports a cashbook repair run. The run accepts
// partial completion, so created and failed can both be non-zero.
type RepairResultResponse struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}
