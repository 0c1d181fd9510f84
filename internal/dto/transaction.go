package dto

import (
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListTransactionsParams are the query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// TransactionResponse is the API representation of a repayment or
// disbursement event.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	ClientID      string          `json:"clientID"`
	ClientName    string          `json:"clientName"`
	Date          time.Time       `json:"date"`
	Time          string          `json:"time"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	Status        string          `json:"status"`
	RecordedBy    string          `json:"recordedBy"`
	LoanNumber    int             `json:"loanNumber"`
	IsNewLoan     bool            `json:"isNewLoan"`
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		ClientID:      t.ClientID,
		ClientName:    t.ClientName,
		Date:          t.Date,
		Time:          t.Time,
		Amount:        t.Amount,
		Notes:         t.Notes,
		Status:        string(t.Status),
		RecordedBy:    t.RecordedBy,
		LoanNumber:    t.LoanNumber,
		IsNewLoan:     t.IsNewLoan,
	}
}
