package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus marks whether a repayment event settled.
type TransactionStatus string

const (
	TransactionPaid   TransactionStatus = "Paid"
	TransactionUnpaid TransactionStatus = "Unpaid"
)

// Transaction is one repayment or loan-disbursement event for exactly one
// client. ClientName is a denormalized snapshot taken at recording time.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	ClientID      string            `json:"clientID"`
	ClientName    string            `json:"clientName"`
	Date          time.Time         `json:"date"`
	Time          string            `json:"time"` // wall-clock HH:MM as entered by the operator
	Amount        decimal.Decimal   `json:"amount"`
	Notes         string            `json:"notes,omitempty"`
	Status        TransactionStatus `json:"status"`
	RecordedBy    string            `json:"recordedBy"`
	LoanNumber    int               `json:"loanNumber"`
	IsNewLoan     bool              `json:"isNewLoan"` // true for disbursement events
	AuditFields
}
