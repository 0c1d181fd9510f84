package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus tracks where a borrower is in their loan cycle.
type ClientStatus string

const (
	ClientActive    ClientStatus = "Active"
	ClientCompleted ClientStatus = "Completed"
	ClientDefaulted ClientStatus = "Defaulted"
)

// Client represents a borrower with their current loan position.
// TotalPayable and DailyPayment are derived from LoanAmount (see loan.go);
// OutstandingBalance equals TotalPayable minus TotalPaid except mid-flight
// inside the payment workflow.
type Client struct {
	ClientID            string          `json:"clientID"`
	FullName            string          `json:"fullName"`
	Phone               string          `json:"phone"` // local 0-prefixed form
	Address             string          `json:"address"`
	LoanAmount          decimal.Decimal `json:"loanAmount"` // principal
	TotalPayable        decimal.Decimal `json:"totalPayable"`
	DailyPayment        decimal.Decimal `json:"dailyPayment"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	Status              ClientStatus    `json:"status"`
	StartDate           time.Time       `json:"startDate"`
	GuarantorName       string          `json:"guarantorName,omitempty"`
	GuarantorPhone      string          `json:"guarantorPhone,omitempty"`
	AssignedTo          string          `json:"assignedTo,omitempty"` // field officer username
	CurrentLoanNumber   int             `json:"currentLoanNumber"`
	TotalLoansCompleted int             `json:"totalLoansCompleted"`
	AuditFields
}
