package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisburseLoanRequest registers a new borrower and issues their first loan.
// ProcessingFee is collected up front and booked as cashbook income.
type DisburseLoanRequest struct {
	FullName       string          `json:"fullName" binding:"required"`
	Phone          string          `json:"phone" binding:"required,ugphone"`
	Address        string          `json:"address"`
	LoanAmount     decimal.Decimal `json:"loanAmount" binding:"required"`
	ProcessingFee  decimal.Decimal `json:"processingFee"`
	StartDate      time.Time       `json:"startDate"`
	GuarantorName  string          `json:"guarantorName"`
	GuarantorPhone string          `json:"guarantorPhone" binding:"omitempty,ugphone"`
	AssignedTo     string          `json:"assignedTo"`
}

// IssueNewLoanRequest starts the next loan cycle for a Completed client.
type IssueNewLoanRequest struct {
	LoanAmount    decimal.Decimal `json:"loanAmount" binding:"required"`
	ProcessingFee decimal.Decimal `json:"processingFee"`
	StartDate     time.Time       `json:"startDate"`
}
