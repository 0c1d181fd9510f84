package dto

import (
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateClientRequest carries editable borrower details. Balance fields are
// never edited directly; they only move through the payment workflow.
type UpdateClientRequest struct {
	FullName       *string              `json:"fullName,omitempty"`
	Phone          *string              `json:"phone,omitempty" binding:"omitempty,ugphone"`
	Address        *string              `json:"address,omitempty"`
	GuarantorName  *string              `json:"guarantorName,omitempty"`
	GuarantorPhone *string              `json:"guarantorPhone,omitempty"`
	AssignedTo     *string              `json:"assignedTo,omitempty"`
	Status         *domain.ClientStatus `json:"status,omitempty" binding:"omitempty,oneof=Active Completed Defaulted"`
}

// ListClientsParams are the query parameters for listing clients.
type ListClientsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ClientResponse is the API representation of a borrower.
type ClientResponse struct {
	ClientID            string          `json:"clientID"`
	FullName            string          `json:"fullName"`
	Phone               string          `json:"phone"`
	Address             string          `json:"address"`
	LoanAmount          decimal.Decimal `json:"loanAmount"`
	TotalPayable        decimal.Decimal `json:"totalPayable"`
	DailyPayment        decimal.Decimal `json:"dailyPayment"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	Status              string          `json:"status"`
	StartDate           time.Time       `json:"startDate"`
	GuarantorName       string          `json:"guarantorName,omitempty"`
	GuarantorPhone      string          `json:"guarantorPhone,omitempty"`
	AssignedTo          string          `json:"assignedTo,omitempty"`
	CurrentLoanNumber   int             `json:"currentLoanNumber"`
	TotalLoansCompleted int             `json:"totalLoansCompleted"`
}

// ListClientsResponse wraps a page of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse maps a domain client to its API representation.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:            c.ClientID,
		FullName:            c.FullName,
		Phone:               c.Phone,
		Address:             c.Address,
		LoanAmount:          c.LoanAmount,
		TotalPayable:        c.TotalPayable,
		DailyPayment:        c.DailyPayment,
		OutstandingBalance:  c.OutstandingBalance,
		TotalPaid:           c.TotalPaid,
		Status:              string(c.Status),
		StartDate:           c.StartDate,
		GuarantorName:       c.GuarantorName,
		GuarantorPhone:      c.GuarantorPhone,
		AssignedTo:          c.AssignedTo,
		CurrentLoanNumber:   c.CurrentLoanNumber,
		TotalLoansCompleted: c.TotalLoansCompleted,
	}
}
