package dto

import (
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest records one repayment against a client.
type RecordPaymentRequest struct {
	ClientID string          `json:"clientID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Notes    string          `json:"notes"`
	Date     time.Time       `json:"date"`
	Time     string          `json:"time"` // HH:MM as entered by the operator
}

// ReceiptResponse is the API representation of a payment receipt.
type ReceiptResponse struct {
	ClientName            string          `json:"clientName"`
	Date                  time.Time       `json:"date"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	NewOutstandingBalance decimal.Decimal `json:"newOutstandingBalance"`
	IssuedBy              string          `json:"issuedBy"`
}

// ToReceiptResponse maps a domain receipt to its API representation.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ClientName:            r.ClientName,
		Date:                  r.Date,
		AmountPaid:            r.AmountPaid,
		NewOutstandingBalance: r.NewOutstandingBalance,
		IssuedBy:              r.IssuedBy,
	}
}
