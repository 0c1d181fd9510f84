package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt summarizes a successfully recorded payment for the operator and
// the SMS confirmation sent to the client.
type Receipt struct {
	ClientName            string          `json:"clientName"`
	Date                  time.Time       `json:"date"`
	AmountPaid            decimal.Decimal `json:"amountPaid"`
	NewOutstandingBalance decimal.Decimal `json:"newOutstandingBalance"`
	IssuedBy              string          `json:"issuedBy"`
}
