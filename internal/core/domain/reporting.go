package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSummary is the owner's top-line view of the loan book.
type PortfolioSummary struct {
	ActiveClients    int             `json:"activeClients"`
	CompletedClients int             `json:"completedClients"`
	DefaultedClients int             `json:"defaultedClients"`
	TotalDisbursed   decimal.Decimal `json:"totalDisbursed"` // sum of principals
	TotalPayable     decimal.Decimal `json:"totalPayable"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}

// OfficerCollection is one field officer's repayment total for a period.
type OfficerCollection struct {
	Officer   string          `json:"officer"`
	Payments  int             `json:"payments"`
	Collected decimal.Decimal `json:"collected"`
}

// CashbookSummary aggregates the ledger over a date range.
type CashbookSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetPosition  decimal.Decimal `json:"netPosition"`
	EntryCount   int             `json:"entryCount"`
}
