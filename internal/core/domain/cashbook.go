package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CashbookEntryType splits the ledger into its two sides.
type CashbookEntryType string

const (
	CashbookIncome  CashbookEntryType = "Income"
	CashbookExpense CashbookEntryType = "Expense"
)

// CashbookEntryStatus categorizes what produced a ledger line.
type CashbookEntryStatus string

const (
	CashbookStatusPaid         CashbookEntryStatus = "Paid"
	CashbookStatusExpense      CashbookEntryStatus = "Expense"
	CashbookStatusProfit       CashbookEntryStatus = "Profit"
	CashbookStatusDisbursement CashbookEntryStatus = "Disbursement"
)

// CashbookEntry is one ledger line. TransactionID links repayment entries to
// the transaction that produced them; historical rows predate the link and
// carry an empty value, which is why the repair routine still matches by
// description, amount and date.
type CashbookEntry struct {
	EntryID       string              `json:"entryID"`
	TransactionID string              `json:"transactionID,omitempty"`
	Date          time.Time           `json:"date"`
	Time          string              `json:"time"`
	Description   string              `json:"description"`
	Type          CashbookEntryType   `json:"type"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        CashbookEntryStatus `json:"status"`
	EnteredBy     string              `json:"enteredBy"`
	AuditFields
}

// DuplicateKey is the composite identity the cleanup routine groups on.
// Two entries with equal keys describe the same ledger event.
func (e CashbookEntry) DuplicateKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		e.Date.Format("2006-01-02"), e.Time, e.Description, e.Amount.String(), e.Type)
}

// RepaymentDescription is the conventional description for a repayment entry.
func RepaymentDescription(clientName string) string {
	return "Loan repayment - " + clientName
}
