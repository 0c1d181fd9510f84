package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalTransactionType distinguishes owner money moving in from money
// moving out.
type CapitalTransactionType string

const (
	CapitalInjection  CapitalTransactionType = "Injection"
	CapitalWithdrawal CapitalTransactionType = "Withdrawal"
)

// OwnerCapitalTransaction records a capital injection or withdrawal by the
// business owner. Each one is paired with a cashbook entry created in the
// same workflow.
type OwnerCapitalTransaction struct {
	CapitalID   string                 `json:"capitalID"`
	Type        CapitalTransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date"`
	EnteredBy   string                 `json:"enteredBy"`
	AuditFields
}
