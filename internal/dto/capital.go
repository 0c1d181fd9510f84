package dto

import (
	"time"

	"github.com/gitala/gitala_branch/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCapitalRequest records an owner capital injection or withdrawal.
type RecordCapitalRequest struct {
	Type        domain.CapitalTransactionType `json:"type" binding:"required,oneof=Injection Withdrawal"`
	Amount      decimal.Decimal               `json:"amount" binding:"required"`
	Description string                        `json:"description" binding:"required"`
	Date        time.Time                     `json:"date"`
}

// CapitalTransactionResponse is the API representation of a capital movement.
type CapitalTransactionResponse struct {
	CapitalID   string          `json:"capitalID"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	EnteredBy   string          `json:"enteredBy"`
}

// ToCapitalTransactionResponse maps a domain capital movement to its API form.
func ToCapitalTransactionResponse(c *domain.OwnerCapitalTransaction) CapitalTransactionResponse {
	return CapitalTransactionResponse{
		CapitalID:   c.CapitalID,
		Type:        string(c.Type),
		Amount:      c.Amount,
		Description: c.Description,
		Date:        c.Date,
		EnteredBy:   c.EnteredBy,
	}
}
