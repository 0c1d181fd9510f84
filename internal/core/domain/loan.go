package domain

import "github.com/shopspring/decimal"

// Loan terms are fixed for the branch: a flat 20% interest charge repaid
// over 30 daily installments.
var (
	interestFactor = decimal.NewFromFloat(1.20)
	termDays       = decimal.NewFromInt(30)
)

// TotalPayable returns principal plus the flat 20% interest charge.
func TotalPayable(principal decimal.Decimal) decimal.Decimal {
	return principal.Mul(interestFactor)
}

// DailyPayment returns the daily installment for a principal, rounded to
// whole shillings.
func DailyPayment(principal decimal.Decimal) decimal.Decimal {
	return TotalPayable(principal).Div(termDays).Round(0)
}

// PaymentOutcome is the result of applying one repayment to a client's
// balances. It carries everything the payment workflow needs to persist.
type PaymentOutcome struct {
	NewTotalPaid            decimal.Decimal
	NewOutstandingBalance   decimal.Decimal
	NewStatus               ClientStatus
	LoanCompletionIncrement int
}

// ApplyPayment computes updated balances for a payment of amount.
// Overpayment is allowed: the outstanding balance clamps to zero. The
// completion increment is 1 only on the payment that first brings the
// outstanding balance to zero.
func ApplyPayment(totalPaid, outstandingBalance, amount decimal.Decimal) PaymentOutcome {
	newOutstanding := outstandingBalance.Sub(amount)
	if newOutstanding.IsNegative() {
		newOutstanding = decimal.Zero
	}

	outcome := PaymentOutcome{
		NewTotalPaid:          totalPaid.Add(amount),
		NewOutstandingBalance: newOutstanding,
		NewStatus:             ClientActive,
	}
	if newOutstanding.IsZero() {
		outcome.NewStatus = ClientCompleted
		if outstandingBalance.IsPositive() {
			outcome.LoanCompletionIncrement = 1
		}
	}
	return outcome
}

// Applied returns a copy of the client with the outcome folded in.
func (o PaymentOutcome) Applied(client Client) Client {
	client.TotalPaid = o.NewTotalPaid
	client.OutstandingBalance = o.NewOutstandingBalance
	client.Status = o.NewStatus
	client.TotalLoansCompleted += o.LoanCompletionIncrement
	return client
}
