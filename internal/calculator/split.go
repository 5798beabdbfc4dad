package calculator

import (
	"github.com/mmynk/splitroom/internal/models"
)

// EqualShare returns each participant's share of amount.
// The division is real-valued; rounding is deferred to OptimizePayments.
func EqualShare(amount int64, participants int) (float64, error) {
	if amount <= 0 {
		return 0, &InvalidExpenseError{Reason: "amount must be positive"}
	}
	if participants <= 0 {
		return 0, &InvalidExpenseError{Reason: "must have at least one participant"}
	}
	return float64(amount) / float64(participants), nil
}

// ValidateExpense checks the preconditions ComputeSummary relies on.
// Unknown member references are not an error here.
func ValidateExpense(e models.Expense) error {
	if e.Amount <= 0 {
		return &InvalidExpenseError{ExpenseID: e.ID, Reason: "amount must be positive"}
	}
	if len(e.SplitAmong) == 0 {
		return &InvalidExpenseError{ExpenseID: e.ID, Reason: "must have at least one participant"}
	}
	return nil
}
