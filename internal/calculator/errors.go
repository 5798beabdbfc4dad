package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidExpense is the sentinel matched by every InvalidExpenseError.
var ErrInvalidExpense = errors.New("invalid expense")

// InvalidExpenseError reports an expense that violates the ledger contract.
type InvalidExpenseError struct {
	ExpenseID string
	Reason    string
}

func (e *InvalidExpenseError) Error() string {
	if e.ExpenseID == "" {
		return fmt.Sprintf("invalid expense: %s", e.Reason)
	}
	return fmt.Sprintf("invalid expense %s: %s", e.ExpenseID, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidExpense.
func (e *InvalidExpenseError) Unwrap() error {
	return ErrInvalidExpense
}
