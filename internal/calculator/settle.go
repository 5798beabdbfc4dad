package calculator

import (
	"github.com/mmynk/splitroom/internal/models"
)

// Settlement bundles everything derived from one ledger snapshot.
type Settlement struct {
	Summaries    []models.ExpenseSummary
	Transactions []models.PaymentTransaction

	// TotalExpenses is the sum of every expense amount, including expenses
	// whose members are unknown to the group.
	TotalExpenses int64
	ExpenseCount  int
}

// Settle runs ComputeSummary followed by OptimizePayments.
func Settle(members []models.Member, expenses []models.Expense) (*Settlement, error) {
	summaries, err := ComputeSummary(members, expenses)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range expenses {
		total += e.Amount
	}

	return &Settlement{
		Summaries:     summaries,
		Transactions:  OptimizePayments(summaries),
		TotalExpenses: total,
		ExpenseCount:  len(expenses),
	}, nil
}
