package calculator

import (
	"github.com/mmynk/splitroom/internal/models"
)

// ComputeSummary folds a ledger into one ExpenseSummary per member.
//
// Algorithm:
//   - Every member starts at zero, in the order given
//   - For each expense: the payer gets +amount paid, each split member gets
//     +amount/len(splitAmong) owed
//   - References to unknown members are dropped silently
//   - Finally: balance = total_paid - total_owed
//
// Shares accumulate as float64 and are never rounded here.
// An expense with a non-positive amount or an empty split list fails the
// whole computation with an InvalidExpenseError.
func ComputeSummary(members []models.Member, expenses []models.Expense) ([]models.ExpenseSummary, error) {
	summaries := make([]models.ExpenseSummary, 0, len(members))
	index := make(map[string]int, len(members))

	for _, m := range members {
		if _, exists := index[m.ID]; exists {
			continue
		}
		index[m.ID] = len(summaries)
		summaries = append(summaries, models.ExpenseSummary{
			MemberID:   m.ID,
			MemberName: m.Name,
		})
	}

	for _, expense := range expenses {
		if err := ValidateExpense(expense); err != nil {
			return nil, err
		}

		if i, ok := index[expense.PaidBy]; ok {
			summaries[i].TotalPaid += float64(expense.Amount)
		}

		share, err := EqualShare(expense.Amount, len(expense.SplitAmong))
		if err != nil {
			return nil, err
		}
		for _, memberID := range expense.SplitAmong {
			if i, ok := index[memberID]; ok {
				summaries[i].TotalOwed += share
			}
		}
	}

	for i := range summaries {
		summaries[i].Balance = summaries[i].TotalPaid - summaries[i].TotalOwed
	}

	return summaries, nil
}
