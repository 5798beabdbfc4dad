package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/splitroom/internal/models"
)

// Tolerance is the balance magnitude below which a member counts as settled.
const Tolerance = 0.01

// party is a private working copy of one side of the matching.
type party struct {
	id      string
	name    string
	balance float64
}

// OptimizePayments produces transfers that settle every balance in summary.
//
// Algorithm (greedy, largest creditor against largest debtor):
//   - creditors: balance > 0, sorted descending
//   - debtors: balance < 0, sorted ascending (most negative first)
//   - Walk both lists with one cursor each. The transfer is the smaller of
//     the two magnitudes, rounded to a whole unit when emitted; the
//     unrounded value is what moves the working balances.
//   - A side whose balance falls under Tolerance advances its cursor.
//   - If either side is already under Tolerance when reached, both cursors
//     advance without a transfer.
//
// The last rule can leave a debtor unpaid when it meets a near-zero
// creditor.
//
// summary is not modified.
func OptimizePayments(summary []models.ExpenseSummary) []models.PaymentTransaction {
	var creditors, debtors []party
	for _, s := range summary {
		p := party{id: s.MemberID, name: s.MemberName, balance: s.Balance}
		if s.Balance > 0 {
			creditors = append(creditors, p)
		} else if s.Balance < 0 {
			debtors = append(debtors, p)
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance > creditors[j].balance
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance < debtors[j].balance
	})

	transactions := []models.PaymentTransaction{}
	ci, di := 0, 0

	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		if math.Abs(creditor.balance) < Tolerance || math.Abs(debtor.balance) < Tolerance {
			ci++
			di++
			continue
		}

		amount := math.Min(creditor.balance, math.Abs(debtor.balance))

		transactions = append(transactions, models.PaymentTransaction{
			From:     debtor.id,
			FromName: debtor.name,
			To:       creditor.id,
			ToName:   creditor.name,
			Amount:   int64(math.Round(amount)),
		})

		creditor.balance -= amount
		debtor.balance += amount

		if math.Abs(creditor.balance) < Tolerance {
			ci++
		}
		if math.Abs(debtor.balance) < Tolerance {
			di++
		}
	}

	return transactions
}
