// Package report renders a settlement as plain text that can be pasted into
// a chat.
package report

import (
	"fmt"
	"strings"

	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/currency"
	"github.com/mmynk/splitroom/internal/models"
)

// Render builds the shareable summary for a room.
func Render(group *models.Group, s *calculator.Settlement, f *currency.Formatter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "EXPENSE SUMMARY - %s\n\n", group.Name)
	fmt.Fprintf(&b, "Total spent: %s\n", f.Format(s.TotalExpenses))
	fmt.Fprintf(&b, "Expenses: %d\n", s.ExpenseCount)
	fmt.Fprintf(&b, "Members: %d\n\n", len(group.Members))

	b.WriteString("PER MEMBER:\n")
	for _, m := range s.Summaries {
		fmt.Fprintf(&b, "• %s: %s (paid) - %s (owed) = %s\n",
			m.MemberName,
			f.FormatFloat(m.TotalPaid),
			f.FormatFloat(m.TotalOwed),
			f.FormatSigned(m.Balance),
		)
	}

	b.WriteString("\nPAYMENTS:\n")
	if len(s.Transactions) == 0 {
		b.WriteString("• Everyone is settled up\n")
	}
	for _, tx := range s.Transactions {
		fmt.Fprintf(&b, "• %s → %s: %s\n", tx.FromName, tx.ToName, f.Format(tx.Amount))
	}

	fmt.Fprintf(&b, "\nRoom code: %s", group.ID)
	return b.String()
}
