package models

// ExpenseSummary is one member's aggregated position across a ledger.
type ExpenseSummary struct {
	MemberID   string
	MemberName string

	// TotalPaid is the sum of amounts this member paid.
	TotalPaid float64

	// TotalOwed is the sum of this member's equal shares.
	TotalOwed float64

	// Balance is TotalPaid - TotalOwed.
	// Positive = owed money (creditor), negative = owes money (debtor).
	Balance float64
}

// PaymentTransaction is a single transfer that moves a debtor toward zero.
type PaymentTransaction struct {
	// From is the member ID of the debtor who pays.
	From     string
	FromName string

	// To is the member ID of the creditor who receives.
	To     string
	ToName string

	// Amount is rounded to the nearest whole currency unit.
	Amount int64
}
