package models

// Expense is an immutable ledger entry: one member paid Amount on behalf of
// the members in SplitAmong, who each owe an equal share.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	// Assigned by the store.
	ID string

	// GroupID is the room this expense belongs to.
	GroupID string

	// Description is a free-form label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the expense total in the smallest currency unit. Must be positive.
	Amount int64

	// PaidBy is the member ID of the payer.
	PaidBy string

	// SplitAmong lists the member IDs sharing the expense. Must be non-empty.
	// It may or may not include PaidBy.
	SplitAmong []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	// Assigned by the store.
	CreatedAt int64
}
