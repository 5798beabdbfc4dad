package calculator

import (
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/splitroom/internal/models"
)

func balanceOf(id, name string, balance float64) models.ExpenseSummary {
	return models.ExpenseSummary{MemberID: id, MemberName: name, Balance: balance}
}

// applyTransactions returns each member's balance after every debtor pays.
func applyTransactions(summary []models.ExpenseSummary, txs []models.PaymentTransaction) map[string]float64 {
	balances := make(map[string]float64, len(summary))
	for _, s := range summary {
		balances[s.MemberID] = s.Balance
	}
	for _, tx := range txs {
		balances[tx.From] += float64(tx.Amount)
		balances[tx.To] -= float64(tx.Amount)
	}
	return balances
}

func countSides(summary []models.ExpenseSummary) (creditors, debtors int) {
	for _, s := range summary {
		if s.Balance > 0 {
			creditors++
		} else if s.Balance < 0 {
			debtors++
		}
	}
	return creditors, debtors
}

func TestOptimizePayments(t *testing.T) {
	tests := []struct {
		name    string
		summary []models.ExpenseSummary
		want    []models.PaymentTransaction
	}{
		{
			name: "one debtor pays one creditor",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 50000),
				balanceOf(bob.ID, "Bob", -50000),
			},
			want: []models.PaymentTransaction{
				{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 50000},
			},
		},
		{
			name: "two debtors pay one creditor in summary order",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 200000),
				balanceOf(bob.ID, "Bob", -100000),
				balanceOf(charlie.ID, "Charlie", -100000),
			},
			want: []models.PaymentTransaction{
				{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 100000},
				{From: charlie.ID, FromName: "Charlie", To: alice.ID, ToName: "Alice", Amount: 100000},
			},
		},
		{
			name: "largest debtor is matched first",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 300),
				balanceOf(bob.ID, "Bob", -100),
				balanceOf(charlie.ID, "Charlie", -200),
			},
			want: []models.PaymentTransaction{
				{From: charlie.ID, FromName: "Charlie", To: alice.ID, ToName: "Alice", Amount: 200},
				{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 100},
			},
		},
		{
			name: "one debtor pays two creditors, largest first",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 100),
				balanceOf(bob.ID, "Bob", 400),
				balanceOf(charlie.ID, "Charlie", -500),
			},
			want: []models.PaymentTransaction{
				{From: charlie.ID, FromName: "Charlie", To: bob.ID, ToName: "Bob", Amount: 400},
				{From: charlie.ID, FromName: "Charlie", To: alice.ID, ToName: "Alice", Amount: 100},
			},
		},
		{
			name: "chained matching across both lists",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 650),
				balanceOf(bob.ID, "Bob", 300),
				balanceOf(charlie.ID, "Charlie", -350),
				balanceOf(diana.ID, "Diana", -600),
			},
			want: []models.PaymentTransaction{
				{From: diana.ID, FromName: "Diana", To: alice.ID, ToName: "Alice", Amount: 600},
				{From: charlie.ID, FromName: "Charlie", To: alice.ID, ToName: "Alice", Amount: 50},
				{From: charlie.ID, FromName: "Charlie", To: bob.ID, ToName: "Bob", Amount: 300},
			},
		},
		{
			name: "amounts are rounded per transaction",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 200.0/3.0),
				balanceOf(bob.ID, "Bob", -100.0/3.0),
				balanceOf(charlie.ID, "Charlie", -100.0/3.0),
			},
			want: []models.PaymentTransaction{
				{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 33},
				{From: charlie.ID, FromName: "Charlie", To: alice.ID, ToName: "Alice", Amount: 33},
			},
		},
		{
			name: "half units round up",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 50.5),
				balanceOf(bob.ID, "Bob", -50.5),
			},
			want: []models.PaymentTransaction{
				{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 51},
			},
		},
		{
			name: "all settled",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 0),
				balanceOf(bob.ID, "Bob", 0),
			},
			want: []models.PaymentTransaction{},
		},
		{
			name:    "empty summary",
			summary: nil,
			want:    []models.PaymentTransaction{},
		},
		{
			name: "creditors only",
			summary: []models.ExpenseSummary{
				balanceOf(alice.ID, "Alice", 10),
			},
			want: []models.PaymentTransaction{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptimizePayments(tt.summary)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OptimizePayments() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

// A near-zero creditor advances both cursors, so the debtor met at the same
// step is skipped without a transfer.
func TestOptimizePaymentsSkipsBothSidesOnNearZero(t *testing.T) {
	t.Run("lone near-zero creditor leaves debtor unpaid", func(t *testing.T) {
		got := OptimizePayments([]models.ExpenseSummary{
			balanceOf(alice.ID, "Alice", 0.005),
			balanceOf(bob.ID, "Bob", -50000),
		})
		if len(got) != 0 {
			t.Errorf("expected no transactions, got %+v", got)
		}
	})

	t.Run("skipped debtor is not retried against later creditors", func(t *testing.T) {
		got := OptimizePayments([]models.ExpenseSummary{
			balanceOf(alice.ID, "Alice", 1000),
			balanceOf(bob.ID, "Bob", -1000.004),
			balanceOf(charlie.ID, "Charlie", 0.004),
			balanceOf(diana.ID, "Diana", -300),
		})
		// Alice <- Bob 1000, Bob left at -0.004 (settled), Alice at 0 (settled).
		// Next pair is Charlie (0.004) against Diana (-300): both skipped.
		want := []models.PaymentTransaction{
			{From: bob.ID, FromName: "Bob", To: alice.ID, ToName: "Alice", Amount: 1000},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("OptimizePayments() = %+v, want %+v", got, want)
		}
	})
}

func TestOptimizePaymentsDoesNotMutateInput(t *testing.T) {
	summary := []models.ExpenseSummary{
		balanceOf(alice.ID, "Alice", 650),
		balanceOf(bob.ID, "Bob", 300),
		balanceOf(charlie.ID, "Charlie", -350),
		balanceOf(diana.ID, "Diana", -600),
	}
	before := append([]models.ExpenseSummary(nil), summary...)

	first := OptimizePayments(summary)
	second := OptimizePayments(summary)

	if !reflect.DeepEqual(summary, before) {
		t.Errorf("summary was modified: %+v", summary)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ:\n%+v\n%+v", first, second)
	}
}

func TestOptimizePaymentsSettlesLedger(t *testing.T) {
	members := []models.Member{alice, bob, charlie, diana}
	ledgers := map[string][]models.Expense{
		"dinner and taxi": {
			expense("e1", 1200, alice.ID, alice.ID, bob.ID, charlie.ID, diana.ID),
			expense("e2", 900, bob.ID, bob.ID, charlie.ID, diana.ID),
			expense("e3", 500, charlie.ID, alice.ID, charlie.ID),
		},
		"single payer": {
			expense("e1", 400000, diana.ID, alice.ID, bob.ID, charlie.ID, diana.ID),
		},
		"everyone pays their own": {
			expense("e1", 100, alice.ID, alice.ID),
			expense("e2", 200, bob.ID, bob.ID),
		},
		"round trip": {
			expense("e1", 3000, alice.ID, bob.ID),
			expense("e2", 3000, bob.ID, alice.ID),
			expense("e3", 6000, charlie.ID, alice.ID, bob.ID, charlie.ID),
		},
	}

	for name, expenses := range ledgers {
		t.Run(name, func(t *testing.T) {
			summary, err := ComputeSummary(members, expenses)
			if err != nil {
				t.Fatalf("ComputeSummary failed: %v", err)
			}
			txs := OptimizePayments(summary)

			for id, balance := range applyTransactions(summary, txs) {
				if math.Abs(balance) >= Tolerance {
					t.Errorf("member %s left with balance %v after %+v", id, balance, txs)
				}
			}

			creditors, debtors := countSides(summary)
			bound := 0
			if creditors > 0 && debtors > 0 {
				bound = creditors + debtors - 1
			}
			if len(txs) > bound {
				t.Errorf("%d transactions exceeds bound %d", len(txs), bound)
			}
			if len(txs) > len(members)-1 {
				t.Errorf("%d transactions for %d members", len(txs), len(members))
			}
			for _, tx := range txs {
				if tx.Amount <= 0 {
					t.Errorf("non-positive transaction %+v", tx)
				}
			}
		})
	}
}
