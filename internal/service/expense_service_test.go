package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
)

func TestAddExpense(t *testing.T) {
	env := setupTestServer(t)
	alice := env.mustCreateRoom(t, "Alice")
	bob := env.mustJoinRoom(t, alice.code, "Bob")

	got := env.mustAddExpense(t, bob, " Dinner ", 100000, alice.member.ID, alice.member.ID, bob.member.ID)

	if got.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if got.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if got.Code != alice.code {
		t.Errorf("code: expected %s, got %s", alice.code, got.Code)
	}
	if got.Description != "Dinner" {
		t.Errorf("description: expected 'Dinner', got %q", got.Description)
	}
	if got.Amount != 100000 || got.PaidBy != alice.member.ID || len(got.SplitAmong) != 2 {
		t.Errorf("unexpected expense: %+v", got)
	}
}

func TestAddExpense_RequiresSession(t *testing.T) {
	env := setupTestServer(t)
	alice := env.mustCreateRoom(t, "Alice")
	other := env.mustCreateRoom(t, "Mallory")

	msg := &AddExpenseRequest{
		Code:        alice.code,
		Description: "Taxi",
		Amount:      50000,
		PaidBy:      alice.member.ID,
		SplitAmong:  []string{alice.member.ID},
	}

	_, err := env.addExpense.CallUnary(context.Background(), connect.NewRequest(msg))
	assertCode(t, err, connect.CodeUnauthenticated)

	bad := session{token: "not-a-token"}
	_, err = env.addExpense.CallUnary(context.Background(), authed(bad, msg))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.addExpense.CallUnary(context.Background(), authed(other, msg))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestAddExpense_Validation(t *testing.T) {
	env := setupTestServer(t)
	alice := env.mustCreateRoom(t, "Alice")
	bob := env.mustJoinRoom(t, alice.code, "Bob")
	a, b := alice.member.ID, bob.member.ID

	tests := []struct {
		name string
		req  AddExpenseRequest
		want connect.Code
	}{
		{"missing description", AddExpenseRequest{Description: " ", Amount: 100, PaidBy: a, SplitAmong: []string{a}}, connect.CodeInvalidArgument},
		{"zero amount", AddExpenseRequest{Description: "x", Amount: 0, PaidBy: a, SplitAmong: []string{a}}, connect.CodeInvalidArgument},
		{"negative amount", AddExpenseRequest{Description: "x", Amount: -5, PaidBy: a, SplitAmong: []string{a}}, connect.CodeInvalidArgument},
		{"empty split", AddExpenseRequest{Description: "x", Amount: 100, PaidBy: a}, connect.CodeInvalidArgument},
		{"unknown payer", AddExpenseRequest{Description: "x", Amount: 100, PaidBy: "ghost", SplitAmong: []string{a}}, connect.CodeInvalidArgument},
		{"unknown participant", AddExpenseRequest{Description: "x", Amount: 100, PaidBy: a, SplitAmong: []string{a, "ghost"}}, connect.CodeInvalidArgument},
		{"duplicate participant", AddExpenseRequest{Description: "x", Amount: 100, PaidBy: a, SplitAmong: []string{b, b}}, connect.CodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Code = alice.code
			_, err := env.addExpense.CallUnary(context.Background(), authed(alice, &req))
			assertCode(t, err, tt.want)
		})
	}

	resp, err := env.listExpenses.CallUnary(context.Background(), connect.NewRequest(&ListExpensesRequest{Code: alice.code}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 0 {
		t.Errorf("rejected expenses must not be stored, got %d", len(resp.Msg.Expenses))
	}
}

func TestListExpenses(t *testing.T) {
	env := setupTestServer(t)
	alice := env.mustCreateRoom(t, "Alice")
	bob := env.mustJoinRoom(t, alice.code, "Bob")
	a, b := alice.member.ID, bob.member.ID

	env.mustAddExpense(t, alice, "Breakfast", 60000, a, a, b)
	env.mustAddExpense(t, bob, "Lunch", 120000, b, a, b)
	env.mustAddExpense(t, alice, "Coffee", 40000, a, b)

	resp, err := env.listExpenses.CallUnary(context.Background(), connect.NewRequest(&ListExpensesRequest{Code: alice.code}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}

	got := resp.Msg.Expenses
	if len(got) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(got))
	}
	want := []string{"Coffee", "Lunch", "Breakfast"}
	for i, e := range got {
		if e.Description != want[i] {
			t.Errorf("expenses[%d]: expected %s, got %s", i, want[i], e.Description)
		}
	}
}

func TestListExpenses_UnknownRoom(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.listExpenses.CallUnary(context.Background(), connect.NewRequest(&ListExpensesRequest{Code: "ZZZ-999"}))
	assertCode(t, err, connect.CodeNotFound)
}
