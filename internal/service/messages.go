package service

import (
	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/models"
)

// Room is the wire form of models.Group.
type Room struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Amount      int64    `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	SplitAmong  []string `json:"split_among"`
	CreatedAt   int64    `json:"created_at"`
}

type MemberSummary struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalOwed  float64 `json:"total_owed"`
	Balance    float64 `json:"balance"`
}

type Transaction struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   int64  `json:"amount"`
}

type CreateRoomRequest struct {
	// Name is the creator's display name.
	Name string `json:"name"`
	// RoomName is optional; rooms default to "Room <code>".
	RoomName string `json:"room_name,omitempty"`
}

type CreateRoomResponse struct {
	Room   Room   `json:"room"`
	Member Member `json:"member"`
	Token  string `json:"token"`
}

type JoinRoomRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type JoinRoomResponse struct {
	Room   Room   `json:"room"`
	Member Member `json:"member"`
	Token  string `json:"token"`
}

type GetRoomRequest struct {
	Code string `json:"code"`
}

type GetRoomResponse struct {
	Room Room `json:"room"`
}

type AddExpenseRequest struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Amount      int64    `json:"amount"`
	PaidBy      string   `json:"paid_by"`
	SplitAmong  []string `json:"split_among"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type ListExpensesRequest struct {
	Code string `json:"code"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type GetSummaryRequest struct {
	Code string `json:"code"`
}

type GetSummaryResponse struct {
	Summaries     []MemberSummary `json:"summaries"`
	Transactions  []Transaction   `json:"transactions"`
	TotalExpenses int64           `json:"total_expenses"`
	ExpenseCount  int             `json:"expense_count"`
	Currency      string          `json:"currency"`
}

func roomToWire(g *models.Group) Room {
	members := make([]Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = memberToWire(m)
	}
	return Room{
		Code:      g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func memberToWire(m models.Member) Member {
	return Member{ID: m.ID, Name: m.Name}
}

func expenseToWire(e models.Expense) Expense {
	return Expense{
		ID:          e.ID,
		Code:        e.GroupID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitAmong:  append([]string(nil), e.SplitAmong...),
		CreatedAt:   e.CreatedAt,
	}
}

func settlementToWire(s *calculator.Settlement, currencyCode string) *GetSummaryResponse {
	summaries := make([]MemberSummary, len(s.Summaries))
	for i, m := range s.Summaries {
		summaries[i] = MemberSummary{
			MemberID:   m.MemberID,
			MemberName: m.MemberName,
			TotalPaid:  m.TotalPaid,
			TotalOwed:  m.TotalOwed,
			Balance:    m.Balance,
		}
	}

	transactions := make([]Transaction, len(s.Transactions))
	for i, t := range s.Transactions {
		transactions[i] = Transaction{
			From:     t.From,
			FromName: t.FromName,
			To:       t.To,
			ToName:   t.ToName,
			Amount:   t.Amount,
		}
	}

	return &GetSummaryResponse{
		Summaries:     summaries,
		Transactions:  transactions,
		TotalExpenses: s.TotalExpenses,
		ExpenseCount:  s.ExpenseCount,
		Currency:      currencyCode,
	}
}
