package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/mmynk/splitroom/internal/auth"
	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/middleware"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/storage"
)

// ExpenseService implements the append-only expense ledger.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// requireSession checks that the caller holds a session for the room code.
func requireSession(ctx context.Context, code string) (middleware.Session, error) {
	session, ok := middleware.GetSession(ctx)
	if !ok {
		return middleware.Session{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if session.GroupID != code {
		return middleware.Session{}, connect.NewError(connect.CodePermissionDenied, errWrongRoom)
	}
	return session, nil
}

// validateMembers checks that the payer and every participant belong to the
// room and that no participant is listed twice.
func validateMembers(group *models.Group, paidBy string, splitAmong []string) error {
	if _, ok := group.FindMember(paidBy); !ok {
		return fmt.Errorf("paid_by %q is not a member of room %s", paidBy, group.ID)
	}
	seen := make(map[string]bool, len(splitAmong))
	for _, id := range splitAmong {
		if seen[id] {
			return fmt.Errorf("split_among lists %q more than once", id)
		}
		seen[id] = true
		if _, ok := group.FindMember(id); !ok {
			return fmt.Errorf("split_among member %q is not in room %s", id, group.ID)
		}
	}
	return nil
}

// AddExpense records an expense in the caller's room.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"code", req.Msg.Code,
		"amount", req.Msg.Amount,
		"participants_count", len(req.Msg.SplitAmong),
	)

	code, err := parseCode(req.Msg.Code)
	if err != nil {
		return nil, err
	}
	session, err := requireSession(ctx, code)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(req.Msg.Description)
	switch {
	case description == "":
		return nil, connect.NewError(connect.CodeInvalidArgument, errDescriptionRequired)
	case req.Msg.Amount <= 0:
		return nil, connect.NewError(connect.CodeInvalidArgument, errAmountInvalid)
	case len(req.Msg.SplitAmong) == 0:
		return nil, connect.NewError(connect.CodeInvalidArgument, errSplitRequired)
	}

	group, err := s.store.GetGroup(ctx, code)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := validateMembers(group, req.Msg.PaidBy, req.Msg.SplitAmong); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		GroupID:     code,
		Description: description,
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		SplitAmong:  append([]string(nil), req.Msg.SplitAmong...),
	}
	if err := calculator.ValidateExpense(*expense); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense recorded",
		"code", code,
		"expense_id", expense.ID,
		"recorded_by", session.MemberID,
	)

	return connect.NewResponse(&AddExpenseResponse{Expense: expenseToWire(*expense)}), nil
}

// ListExpenses returns a room's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	code, err := parseCode(req.Msg.Code)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, code); err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, code)
	if err != nil {
		slog.Error("ListExpenses failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	wire := make([]Expense, len(expenses))
	for i, e := range expenses {
		wire[i] = expenseToWire(e)
	}

	slog.Info("ListExpenses successful", "code", code, "count", len(expenses))

	return connect.NewResponse(&ListExpensesResponse{Expenses: wire}), nil
}
