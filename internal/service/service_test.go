package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/mmynk/splitroom/internal/auth"
	"github.com/mmynk/splitroom/internal/cache"
	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/currency"
	"github.com/mmynk/splitroom/internal/metrics"
	"github.com/mmynk/splitroom/internal/middleware"
	"github.com/mmynk/splitroom/internal/storage/sqlite"
)

type testEnv struct {
	rooms   *RoomService
	jwt     *auth.JWTManager
	metrics *metrics.Metrics
	server  *httptest.Server

	createRoom    *connect.Client[CreateRoomRequest, CreateRoomResponse]
	joinRoom      *connect.Client[JoinRoomRequest, JoinRoomResponse]
	getRoom       *connect.Client[GetRoomRequest, GetRoomResponse]
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getSummary    *connect.Client[GetSummaryRequest, GetSummaryResponse]
	exportSummary *connect.Client[wrapperspb.StringValue, wrapperspb.StringValue]
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()
	formatter, err := currency.New("en-US", "VND")
	if err != nil {
		t.Fatalf("failed to create formatter: %v", err)
	}

	rooms := NewRoomService(store, jwtManager)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store, cache.NewLRU[*calculator.Settlement](16, time.Minute), m, formatter)

	interceptors := connect.WithInterceptors(
		middleware.RoomSession(jwtManager),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()
	mux.Handle(NewRoomServiceHandler(rooms, interceptors))
	mux.Handle(NewExpenseServiceHandler(expenses, interceptors))
	mux.Handle(NewSettlementServiceHandler(settlements, interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	jsonCodec := connect.WithCodec(JSONCodec{})
	return &testEnv{
		rooms:   rooms,
		jwt:     jwtManager,
		metrics: m,
		server:  server,

		createRoom:    connect.NewClient[CreateRoomRequest, CreateRoomResponse](http.DefaultClient, server.URL+RoomServiceCreateRoomProcedure, jsonCodec),
		joinRoom:      connect.NewClient[JoinRoomRequest, JoinRoomResponse](http.DefaultClient, server.URL+RoomServiceJoinRoomProcedure, jsonCodec),
		getRoom:       connect.NewClient[GetRoomRequest, GetRoomResponse](http.DefaultClient, server.URL+RoomServiceGetRoomProcedure, jsonCodec),
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](http.DefaultClient, server.URL+ExpenseServiceAddExpenseProcedure, jsonCodec),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](http.DefaultClient, server.URL+ExpenseServiceListExpensesProcedure, jsonCodec),
		getSummary:    connect.NewClient[GetSummaryRequest, GetSummaryResponse](http.DefaultClient, server.URL+SettlementServiceGetSummaryProcedure, jsonCodec),
		exportSummary: connect.NewClient[wrapperspb.StringValue, wrapperspb.StringValue](http.DefaultClient, server.URL+SettlementServiceExportSummaryProcedure),
	}
}

// session is a member's view of a room after create or join.
type session struct {
	code   string
	member Member
	token  string
}

func (e *testEnv) mustCreateRoom(t *testing.T, name string) session {
	t.Helper()
	resp, err := e.createRoom.CallUnary(context.Background(), connect.NewRequest(&CreateRoomRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	return session{code: resp.Msg.Room.Code, member: resp.Msg.Member, token: resp.Msg.Token}
}

func (e *testEnv) mustJoinRoom(t *testing.T, code, name string) session {
	t.Helper()
	resp, err := e.joinRoom.CallUnary(context.Background(), connect.NewRequest(&JoinRoomRequest{Code: code, Name: name}))
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	return session{code: resp.Msg.Room.Code, member: resp.Msg.Member, token: resp.Msg.Token}
}

// authed attaches the session token to a request.
func authed[T any](s session, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+s.token)
	return req
}

func (e *testEnv) mustAddExpense(t *testing.T, s session, description string, amount int64, paidBy string, splitAmong ...string) Expense {
	t.Helper()
	resp, err := e.addExpense.CallUnary(context.Background(), authed(s, &AddExpenseRequest{
		Code:        s.code,
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		SplitAmong:  splitAmong,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("expected code %v, got %v (%v)", want, got, err)
	}
}
