package service

import (
	"net/http"

	"connectrpc.com/connect"
)

const (
	RoomServiceName       = "splitroom.v1.RoomService"
	ExpenseServiceName    = "splitroom.v1.ExpenseService"
	SettlementServiceName = "splitroom.v1.SettlementService"
)

const (
	RoomServiceCreateRoomProcedure          = "/splitroom.v1.RoomService/CreateRoom"
	RoomServiceJoinRoomProcedure            = "/splitroom.v1.RoomService/JoinRoom"
	RoomServiceGetRoomProcedure             = "/splitroom.v1.RoomService/GetRoom"
	ExpenseServiceAddExpenseProcedure       = "/splitroom.v1.ExpenseService/AddExpense"
	ExpenseServiceListExpensesProcedure     = "/splitroom.v1.ExpenseService/ListExpenses"
	SettlementServiceGetSummaryProcedure    = "/splitroom.v1.SettlementService/GetSummary"
	SettlementServiceExportSummaryProcedure = "/splitroom.v1.SettlementService/ExportSummary"
)

// withJSON adds the struct codec after the caller's options.
func withJSON(opts []connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, connect.WithCodec(JSONCodec{}))
}

// routes dispatches on the full procedure path.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// NewRoomServiceHandler builds an HTTP handler for RoomService. It returns
// the path to mount the handler on.
func NewRoomServiceHandler(svc *RoomService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	return "/" + RoomServiceName + "/", routes{
		RoomServiceCreateRoomProcedure: connect.NewUnaryHandler(RoomServiceCreateRoomProcedure, svc.CreateRoom, opts...),
		RoomServiceJoinRoomProcedure:   connect.NewUnaryHandler(RoomServiceJoinRoomProcedure, svc.JoinRoom, opts...),
		RoomServiceGetRoomProcedure:    connect.NewUnaryHandler(RoomServiceGetRoomProcedure, svc.GetRoom, opts...),
	}
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService.
func NewExpenseServiceHandler(svc *ExpenseService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	return "/" + ExpenseServiceName + "/", routes{
		ExpenseServiceAddExpenseProcedure:   connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...),
		ExpenseServiceListExpensesProcedure: connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
	}
}

// NewSettlementServiceHandler builds an HTTP handler for SettlementService.
// ExportSummary speaks protobuf wrapper types with Connect's default codecs.
func NewSettlementServiceHandler(svc *SettlementService, opts ...connect.HandlerOption) (string, http.Handler) {
	return "/" + SettlementServiceName + "/", routes{
		SettlementServiceGetSummaryProcedure:    connect.NewUnaryHandler(SettlementServiceGetSummaryProcedure, svc.GetSummary, withJSON(opts)...),
		SettlementServiceExportSummaryProcedure: connect.NewUnaryHandler(SettlementServiceExportSummaryProcedure, svc.ExportSummary, opts...),
	}
}
