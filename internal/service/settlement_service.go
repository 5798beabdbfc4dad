package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/mmynk/splitroom/internal/cache"
	"github.com/mmynk/splitroom/internal/calculator"
	"github.com/mmynk/splitroom/internal/currency"
	"github.com/mmynk/splitroom/internal/metrics"
	"github.com/mmynk/splitroom/internal/models"
	"github.com/mmynk/splitroom/internal/report"
	"github.com/mmynk/splitroom/internal/storage"
)

// SettlementService computes balances and payment plans for a room.
// Results are memoized by the content hash of the room's members and ledger,
// so any new member or expense produces a fresh computation.
type SettlementService struct {
	store     storage.Store
	cache     cache.Cache[*calculator.Settlement]
	metrics   *metrics.Metrics
	formatter *currency.Formatter
}

// NewSettlementService creates a SettlementService. The cache is shared
// across rooms.
func NewSettlementService(store storage.Store, c cache.Cache[*calculator.Settlement], m *metrics.Metrics, f *currency.Formatter) *SettlementService {
	return &SettlementService{
		store:     store,
		cache:     c,
		metrics:   m,
		formatter: f,
	}
}

// settle loads a room snapshot and returns its settlement.
func (s *SettlementService) settle(ctx context.Context, code string) (*models.Group, *calculator.Settlement, error) {
	group, err := s.store.GetGroup(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	key := calculator.SnapshotKey(group.Members, expenses)
	if settlement, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit()
		return group, settlement, nil
	}
	s.metrics.CacheMiss()

	settlement, err := calculator.Settle(group.Members, expenses)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.SettlementTransactions.Observe(float64(len(settlement.Transactions)))
	s.cache.Set(key, settlement)

	slog.Debug("Settlement computed",
		"code", code,
		"expenses", settlement.ExpenseCount,
		"transactions", len(settlement.Transactions),
	)
	return group, settlement, nil
}

// GetSummary returns per-member balances and the payment plan.
func (s *SettlementService) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	slog.Info("GetSummary request received", "code", req.Msg.Code)

	code, err := parseCode(req.Msg.Code)
	if err != nil {
		return nil, err
	}

	_, settlement, err := s.settle(ctx, code)
	if err != nil {
		slog.Error("GetSummary failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(settlementToWire(settlement, s.formatter.Code())), nil
}

// ExportSummary renders the shareable text report for the room code in the
// request.
func (s *SettlementService) ExportSummary(ctx context.Context, req *connect.Request[wrapperspb.StringValue]) (*connect.Response[wrapperspb.StringValue], error) {
	slog.Info("ExportSummary request received", "code", req.Msg.GetValue())

	code, err := parseCode(req.Msg.GetValue())
	if err != nil {
		return nil, err
	}

	group, settlement, err := s.settle(ctx, code)
	if err != nil {
		slog.Error("ExportSummary failed", "code", code, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(wrapperspb.String(report.Render(group, settlement, s.formatter))), nil
}
