package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCacheCounters(t *testing.T) {
	m := New()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()

	body := scrape(t, m)
	assert.Contains(t, body, `splitroom_settlement_cache_total{result="hit"} 2`)
	assert.Contains(t, body, `splitroom_settlement_cache_total{result="miss"} 1`)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.RequestsTotal.WithLabelValues("/splitroom.v1.RoomService/GetRoom", "ok").Inc()
	m.SettlementTransactions.Observe(3)

	body := scrape(t, m)
	assert.Contains(t, body, `splitroom_rpc_requests_total{code="ok",procedure="/splitroom.v1.RoomService/GetRoom"} 1`)
	assert.Contains(t, body, "splitroom_settlement_transactions_count 1")
	assert.Contains(t, body, "go_goroutines")
}
