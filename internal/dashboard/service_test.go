package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendazana/storefront-api/internal/orders"
)

type memStats struct {
	seen    map[string]bool
	records []record
}

type record struct {
	day     string
	items   int
	revenue float64
}

func newMemStats() *memStats {
	return &memStats{seen: make(map[string]bool)}
}

func (m *memStats) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	if m.seen[eventID] {
		return true, nil
	}
	m.seen[eventID] = true
	return false, nil
}

func (m *memStats) Record(ctx context.Context, day string, items int, revenue float64) error {
	m.records = append(m.records, record{day: day, items: items, revenue: revenue})
	return nil
}

func createdMessage(t *testing.T, eventID string) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(orders.OrderCreatedPayload{
		OrderID:      "TZ-1700000000000",
		CustomerName: "María Pérez",
		Subtotal:     decimal.RequireFromString("20.00"),
		TaxTotal:     decimal.RequireFromString("1.40"),
		Total:        decimal.RequireFromString("21.40"),
		Items:        1,
		Status:       orders.StatusPending,
	})
	require.NoError(t, err)
	env := orders.Envelope{
		EventID:       eventID,
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Date(2026, 2, 3, 15, 0, 0, 0, time.UTC),
		Producer:      "storefront-api",
		CorrelationID: "TZ-1700000000000",
		Payload:       payload,
	}
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return kafkago.Message{Key: []byte("TZ-1700000000000"), Value: b}
}

func TestHandleOrderCreated_RecordsDailyAggregate(t *testing.T) {
	stats := newMemStats()
	svc := &Service{Stats: stats, ServiceName: "dash-test"}

	err := svc.HandleOrderCreated(context.Background(), createdMessage(t, "ev-1"))
	require.NoError(t, err)

	require.Len(t, stats.records, 1)
	assert.Equal(t, "2026-02-03", stats.records[0].day)
	assert.Equal(t, 1, stats.records[0].items)
	assert.InDelta(t, 21.40, stats.records[0].revenue, 0.0001)
}

func TestHandleOrderCreated_DuplicateEventIsAppliedOnce(t *testing.T) {
	stats := newMemStats()
	svc := &Service{Stats: stats, ServiceName: "dash-test"}

	msg := createdMessage(t, "ev-dup")
	require.NoError(t, svc.HandleOrderCreated(context.Background(), msg))
	require.NoError(t, svc.HandleOrderCreated(context.Background(), msg))

	assert.Len(t, stats.records, 1, "redelivered events must not double-count")
}

func TestHandleOrderCreated_IgnoresOtherEventTypes(t *testing.T) {
	stats := newMemStats()
	svc := &Service{Stats: stats, ServiceName: "dash-test"}

	env := orders.Envelope{EventID: "ev-x", EventType: "AlgoMas", Payload: json.RawMessage(`{}`)}
	b, err := json.Marshal(env)
	require.NoError(t, err)

	require.NoError(t, svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: b}))
	assert.Empty(t, stats.records)
	assert.Empty(t, stats.seen, "unrelated events must not consume dedup state")
}

func TestHandleOrderCreated_BadPayloadErrors(t *testing.T) {
	stats := newMemStats()
	svc := &Service{Stats: stats, ServiceName: "dash-test"}

	env := orders.Envelope{EventID: "ev-bad", EventType: orders.EventOrderCreated, Payload: json.RawMessage(`"nope"`)}
	b, err := json.Marshal(env)
	require.NoError(t, err)

	assert.Error(t, svc.HandleOrderCreated(context.Background(), kafkago.Message{Value: b}))
	assert.Empty(t, stats.records)
}
