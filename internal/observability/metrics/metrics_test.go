package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBooking("confirmed")
	m.ObserveBooking("confirmed")
	m.ObserveBooking("capacity_exceeded")
	m.ObserveCancellation("cancelled")
	m.ObserveSlotQuery(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingsTotal.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cancellationsTotal.WithLabelValues("cancelled")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotQueriesTotal))
}

func TestChatMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewChatMetrics(reg)

	m.ObserveRequest("ok")
	m.ObserveToolCall("book_appointment", "success")
	m.ObserveLLMLatency(0.25)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.toolCallsTotal.WithLabelValues("book_appointment", "success")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var bm *BookingMetrics
	var cm *ChatMetrics
	bm.ObserveBooking("confirmed")
	bm.ObserveCancellation("x")
	bm.ObserveSlotQuery(1)
	cm.ObserveRequest("ok")
	cm.ObserveToolCall("t", "s")
	cm.ObserveLLMLatency(1)
}
