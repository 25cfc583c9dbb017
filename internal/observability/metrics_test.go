package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics_PrivateRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("test", reg)

	m.FetchTotal.WithLabelValues("pumpfun", "ok").Inc()
	m.FetchTotal.WithLabelValues("pumpfun", "ok").Inc()
	m.StaleDiscarded.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchTotal.WithLabelValues("pumpfun", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaleDiscarded))
}

func TestRecordSmartMoneyEvents_IgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(DefaultMetrics.SmartMoneyEvents.WithLabelValues("unlabeled"))
	RecordSmartMoneyEvents("unlabeled", 0)
	RecordSmartMoneyEvents("unlabeled", -3)
	RecordSmartMoneyEvents("unlabeled", 2)
	after := testutil.ToFloat64(DefaultMetrics.SmartMoneyEvents.WithLabelValues("unlabeled"))
	assert.Equal(t, before+2, after)
}
