package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("wayra", reg)

	m.UpstreamRequests.WithLabelValues("hotels", "200").Inc()
	m.SessionsExpired.WithLabelValues("timer").Add(2)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("hotels", "200")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.SessionsExpired.WithLabelValues("timer")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNewMetricsSeparateRegistriesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics("wayra", prometheus.NewRegistry())
		NewMetrics("wayra", prometheus.NewRegistry())
	})
}
