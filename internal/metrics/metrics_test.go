package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.ObservePersistence("set", nil)
	rec.ObservePersistence("set", errors.New("disk full"))
	rec.ObservePersistence("set", errors.New("disk full"))
	rec.SetDaysCount(10)

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.operations.WithLabelValues("set", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.operations.WithLabelValues("set", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(rec.daysCount))

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "daycounter_days_count 10")
}

func TestPrometheusRecordersAreIndependent(t *testing.T) {
	first := NewPrometheusRecorder(prom.NewRegistry())
	second := NewPrometheusRecorder(prom.NewRegistry())

	first.SetDaysCount(3)
	second.SetDaysCount(7)

	assert.Equal(t, 3.0, testutil.ToFloat64(first.daysCount))
	assert.Equal(t, 7.0, testutil.ToFloat64(second.daysCount))

	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg)
	assert.Panics(t, func() { NewPrometheusRecorder(reg) })
}
