package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder observes persistence outcomes and the displayed count.
type Recorder interface {
	ObservePersistence(op string, err error)
	SetDaysCount(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObservePersistence(string, error) {}
func (NoopRecorder) SetDaysCount(int)                 {}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	operations *prom.CounterVec
	daysCount  prom.Gauge
}

// NewPrometheusRecorder constructs and registers the day counter metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "daycounter",
			Name:      "persistence_operations_total",
			Help:      "Persistence gateway calls by operation and result",
		}, []string{"op", "result"}),
		daysCount: prom.NewGauge(prom.GaugeOpts{
			Namespace: "daycounter",
			Name:      "days_count",
			Help:      "Day count at the last recomputation",
		}),
	}
	reg.MustRegister(pr.operations, pr.daysCount)
	return pr
}

func (p *PrometheusRecorder) ObservePersistence(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.operations.WithLabelValues(op, result).Inc()
}

func (p *PrometheusRecorder) SetDaysCount(n int) {
	p.daysCount.Set(float64(n))
}

// HTTPHandler exposes reg in the Prometheus text format.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
