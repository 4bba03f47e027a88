package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics - метрики виджета. Нулевой *Metrics допустим и ничего не пишет
type Metrics struct {
	Requests       *prometheus.CounterVec
	StaleResponses prometheus.Counter
	CurrentPage    prometheus.Gauge
	TotalComments  prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New регистрирует метрики в reg
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "comment_widget_requests_total",
			Help: "Store API requests by operation and result",
		}, []string{"op", "result"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comment_widget_stale_responses_total",
			Help: "Page fetches discarded because a newer fetch was issued",
		}),
		CurrentPage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "comment_widget_current_page",
			Help: "Currently displayed page, 1-indexed",
		}),
		TotalComments: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "comment_widget_total_comments",
			Help: "Total comments reported by the last applied fetch",
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.Requests, m.StaleResponses, m.CurrentPage, m.TotalComments)
	return m
}

func (m *Metrics) ObserveRequest(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Requests.WithLabelValues(op, result).Inc()
}

func (m *Metrics) ObserveStale() {
	if m == nil {
		return
	}
	m.StaleResponses.Inc()
}

func (m *Metrics) ObservePage(page, total int) {
	if m == nil {
		return
	}
	m.CurrentPage.Set(float64(page))
	m.TotalComments.Set(float64(total))
}

// Handler отдаёт метрики в текстовом формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
