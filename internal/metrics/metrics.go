// Package metrics — счётчики Prometheus для HTTP и бизнес-событий.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — набор коллекторов одного реестра.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	CasesRegistered  prometheus.Counter
	CustodyTransfers prometheus.Counter
	TransferDenied   prometheus.Counter
	Disposals        *prometheus.CounterVec
	CasesClosed      prometheus.Counter
	Scans            prometheus.Counter
}

// New регистрирует коллекторы в собственном реестре (в тестах реестры не пересекаются).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CasesRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_cases_registered_total",
			Help: "Cases registered.",
		}),
		CustodyTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_custody_transfers_total",
			Help: "Completed custody hand-overs.",
		}),
		TransferDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_custody_transfers_denied_total",
			Help: "Hand-overs rejected because the officer is neither possessor nor case owner.",
		}),
		Disposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evidence_disposals_total",
			Help: "Disposals by type.",
		}, []string{"type"}),
		CasesClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_cases_closed_total",
			Help: "Cases closed by disposal of their last item.",
		}),
		Scans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evidence_tag_scans_total",
			Help: "Tag scans recorded.",
		}),
	}
	reg.MustRegister(
		prometheus.NewGoCollector(),
		m.HTTPRequests,
		m.HTTPDuration,
		m.CasesRegistered,
		m.CustodyTransfers,
		m.TransferDenied,
		m.Disposals,
		m.CasesClosed,
		m.Scans,
	)
	return m
}

// Nop — метрики для тестов, которым не важны значения.
func Nop() *Metrics { return New() }
