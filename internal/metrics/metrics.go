package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	SummariesComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billy",
		Name:      "summaries_computed_total",
		Help:      "Bills summaries computed, by result.",
	}, []string{"result"})

	PlansGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "billy",
		Name:      "plans_generated_total",
		Help:      "AI financial plans generated, by result.",
	}, []string{"result"})

	BillsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "billy",
		Name:      "bills_imported_total",
		Help:      "Bills created through CSV import.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
