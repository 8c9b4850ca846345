package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CartAdds counts items added to carts, labelled by product type.
	CartAdds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formcraft",
		Subsystem: "cart",
		Name:      "adds_total",
		Help:      "Number of cart add operations.",
	}, []string{"product_type"})

	// SubmissionsCreated counts checkout submissions.
	SubmissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "formcraft",
		Subsystem: "submissions",
		Name:      "created_total",
		Help:      "Number of order submissions created.",
	})

	// PaymentDecisions counts payment review outcomes, labelled by status.
	PaymentDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formcraft",
		Subsystem: "submissions",
		Name:      "payment_decisions_total",
		Help:      "Number of payment status decisions.",
	}, []string{"status"})

	// ExportsGenerated counts CSV exports, labelled by scope.
	ExportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formcraft",
		Subsystem: "export",
		Name:      "generated_total",
		Help:      "Number of CSV exports generated.",
	}, []string{"scope"})

	// HTTPRequests counts handled requests by route and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formcraft",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests handled.",
	}, []string{"method", "route", "status"})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
