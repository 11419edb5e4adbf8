package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(chargesTotal)
}

var chargesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "charges_total",
		Help: "Charge attempts by result (initiated/declined/config_error/invalid_method/transport_error), flow and payment method.",
	},
	[]string{"result", "flow", "method"},
)

func IncCharge(result, flow, method string) {
	chargesTotal.WithLabelValues(norm(result), norm(flow), norm(method)).Inc()
}
