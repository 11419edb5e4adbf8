package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(webhookDeliveriesTotal)
}

var webhookDeliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_deliveries_total",
		Help: "Inbound Tranzak webhook deliveries by verification result.",
	},
	[]string{"result"},
)

func IncWebhookDelivery(result string) {
	webhookDeliveriesTotal.WithLabelValues(norm(result)).Inc()
}
