package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// transaction lifecycle
	TransactionsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_initiated_total",
			Help: "Transactions created and sent to the gateway",
		},
		[]string{"type"}, // DEPOSIT|PAYOUT
	)
	TransactionsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_failed_total",
			Help: "Transactions marked FAILED",
		},
		[]string{"type"},
	)
	CallbacksReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_callbacks_total",
			Help: "Webhook callbacks received from the gateway",
		},
	)
	GatewayErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_errors_total",
			Help: "Failed calls to the gateway API",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransactionsInitiated)
	prometheus.MustRegister(TransactionsFailed)
	prometheus.MustRegister(CallbacksReceived)
	prometheus.MustRegister(GatewayErrors)
}
