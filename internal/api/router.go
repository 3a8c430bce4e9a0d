package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/migishaone/xenovaPay/internal/api/middleware"
	"github.com/migishaone/xenovaPay/internal/config"
	"github.com/migishaone/xenovaPay/internal/metrics"
	"github.com/migishaone/xenovaPay/internal/service"
)

// NewRouter wires the HTTP surface. Paths are kept byte-for-byte so the
// browser client and the gateway's webhook configuration drop in unchanged.
func NewRouter(cfg *config.Config, svc *service.PaymentService, logger *slog.Logger) http.Handler {
	h := NewHandlers(svc, cfg.Relay.PublicBaseURL, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RateLimit(cfg.Server.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.HTTPMetrics)
	r.Use(middleware.Logging(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/active-config/{country}", h.ActiveConfiguration)
		r.Post("/predict-provider", h.PredictProvider)

		r.Post("/deposits", h.CreateDeposit)
		r.Get("/deposits/{id}/status", h.DepositStatus)
		r.Post("/payouts", h.CreatePayout)
		r.Get("/payouts/{id}/status", h.PayoutStatus)

		r.Get("/transactions", h.ListTransactions)
		r.Get("/transactions/{id}", h.GetTransaction)
		r.Get("/providers/{country}", h.ListProviders)

		r.Post("/hosted-payment", h.CreateHostedPayment)
		r.Post("/callback", h.Callback)
	})

	r.Get("/payment-return", h.PaymentReturn)

	return r
}
