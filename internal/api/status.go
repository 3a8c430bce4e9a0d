package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/migishaone/xenovaPay/internal/api/httpx"
	"github.com/migishaone/xenovaPay/internal/domain"
)

// checkStatus polls the gateway and reconciles. A reachable gateway answers
// with its payload passed through; an unreachable one degrades to the last
// known local status with HTTP 200 rather than an error.
func (h *Handlers) checkStatus(w http.ResponseWriter, r *http.Request, txType domain.TransactionType) {
	id := chi.URLParam(r, "id")

	result, err := h.svc.CheckStatus(r.Context(), txType, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if result.Stale {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"transactionId": result.Transaction.ID,
			"status":        string(result.Transaction.Status),
			"error":         result.StaleError,
		})
		return
	}

	httpx.WriteRaw(w, http.StatusOK, result.Gateway)
}

func (h *Handlers) DepositStatus(w http.ResponseWriter, r *http.Request) {
	h.checkStatus(w, r, domain.TypeDeposit)
}

func (h *Handlers) PayoutStatus(w http.ResponseWriter, r *http.Request) {
	h.checkStatus(w, r, domain.TypePayout)
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		txType, err := domain.ParseTransactionType(typeParam)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		txs, err := h.svc.ListTransactionsByType(r.Context(), txType)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, txs)
		return
	}

	txs, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, txs)
}

func (h *Handlers) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	view, err := h.svc.GetTransaction(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handlers) ListProviders(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	providers, err := h.svc.ListProviders(r.Context(), country)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, providers)
}

func (h *Handlers) ActiveConfiguration(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	operationType := r.URL.Query().Get("operationType")

	raw, err := h.svc.ActiveConfiguration(r.Context(), country, operationType)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	httpx.WriteRaw(w, http.StatusOK, raw)
}
