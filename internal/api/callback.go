package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/migishaone/xenovaPay/internal/api/httpx"
	"github.com/migishaone/xenovaPay/internal/service"
)

// Callback receives the gateway's webhook and merges it into the local
// record. The raw body is kept as the audit snapshot.
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var payload service.CallbackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid callback payload")
		return
	}

	if _, err := h.svc.HandleCallback(r.Context(), payload, body); err != nil {
		h.writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PaymentReturn handles the browser coming back from the hosted page. It
// never renders an error: every path ends in a redirect to one of exactly
// two outcome pages.
func (h *Handlers) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("transactionId")
	if id == "" {
		http.Redirect(w, r, h.outcomeURL(service.ReturnFailure, ""), http.StatusFound)
		return
	}

	outcome, tx, err := h.svc.HandleReturn(r.Context(), id)
	if err != nil {
		h.logger.Warn("payment return failed", "transaction_id", id, "error", err)
		http.Redirect(w, r, h.outcomeURL(service.ReturnFailure, id), http.StatusFound)
		return
	}

	target := h.outcomeURL(outcome, id)
	if tx != nil {
		target += "&status=" + url.QueryEscape(string(tx.Status))
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handlers) outcomeURL(outcome service.ReturnOutcome, transactionID string) string {
	page := "payment-failed.html"
	if outcome == service.ReturnSuccess {
		page = "payment-success.html"
	}
	return fmt.Sprintf("%s/%s?transactionId=%s", h.publicBaseURL, page, url.QueryEscape(transactionID))
}
