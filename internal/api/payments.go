package api

import (
	"encoding/json"
	"net/http"

	"github.com/migishaone/xenovaPay/internal/api/httpx"
	"github.com/migishaone/xenovaPay/internal/service"
)

type paymentRequest struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CountryPrefix string `json:"countryPrefix"`
	PhoneNumber   string `json:"phoneNumber"`
	Provider      string `json:"provider"`
	Description   string `json:"description"`
}

type hostedPaymentRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Country     string `json:"country"`
	Description string `json:"description"`
}

// initiationEnvelope is {transactionId, ...gatewayFields}: the gateway's
// own response fields flattened next to the local id.
func initiationEnvelope(transactionID string, gateway json.RawMessage) map[string]any {
	envelope := map[string]any{}
	if gateway != nil {
		_ = json.Unmarshal(gateway, &envelope)
	}
	envelope["transactionId"] = transactionID
	return envelope
}

func (h *Handlers) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateDeposit(r.Context(), service.DepositCommand{
		Amount:        req.Amount,
		Currency:      req.Currency,
		CountryPrefix: req.CountryPrefix,
		PhoneNumber:   req.PhoneNumber,
		Provider:      req.Provider,
		Description:   req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, initiationEnvelope(result.Transaction.ID, result.Gateway))
}

func (h *Handlers) CreatePayout(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreatePayout(r.Context(), service.PayoutCommand{
		Amount:        req.Amount,
		Currency:      req.Currency,
		CountryPrefix: req.CountryPrefix,
		PhoneNumber:   req.PhoneNumber,
		Provider:      req.Provider,
		Description:   req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, initiationEnvelope(result.Transaction.ID, result.Gateway))
}

func (h *Handlers) CreateHostedPayment(w http.ResponseWriter, r *http.Request) {
	var req hostedPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.CreateHostedPayment(r.Context(), service.HostedPaymentCommand{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Country:     req.Country,
		Description: req.Description,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"transactionId": result.Transaction.ID,
		"redirectUrl":   result.RedirectURL,
	})
}

type predictProviderRequest struct {
	PhoneNumber   string `json:"phoneNumber"`
	CountryPrefix string `json:"countryPrefix"`
}

func (h *Handlers) PredictProvider(w http.ResponseWriter, r *http.Request) {
	var req predictProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	raw, err := h.svc.PredictProvider(r.Context(), req.CountryPrefix, req.PhoneNumber)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	httpx.WriteRaw(w, http.StatusOK, raw)
}
