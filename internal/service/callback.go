package service

import (
	"context"
	"encoding/json"

	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/metrics"
)

// CallbackPayload is the webhook body the gateway posts. The transaction id
// arrives as depositId or payoutId depending on the operation type.
type CallbackPayload struct {
	DepositID    string `json:"depositId,omitempty"`
	PayoutID     string `json:"payoutId,omitempty"`
	Status       string `json:"status"`
	Country      string `json:"country,omitempty"`
	ProviderTxID string `json:"providerTransactionId,omitempty"`
}

func (p CallbackPayload) transactionID() string {
	if p.DepositID != "" {
		return p.DepositID
	}
	return p.PayoutID
}

// HandleCallback merges a gateway-initiated status update into the record
// the payload names. The merge is unconditional: whatever the webhook
// reports overwrites the stored status, even after COMPLETED.
//
// There is no signature verification or replay protection on this channel;
// closing that gap means checking a shared secret before trusting the
// payload.
func (s *PaymentService) HandleCallback(ctx context.Context, payload CallbackPayload, raw json.RawMessage) (*domain.Transaction, error) {
	metrics.CallbacksReceived.Inc()

	id := payload.transactionID()
	if id == "" {
		return nil, NewInvalidInputError(domain.NewMissingRequiredFieldError("depositId or payoutId"))
	}

	status, ok := domain.MapGatewayStatus(payload.Status)
	if !ok {
		return nil, NewInvalidInputError(domain.NewMissingRequiredFieldError("status"))
	}

	update := domain.TransactionUpdate{
		Status:          &status,
		GatewayResponse: raw,
	}
	if payload.Country != "" {
		update.Country = &payload.Country
	}
	if payload.ProviderTxID != "" {
		update.ProviderTxID = &payload.ProviderTxID
	}
	if status == domain.StatusFailed {
		msg := "gateway callback reported " + payload.Status
		update.ErrorMessage = &msg
	}

	merged, err := s.txStore.Update(ctx, id, update)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, NewNotFoundError(err)
		}
		return nil, NewInternalError(err)
	}

	if status == domain.StatusFailed {
		metrics.TransactionsFailed.WithLabelValues(string(merged.Type)).Inc()
	}

	s.logger.Info("callback reconciled",
		"transaction_id", merged.ID,
		"status", merged.Status,
	)

	return merged, nil
}
