package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/migishaone/xenovaPay/internal/domain"
)

// TransactionView is the safe field subset exposed on the public read
// endpoints: no raw gateway payload, no internal error detail.
type TransactionView struct {
	ID           string                   `json:"id"`
	Type         domain.TransactionType   `json:"type"`
	Status       domain.TransactionStatus `json:"status"`
	Amount       string                   `json:"amount"`
	Currency     string                   `json:"currency"`
	Country      string                   `json:"country,omitempty"`
	Provider     string                   `json:"provider,omitempty"`
	Description  string                   `json:"description,omitempty"`
	ProviderTxID *string                  `json:"providerTransactionId,omitempty"`
	Created      string                   `json:"created"`
	Updated      string                   `json:"updated"`
}

func toView(tx *domain.Transaction) TransactionView {
	return TransactionView{
		ID:           tx.ID,
		Type:         tx.Type,
		Status:       tx.Status,
		Amount:       tx.Amount,
		Currency:     tx.Currency,
		Country:      tx.Country,
		Provider:     tx.Provider,
		Description:  tx.Description,
		ProviderTxID: tx.ProviderTxID,
		Created:      tx.Created.UTC().Format(time.RFC3339),
		Updated:      tx.Updated.UTC().Format(time.RFC3339),
	}
}

func (s *PaymentService) GetTransaction(ctx context.Context, id string) (*TransactionView, error) {
	tx, err := s.txStore.Get(ctx, id)
	if err != nil {
		return nil, NewNotFoundError(err)
	}
	view := toView(tx)
	return &view, nil
}

// ListTransactions returns every record, newest first, with full fields for
// the merchant-facing transaction log.
func (s *PaymentService) ListTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	txs, err := s.txStore.ListAll(ctx)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return txs, nil
}

func (s *PaymentService) ListTransactionsByType(ctx context.Context, txType domain.TransactionType) ([]*domain.Transaction, error) {
	txs, err := s.txStore.ListByType(ctx, txType)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return txs, nil
}

func (s *PaymentService) ListProviders(ctx context.Context, country string) ([]*domain.Provider, error) {
	providers, err := s.providers.ListByCountry(ctx, country)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return providers, nil
}

// ActiveConfiguration proxies the gateway lookup untouched.
func (s *PaymentService) ActiveConfiguration(ctx context.Context, country, operationType string) (json.RawMessage, error) {
	raw, err := s.gateway.ActiveConfiguration(ctx, country, operationType)
	if err != nil {
		return nil, NewGatewayCallError(err)
	}
	return raw, nil
}

// PredictProvider normalizes the phone and proxies the prediction.
func (s *PaymentService) PredictProvider(ctx context.Context, countryPrefix, phoneNumber string) (json.RawMessage, error) {
	if phoneNumber == "" {
		return nil, NewInvalidInputError(domain.NewMissingRequiredFieldError("phoneNumber"))
	}
	phone := domain.NormalizePhone(countryPrefix, phoneNumber)
	raw, err := s.gateway.PredictProvider(ctx, phone)
	if err != nil {
		return nil, &ServiceError{
			Code:       ErrCodeGateway,
			Message:    "could not predict provider",
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
		}
	}
	return raw, nil
}
