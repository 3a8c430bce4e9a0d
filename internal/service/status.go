package service

import (
	"context"
	"encoding/json"

	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/metrics"
	"github.com/migishaone/xenovaPay/internal/pawapay"
)

// StatusResult is the reconciled view of one transaction. When the gateway
// was unreachable, Stale is set and Transaction holds the last known local
// state instead of an error (availability over freshness).
type StatusResult struct {
	Transaction *domain.Transaction
	Gateway     json.RawMessage
	Stale       bool
	StaleError  string
}

// CheckStatus reconciles the local record against the gateway. The record
// is only written when the gateway reports a status different from the one
// stored; a gateway failure mutates nothing.
func (s *PaymentService) CheckStatus(ctx context.Context, txType domain.TransactionType, id string) (*StatusResult, error) {
	tx, err := s.txStore.Get(ctx, id)
	if err != nil {
		return nil, NewNotFoundError(err)
	}
	if tx.Type != txType {
		return nil, NewNotFoundError(domain.NewTransactionNotFoundError(id))
	}

	result, err := s.queryStatus(ctx, txType, id)
	if err != nil {
		metrics.GatewayErrors.Inc()
		s.logger.Warn("status check fell back to stored state",
			"transaction_id", id,
			"error", err,
		)
		return &StatusResult{Transaction: tx, Stale: true, StaleError: err.Error()}, nil
	}

	merged, err := s.reconcile(ctx, tx, result)
	if err != nil {
		return nil, err
	}

	return &StatusResult{Transaction: merged, Gateway: result.Raw}, nil
}

func (s *PaymentService) queryStatus(ctx context.Context, txType domain.TransactionType, id string) (*pawapay.TransactionResult, error) {
	if txType == domain.TypePayout {
		return s.gateway.PayoutStatus(ctx, id)
	}
	return s.gateway.DepositStatus(ctx, id)
}

// reconcile merges a gateway status result into the local record, writing
// only when the reported status differs from the stored one, so repeated
// polls with no gateway change leave the record untouched.
func (s *PaymentService) reconcile(ctx context.Context, tx *domain.Transaction, result *pawapay.TransactionResult) (*domain.Transaction, error) {
	status, ok := domain.MapGatewayStatus(result.Status)
	if !ok || status == tx.Status {
		return tx, nil
	}

	update := domain.TransactionUpdate{
		Status:          &status,
		GatewayResponse: result.Raw,
	}
	if result.ProviderTxID != "" {
		update.ProviderTxID = &result.ProviderTxID
	}
	if result.Country != "" {
		update.Country = &result.Country
	}
	if status == domain.StatusFailed {
		metrics.TransactionsFailed.WithLabelValues(string(tx.Type)).Inc()
		msg := "gateway reported " + result.Status
		update.ErrorMessage = &msg
	}

	merged, err := s.txStore.Update(ctx, tx.ID, update)
	if err != nil {
		return nil, NewInternalError(err)
	}

	s.logger.Info("transaction status reconciled",
		"transaction_id", merged.ID,
		"from", tx.Status,
		"to", merged.Status,
	)

	return merged, nil
}
