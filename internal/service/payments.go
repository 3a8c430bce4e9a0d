// Package service holds the transaction orchestrator: it owns every write
// to the transaction store and reconciles the status signals arriving from
// the initiate response, client polling, webhook callbacks and the hosted
// page return redirect.
package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/migishaone/xenovaPay/internal/config"
	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/metrics"
	"github.com/migishaone/xenovaPay/internal/pawapay"
	"github.com/migishaone/xenovaPay/internal/store"
)

type PaymentService struct {
	txStore   store.TransactionStore
	providers store.ProviderCatalog
	gateway   Gateway
	cfg       *config.Config
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

func NewPaymentService(
	txStore store.TransactionStore,
	providers store.ProviderCatalog,
	gateway Gateway,
	cfg *config.Config,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		txStore:   txStore,
		providers: providers,
		gateway:   gateway,
		cfg:       cfg,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// InitiationResult is the merged local record plus the raw gateway payload
// the surface passes back to the browser.
type InitiationResult struct {
	Transaction *domain.Transaction
	Gateway     json.RawMessage
}

// CreateDeposit persists a PENDING record, then initiates the collection
// with the freshly generated id as the gateway idempotency key. Gateway
// success merges the reported status; gateway failure marks the record
// FAILED and surfaces the local id with the error.
func (s *PaymentService) CreateDeposit(ctx context.Context, cmd DepositCommand) (*InitiationResult, error) {
	amount, err := validateCommand(s.validate, cmd, cmd.Amount, cmd.Description)
	if err != nil {
		return nil, err
	}

	phone := domain.NormalizePhone(cmd.CountryPrefix, cmd.PhoneNumber)
	id := uuid.New().String()

	tx, err := domain.NewTransaction(id, domain.TypeDeposit, amount, cmd.Currency, phone, cmd.Provider, cmd.Description)
	if err != nil {
		return nil, NewInvalidInputError(err)
	}
	tx, err = s.txStore.Create(ctx, tx)
	if err != nil {
		return nil, NewInternalError(err)
	}

	metrics.TransactionsInitiated.WithLabelValues(string(domain.TypeDeposit)).Inc()

	result, err := s.gateway.InitiateDeposit(ctx, pawapay.DepositRequest{
		DepositID:            id,
		Amount:               amount,
		Currency:             cmd.Currency,
		Correspondent:        cmd.Provider,
		Payer:                pawapay.NewMSISDN(phone),
		CustomerTimestamp:    s.now().UTC().Format(time.RFC3339),
		StatementDescription: cmd.Description,
	})
	if err != nil {
		return nil, s.failInitiation(ctx, tx, err)
	}

	return s.mergeInitiation(ctx, tx, result)
}

// CreatePayout mirrors CreateDeposit for disbursements.
func (s *PaymentService) CreatePayout(ctx context.Context, cmd PayoutCommand) (*InitiationResult, error) {
	amount, err := validateCommand(s.validate, cmd, cmd.Amount, cmd.Description)
	if err != nil {
		return nil, err
	}

	phone := domain.NormalizePhone(cmd.CountryPrefix, cmd.PhoneNumber)
	id := uuid.New().String()

	tx, err := domain.NewTransaction(id, domain.TypePayout, amount, cmd.Currency, phone, cmd.Provider, cmd.Description)
	if err != nil {
		return nil, NewInvalidInputError(err)
	}
	tx, err = s.txStore.Create(ctx, tx)
	if err != nil {
		return nil, NewInternalError(err)
	}

	metrics.TransactionsInitiated.WithLabelValues(string(domain.TypePayout)).Inc()

	result, err := s.gateway.InitiatePayout(ctx, pawapay.PayoutRequest{
		PayoutID:             id,
		Amount:               amount,
		Currency:             cmd.Currency,
		Correspondent:        cmd.Provider,
		Recipient:            pawapay.NewMSISDN(phone),
		CustomerTimestamp:    s.now().UTC().Format(time.RFC3339),
		StatementDescription: cmd.Description,
	})
	if err != nil {
		return nil, s.failInitiation(ctx, tx, err)
	}

	return s.mergeInitiation(ctx, tx, result)
}

// mergeInitiation folds the gateway's initiate response into the local
// record: reported status, raw payload, and country when present.
func (s *PaymentService) mergeInitiation(ctx context.Context, tx *domain.Transaction, result *pawapay.TransactionResult) (*InitiationResult, error) {
	update := domain.TransactionUpdate{GatewayResponse: result.Raw}
	if status, ok := domain.MapGatewayStatus(result.Status); ok {
		update.Status = &status
	} else {
		s.logger.Warn("gateway reported unknown status", "transaction_id", tx.ID, "status", result.Status)
	}
	if result.Country != "" {
		update.Country = &result.Country
	}
	if result.ProviderTxID != "" {
		update.ProviderTxID = &result.ProviderTxID
	}

	merged, err := s.txStore.Update(ctx, tx.ID, update)
	if err != nil {
		return nil, NewInternalError(err)
	}

	s.logger.Info("transaction initiated",
		"transaction_id", merged.ID,
		"type", merged.Type,
		"status", merged.Status,
	)

	return &InitiationResult{Transaction: merged, Gateway: result.Raw}, nil
}

// failInitiation marks the record FAILED with the failure detail and wraps
// the error with the local id for the response envelope.
func (s *PaymentService) failInitiation(ctx context.Context, tx *domain.Transaction, cause error) error {
	metrics.TransactionsFailed.WithLabelValues(string(tx.Type)).Inc()
	metrics.GatewayErrors.Inc()

	failed := domain.StatusFailed
	msg := cause.Error()
	if _, err := s.txStore.Update(ctx, tx.ID, domain.TransactionUpdate{
		Status:       &failed,
		ErrorMessage: &msg,
	}); err != nil {
		s.logger.Error("failed to record gateway failure", "transaction_id", tx.ID, "error", err)
	}

	s.logger.Error("transaction initiation failed",
		"transaction_id", tx.ID,
		"type", tx.Type,
		"error", cause,
	)

	return &InitiationError{TransactionID: tx.ID, Err: cause}
}
