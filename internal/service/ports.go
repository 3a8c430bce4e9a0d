package service

import (
	"context"
	"encoding/json"

	"github.com/migishaone/xenovaPay/internal/pawapay"
)

// Gateway is the port for the external payment processor. Implementations
// only return data; the orchestrator is the one merging it into the store.
type Gateway interface {
	PredictProvider(ctx context.Context, phoneNumber string) (json.RawMessage, error)
	ActiveConfiguration(ctx context.Context, country, operationType string) (json.RawMessage, error)
	InitiateDeposit(ctx context.Context, req pawapay.DepositRequest) (*pawapay.TransactionResult, error)
	InitiatePayout(ctx context.Context, req pawapay.PayoutRequest) (*pawapay.TransactionResult, error)
	DepositStatus(ctx context.Context, depositID string) (*pawapay.TransactionResult, error)
	PayoutStatus(ctx context.Context, payoutID string) (*pawapay.TransactionResult, error)
	CreateWidgetSession(ctx context.Context, req pawapay.WidgetSessionRequest) (*pawapay.WidgetSession, error)
}

var _ Gateway = (*pawapay.Client)(nil)
