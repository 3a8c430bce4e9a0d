package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/migishaone/xenovaPay/internal/config"
	"github.com/migishaone/xenovaPay/internal/pawapay"
	"github.com/migishaone/xenovaPay/internal/service"
	"github.com/migishaone/xenovaPay/internal/store"
)

// mockGateway lets each test override exactly the calls it expects.
type mockGateway struct {
	PredictProviderFn     func(ctx context.Context, phoneNumber string) (json.RawMessage, error)
	ActiveConfigurationFn func(ctx context.Context, country, operationType string) (json.RawMessage, error)
	InitiateDepositFn     func(ctx context.Context, req pawapay.DepositRequest) (*pawapay.TransactionResult, error)
	InitiatePayoutFn      func(ctx context.Context, req pawapay.PayoutRequest) (*pawapay.TransactionResult, error)
	DepositStatusFn       func(ctx context.Context, depositID string) (*pawapay.TransactionResult, error)
	PayoutStatusFn        func(ctx context.Context, payoutID string) (*pawapay.TransactionResult, error)
	CreateWidgetSessionFn func(ctx context.Context, req pawapay.WidgetSessionRequest) (*pawapay.WidgetSession, error)
}

func (m *mockGateway) PredictProvider(ctx context.Context, phoneNumber string) (json.RawMessage, error) {
	return m.PredictProviderFn(ctx, phoneNumber)
}

func (m *mockGateway) ActiveConfiguration(ctx context.Context, country, operationType string) (json.RawMessage, error) {
	return m.ActiveConfigurationFn(ctx, country, operationType)
}

func (m *mockGateway) InitiateDeposit(ctx context.Context, req pawapay.DepositRequest) (*pawapay.TransactionResult, error) {
	return m.InitiateDepositFn(ctx, req)
}

func (m *mockGateway) InitiatePayout(ctx context.Context, req pawapay.PayoutRequest) (*pawapay.TransactionResult, error) {
	return m.InitiatePayoutFn(ctx, req)
}

func (m *mockGateway) DepositStatus(ctx context.Context, depositID string) (*pawapay.TransactionResult, error) {
	return m.DepositStatusFn(ctx, depositID)
}

func (m *mockGateway) PayoutStatus(ctx context.Context, payoutID string) (*pawapay.TransactionResult, error) {
	return m.PayoutStatusFn(ctx, payoutID)
}

func (m *mockGateway) CreateWidgetSession(ctx context.Context, req pawapay.WidgetSessionRequest) (*pawapay.WidgetSession, error) {
	return m.CreateWidgetSessionFn(ctx, req)
}

var _ service.Gateway = (*mockGateway)(nil)

func testConfig() *config.Config {
	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Relay:   config.RelayConfig{PublicBaseURL: "http://localhost:3000"},
	}
}

// newTestService wires a real in-memory store behind the orchestrator, the
// way the services are exercised against a real repository upstream.
func newTestService(t *testing.T, gw *mockGateway, cfg *config.Config) (*service.PaymentService, *store.MemoryTransactionStore) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	txStore := store.NewMemoryTransactionStore()
	providers := store.NewMemoryProviderCatalog()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewPaymentService(txStore, providers, gw, cfg, logger), txStore
}

func boolPtr(b bool) *bool { return &b }
