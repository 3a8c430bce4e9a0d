package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/pawapay"
	"github.com/migishaone/xenovaPay/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedAccepted creates a deposit whose initiate call reported ACCEPTED.
func seedAccepted(t *testing.T, svc *service.PaymentService) string {
	t.Helper()
	result, err := svc.CreateDeposit(context.Background(), depositCommand())
	require.NoError(t, err)
	return result.Transaction.ID
}

func acceptedGateway() *mockGateway {
	return &mockGateway{
		InitiateDepositFn: func(ctx context.Context, req pawapay.DepositRequest) (*pawapay.TransactionResult, error) {
			return &pawapay.TransactionResult{
				Status:  "ACCEPTED",
				Country: "RWA",
				Raw:     json.RawMessage(`{"status":"ACCEPTED","country":"RWA"}`),
			}, nil
		},
	}
}

func TestCheckStatus_MergesOnChange(t *testing.T) {
	ctx := context.Background()
	gw := acceptedGateway()
	gw.DepositStatusFn = func(ctx context.Context, depositID string) (*pawapay.TransactionResult, error) {
		return &pawapay.TransactionResult{
			Status:       "COMPLETED",
			ProviderTxID: "prov-7",
			Raw:          json.RawMessage(`[{"status":"COMPLETED","providerTransactionId":"prov-7"}]`),
		}, nil
	}
	svc, txStore := newTestService(t, gw, nil)
	id := seedAccepted(t, svc)

	result, err := svc.CheckStatus(ctx, domain.TypeDeposit, id)
	require.NoError(t, err)
	assert.False(t, result.Stale)
	assert.Equal(t, domain.StatusCompleted, result.Transaction.Status)

	stored, err := txStore.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	require.NotNil(t, stored.ProviderTxID)
	assert.Equal(t, "prov-7", *stored.ProviderTxID)
}

func TestCheckStatus_IdempotentWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	gw := acceptedGateway()
	gw.DepositStatusFn = func(ctx context.Context, depositID string) (*pawapay.TransactionResult, error) {
		return &pawapay.TransactionResult{
			Status: "ACCEPTED",
			Raw:    json.RawMessage(`[{"status":"ACCEPTED"}]`),
		}, nil
	}
	svc, txStore := newTestService(t, gw, nil)
	id := seedAccepted(t, svc)

	before, err := txStore.Get(ctx, id)
	require.NoError(t, err)

	_, err = svc.CheckStatus(ctx, domain.TypeDeposit, id)
	require.NoError(t, err)
	_, err = svc.CheckStatus(ctx, domain.TypeDeposit, id)
	require.NoError(t, err)

	after, err := txStore.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *before, *after)
}

func TestCheckStatus_StaleFallbackOnGatewayFailure(t *testing.T) {
	ctx := context.Background()
	gw := acceptedGateway()
	gw.DepositStatusFn = func(ctx context.Context, depositID string) (*pawapay.TransactionResult, error) {
		return nil, &pawapay.GatewayError{Err: context.DeadlineExceeded}
	}
	svc, txStore := newTestService(t, gw, nil)
	id := seedAccepted(t, svc)

	before, err := txStore.Get(ctx, id)
	require.NoError(t, err)

	result, err := svc.CheckStatus(ctx, domain.TypeDeposit, id)
	require.NoError(t, err)
	assert.True(t, result.Stale)
	assert.Equal(t, domain.StatusAccepted, result.Transaction.Status)
	assert.NotEmpty(t, result.StaleError)

	after, err := txStore.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *before, *after, "stale fallback must not write")
}

func TestCheckStatus_NotFound(t *testing.T) {
	gw := acceptedGateway()
	svc, _ := newTestService(t, gw, nil)

	_, err := svc.CheckStatus(context.Background(), domain.TypeDeposit, "missing")
	svcErr, ok := service.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 404, svcErr.HTTPStatus)
}

func TestCheckStatus_TypeMismatchIsNotFound(t *testing.T) {
	gw := acceptedGateway()
	svc, _ := newTestService(t, gw, nil)
	id := seedAccepted(t, svc)

	_, err := svc.CheckStatus(context.Background(), domain.TypePayout, id)
	svcErr, ok := service.IsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 404, svcErr.HTTPStatus)
}

func TestCheckStatus_FailedStatusRecordsError(t *testing.T) {
	ctx := context.Background()
	gw := acceptedGateway()
	gw.DepositStatusFn = func(ctx context.Context, depositID string) (*pawapay.TransactionResult, error) {
		return &pawapay.TransactionResult{
			Status: "REJECTED",
			Raw:    json.RawMessage(`[{"status":"REJECTED"}]`),
		}, nil
	}
	svc, txStore := newTestService(t, gw, nil)
	id := seedAccepted(t, svc)

	_, err := svc.CheckStatus(ctx, domain.TypeDeposit, id)
	require.NoError(t, err)

	stored, err := txStore.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "REJECTED")
}
