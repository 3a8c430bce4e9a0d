package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeposit(t *testing.T, id string) *domain.Transaction {
	t.Helper()
	tx, err := domain.NewTransaction(id, domain.TypeDeposit, "1000", "RWF", "250783456789", "MTN_MOMO_RWA", "groceries")
	require.NoError(t, err)
	return tx
}

func TestCreateThenFetch(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newDeposit(t, "tx-1"))
	require.NoError(t, err)
	assert.False(t, created.Created.IsZero())
	assert.Equal(t, created.Created, created.Updated)

	got, err := s.Get(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, "1000", got.Amount)
	assert.Equal(t, "RWF", got.Currency)
	assert.Equal(t, "250783456789", got.PhoneNumber)
	assert.Equal(t, "MTN_MOMO_RWA", got.Provider)
}

func TestCreate_DuplicateID(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newDeposit(t, "tx-1"))
	require.NoError(t, err)

	_, err = s.Create(ctx, newDeposit(t, "tx-1"))
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeDuplicateTransaction))
}

func TestCreate_MissingRequiredFields(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	tx := newDeposit(t, "tx-1")
	tx.Amount = ""
	_, err := s.Create(ctx, tx)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField))

	tx = newDeposit(t, "tx-2")
	tx.Currency = ""
	_, err = s.Create(ctx, tx)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMissingRequiredField))
}

func TestGet_NotFound(t *testing.T) {
	s := store.NewMemoryTransactionStore()

	_, err := s.Get(context.Background(), "missing")
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeTransactionNotFound))
}

func TestUpdate_PartialMergeLeavesOtherFieldsUntouched(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newDeposit(t, "tx-1"))
	require.NoError(t, err)

	accepted := domain.StatusAccepted
	country := "RWA"
	merged, err := s.Update(ctx, "tx-1", domain.TransactionUpdate{
		Status:          &accepted,
		Country:         &country,
		GatewayResponse: json.RawMessage(`{"status":"ACCEPTED","country":"RWA"}`),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAccepted, merged.Status)
	assert.Equal(t, "RWA", merged.Country)
	assert.Equal(t, "1000", merged.Amount)
	assert.Equal(t, "RWF", merged.Currency)
	assert.Equal(t, "250783456789", merged.PhoneNumber)
	assert.True(t, merged.Updated.After(created.Updated) || merged.Updated.Equal(created.Updated))

	// a second writer setting only the provider tx id must not clobber status
	providerTx := "prov-tx-9"
	merged, err = s.Update(ctx, "tx-1", domain.TransactionUpdate{ProviderTxID: &providerTx})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, merged.Status)
	assert.Equal(t, "RWA", merged.Country)
	require.NotNil(t, merged.ProviderTxID)
	assert.Equal(t, "prov-tx-9", *merged.ProviderTxID)
}

func TestUpdate_BumpsUpdatedOnly(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	created, err := s.Create(ctx, newDeposit(t, "tx-1"))
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	failed := domain.StatusFailed
	msg := "gateway communication failure"
	merged, err := s.Update(ctx, "tx-1", domain.TransactionUpdate{Status: &failed, ErrorMessage: &msg})
	require.NoError(t, err)

	assert.Equal(t, created.Created, merged.Created)
	assert.True(t, merged.Updated.After(created.Updated))
}

func TestUpdate_NotFound(t *testing.T) {
	s := store.NewMemoryTransactionStore()

	_, err := s.Update(context.Background(), "missing", domain.TransactionUpdate{})
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeTransactionNotFound))
}

func TestListAll_NewestFirst(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	for _, id := range []string{"tx-1", "tx-2", "tx-3"} {
		_, err := s.Create(ctx, newDeposit(t, id))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	txs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "tx-3", txs[0].ID)
	assert.Equal(t, "tx-2", txs[1].ID)
	assert.Equal(t, "tx-1", txs[2].ID)
}

func TestListByType(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newDeposit(t, "dep-1"))
	require.NoError(t, err)

	payout, err := domain.NewTransaction("pay-1", domain.TypePayout, "500", "UGX", "256772123456", "MTN_MOMO_UGA", "")
	require.NoError(t, err)
	_, err = s.Create(ctx, payout)
	require.NoError(t, err)

	deposits, err := s.ListByType(ctx, domain.TypeDeposit)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, "dep-1", deposits[0].ID)

	payouts, err := s.ListByType(ctx, domain.TypePayout)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, "pay-1", payouts[0].ID)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := store.NewMemoryTransactionStore()
	ctx := context.Background()

	_, err := s.Create(ctx, newDeposit(t, "tx-1"))
	require.NoError(t, err)

	got, err := s.Get(ctx, "tx-1")
	require.NoError(t, err)
	got.Status = domain.StatusFailed

	again, err := s.Get(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)
}
