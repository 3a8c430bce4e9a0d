package store_test

import (
	"context"
	"testing"

	"github.com/migishaone/xenovaPay/internal/domain"
	"github.com/migishaone/xenovaPay/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderCatalog_Seeded(t *testing.T) {
	c := store.NewMemoryProviderCatalog()

	p, err := c.Get(context.Background(), "MTN_MOMO_RWA")
	require.NoError(t, err)
	assert.Equal(t, "RWA", p.Country)
	assert.Equal(t, "RWF", p.Currency)
	assert.True(t, p.IsActive)
}

func TestProviderCatalog_Get_NotFound(t *testing.T) {
	c := store.NewMemoryProviderCatalog()

	_, err := c.Get(context.Background(), "NOPE")
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeProviderNotFound))
}

func TestProviderCatalog_ListByCountry(t *testing.T) {
	c := store.NewMemoryProviderCatalog()

	providers, err := c.ListByCountry(context.Background(), "RWA")
	require.NoError(t, err)
	require.Len(t, providers, 2)
	for _, p := range providers {
		assert.Equal(t, "RWA", p.Country)
		assert.True(t, p.IsActive)
	}

	// lowercase country codes match too
	providers, err = c.ListByCountry(context.Background(), "rwa")
	require.NoError(t, err)
	assert.Len(t, providers, 2)
}

func TestProviderCatalog_ListingsExcludeInactive(t *testing.T) {
	c := store.NewMemoryProviderCatalog()
	ctx := context.Background()

	// VODAFONE_GHA is seeded inactive
	all, err := c.ListAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for _, p := range all {
		assert.True(t, p.IsActive, p.Code)
	}

	gha, err := c.ListByCountry(ctx, "GHA")
	require.NoError(t, err)
	for _, p := range gha {
		assert.NotEqual(t, "VODAFONE_GHA", p.Code)
	}
}

func TestProviderCatalog_Create(t *testing.T) {
	c := store.NewMemoryProviderCatalog()
	ctx := context.Background()

	_, err := c.Create(ctx, &domain.Provider{
		Code:        "ORANGE_SEN",
		DisplayName: "Orange Money",
		Country:     "SEN",
		Currency:    "XOF",
		IsActive:    true,
	})
	require.NoError(t, err)

	providers, err := c.ListByCountry(ctx, "SEN")
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "ORANGE_SEN", providers[0].Code)

	_, err = c.Create(ctx, &domain.Provider{})
	assert.Error(t, err)
}
