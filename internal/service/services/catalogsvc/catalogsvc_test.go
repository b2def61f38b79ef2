package catalogsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

type mockPastryRepo struct {
	pastries []pastry.Pastry
	inserted pastry.Pastry
}

func (m *mockPastryRepo) Insert(_ context.Context, p pastry.Pastry) (pastry.Pastry, error) {
	m.inserted = p
	return p, nil
}

func (m *mockPastryRepo) List(_ context.Context) ([]pastry.Pastry, error) {
	return m.pastries, nil
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := &mockPastryRepo{}
	s := MustNewCatalogService(WithRepository(repo))

	created, err := s.Create(context.Background(), pastry.Pastry{
		Name:       "Croissant",
		PriceCents: 350,
		Active:     true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, currency.CurrencyUSD, created.PriceCurrency)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created, repo.inserted)
}

func TestList_PassesThrough(t *testing.T) {
	repo := &mockPastryRepo{pastries: []pastry.Pastry{{ID: "p1", Name: "Eclair"}}}
	s := MustNewCatalogService(WithRepository(repo))

	pastries, err := s.List(context.Background())

	require.NoError(t, err)
	require.Len(t, pastries, 1)
	assert.Equal(t, "p1", pastries[0].ID)
}
