package directorysvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	businessrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/business/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
)

type mockBusinessRepo struct {
	businesses []business.Business
	inserted   business.Business
	approveErr error
}

func (m *mockBusinessRepo) Insert(_ context.Context, b business.Business) (business.Business, error) {
	m.inserted = b
	return b, nil
}

func (m *mockBusinessRepo) List(_ context.Context, onlyPending bool) ([]business.Business, error) {
	if !onlyPending {
		return m.businesses, nil
	}

	pending := make([]business.Business, 0, len(m.businesses))
	for _, b := range m.businesses {
		if !b.Approved {
			pending = append(pending, b)
		}
	}

	return pending, nil
}

func (m *mockBusinessRepo) SetApproval(_ context.Context, id string, approved bool) (business.Business, error) {
	if m.approveErr != nil {
		return business.Business{}, m.approveErr
	}
	return business.Business{ID: id, Approved: approved}, nil
}

func TestSignup_StartsUnapproved(t *testing.T) {
	repo := &mockBusinessRepo{}
	s := MustNewDirectoryService(WithRepository(repo))

	created, err := s.Signup(context.Background(), business.Business{
		Name:         "Cafe Uno",
		Email:        "uno@example.com",
		Phone:        "555-0101",
		BusinessType: "cafe",
		Address:      "12 Main St",
		Approved:     true, // must be ignored
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Approved)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created, repo.inserted)
}

func TestList_OnlyPendingFiltersApproved(t *testing.T) {
	repo := &mockBusinessRepo{businesses: []business.Business{
		{ID: "b1", Approved: true},
		{ID: "b2", Approved: false},
	}}
	s := MustNewDirectoryService(WithRepository(repo))

	pending, err := s.List(context.Background(), true)

	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b2", pending[0].ID)
}

func TestSetApproval(t *testing.T) {
	s := MustNewDirectoryService(WithRepository(&mockBusinessRepo{}))

	b, err := s.SetApproval(context.Background(), "b1", true)

	require.NoError(t, err)
	assert.True(t, b.Approved)
}

func TestSetApproval_UnknownBusiness(t *testing.T) {
	s := MustNewDirectoryService(WithRepository(&mockBusinessRepo{approveErr: businessrepo.ErrBusinessNotFound}))

	_, err := s.SetApproval(context.Background(), "nope", true)

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
