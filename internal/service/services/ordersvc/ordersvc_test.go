package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	businessrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/business/postgres"
	orderrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/order/postgres"
	"github.com/izzybakes/pastry-orders/internal/dal/uow"
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/outbox"
)

type mockBusinessRepo struct {
	biz business.Business
	err error
}

func (m *mockBusinessRepo) GetByID(_ context.Context, _ string) (business.Business, error) {
	return m.biz, m.err
}

type mockOrderRepo struct {
	inserted order.Order
	err      error
}

func (m *mockOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	if m.err != nil {
		return order.Order{}, m.err
	}
	m.inserted = o
	return o, nil
}

type mockOutboxRepo struct {
	inserted []outbox.Message
	err      error
}

func (m *mockOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, msg)
	return nil
}

type mockUnitOfWork struct {
	orderRepo  *mockOrderRepo
	outboxRepo *mockOutboxRepo
	began      bool
	committed  bool
	rolledBack bool
}

func (m *mockUnitOfWork) Begin(_ context.Context) error {
	m.began = true
	return nil
}

func (m *mockUnitOfWork) Commit(_ context.Context) error {
	m.committed = true
	return nil
}

func (m *mockUnitOfWork) Rollback(_ context.Context) error {
	if !m.committed {
		m.rolledBack = true
	}
	return nil
}

func (m *mockUnitOfWork) OrderRepository() uow.OrderRepository {
	return m.orderRepo
}

func (m *mockUnitOfWork) OutboxRepository() uow.OutboxRepository {
	return m.outboxRepo
}

func newTestService(biz *mockBusinessRepo, work *mockUnitOfWork) *OrderService {
	return MustNewOrderService(
		WithBusinessRepository(biz),
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
	)
}

func validOrder() order.Order {
	return order.Order{
		BusinessID: "biz-1",
		Items: []order.Item{
			{PastryID: "p1", Name: "Croissant", Quantity: 2, UnitPriceCents: 350},
		},
		DeliveryDate:    "2026-09-01",
		DeliveryTime:    "14:30",
		DeliveryAddress: "12 Main St",
		SubtotalCents:   700,
		TotalCents:      700,
		Currency:        currency.CurrencyUSD,
	}
}

func TestCreate_StoresOrderAndOutboxMessage(t *testing.T) {
	work := &mockUnitOfWork{orderRepo: &mockOrderRepo{}, outboxRepo: &mockOutboxRepo{}}
	s := newTestService(&mockBusinessRepo{biz: business.Business{ID: "biz-1", Approved: true}}, work)

	created, err := s.Create(context.Background(), validOrder())

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, work.began)
	assert.True(t, work.committed)
	assert.False(t, work.rolledBack)
	assert.Equal(t, created.ID, work.orderRepo.inserted.ID)

	require.Len(t, work.outboxRepo.inserted, 1)
	msg := work.outboxRepo.inserted[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, 5, msg.MaxRetries)

	var event orderCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, "order.created", event.Event)
	assert.Equal(t, created.ID, event.OrderID)
	assert.Equal(t, "biz-1", event.BusinessID)
	assert.Equal(t, int64(700), event.TotalCents)
	assert.Equal(t, "USD", event.Currency)
}

func TestCreate_UnknownBusiness(t *testing.T) {
	work := &mockUnitOfWork{orderRepo: &mockOrderRepo{}, outboxRepo: &mockOutboxRepo{}}
	s := newTestService(&mockBusinessRepo{err: businessrepo.ErrBusinessNotFound}, work)

	_, err := s.Create(context.Background(), validOrder())

	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.False(t, work.began, "no transaction for a rejected order")
}

func TestCreate_UnapprovedBusiness(t *testing.T) {
	work := &mockUnitOfWork{orderRepo: &mockOrderRepo{}, outboxRepo: &mockOutboxRepo{}}
	s := newTestService(&mockBusinessRepo{biz: business.Business{ID: "biz-1", Approved: false}}, work)

	_, err := s.Create(context.Background(), validOrder())

	assert.ErrorIs(t, err, ErrBusinessNotApproved)
	assert.False(t, work.began)
}

type mockOrderLookup struct {
	stored order.Order
	err    error
}

func (m *mockOrderLookup) GetByID(_ context.Context, _ string) (order.Order, error) {
	return m.stored, m.err
}

func TestGetByID(t *testing.T) {
	s := MustNewOrderService(
		WithOrderRepository(&mockOrderLookup{stored: order.Order{ID: "o1", TotalCents: 700}}),
	)

	o, err := s.GetByID(context.Background(), "o1")

	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, currency.Cents(700), o.TotalCents)
}

func TestGetByID_UnknownOrder(t *testing.T) {
	s := MustNewOrderService(
		WithOrderRepository(&mockOrderLookup{err: orderrepo.ErrOrderNotFound}),
	)

	_, err := s.GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCreate_InsertFailureRollsBack(t *testing.T) {
	work := &mockUnitOfWork{
		orderRepo:  &mockOrderRepo{err: errors.New("insert failed")},
		outboxRepo: &mockOutboxRepo{},
	}
	s := newTestService(&mockBusinessRepo{biz: business.Business{ID: "biz-1", Approved: true}}, work)

	_, err := s.Create(context.Background(), validOrder())

	require.Error(t, err)
	assert.True(t, work.rolledBack)
	assert.False(t, work.committed)
	assert.Empty(t, work.outboxRepo.inserted)
}

func TestCreate_OutboxFailureRollsBack(t *testing.T) {
	work := &mockUnitOfWork{
		orderRepo:  &mockOrderRepo{},
		outboxRepo: &mockOutboxRepo{err: errors.New("outbox insert failed")},
	}
	s := newTestService(&mockBusinessRepo{biz: business.Business{ID: "biz-1", Approved: true}}, work)

	_, err := s.Create(context.Background(), validOrder())

	require.Error(t, err)
	assert.True(t, work.rolledBack)
	assert.False(t, work.committed)
}
