package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	businessrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/business/postgres"
	orderrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/order/postgres"
	"github.com/izzybakes/pastry-orders/internal/dal/uow"
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/outbox"
)

var (
	// ErrBusinessNotFound is returned when the order references an
	// unknown business id.
	ErrBusinessNotFound = errors.New("business not found")

	// ErrBusinessNotApproved is returned when the business exists but
	// has not been approved yet.
	ErrBusinessNotApproved = errors.New("business is not approved to place orders")

	// ErrOrderNotFound is returned when a lookup targets an unknown
	// order id.
	ErrOrderNotFound = errors.New("order not found")
)

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() uow.OrderRepository
	OutboxRepository() uow.OutboxRepository
}

type businessRepository interface {
	GetByID(ctx context.Context, id string) (business.Business, error)
}

type orderRepository interface {
	GetByID(ctx context.Context, id string) (order.Order, error)
}

// OrderService accepts finalized orders.
type OrderService struct {
	uowFactory   func() unitOfWork
	businessRepo businessRepository
	orderRepo    orderRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the service to Postgres-backed repositories.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.uowFactory = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
		s.businessRepo = businessrepo.NewBusinessRepository(pgClient.Pool())
		s.orderRepo = orderrepo.NewOrderRepository(pgClient.Pool())
	}
}

// WithUnitOfWorkFactory sets the unit of work factory directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// WithBusinessRepository sets the business lookup directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithBusinessRepository(repo businessRepository) option {
	return func(s *OrderService) {
		s.businessRepo = repo
	}
}

// WithOrderRepository sets the order lookup directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(repo orderRepository) option {
	return func(s *OrderService) {
		s.orderRepo = repo
	}
}

// orderCreatedEvent is the payload published for every accepted order.
type orderCreatedEvent struct {
	Event      string `json:"event"`
	OrderID    string `json:"order_id"`
	BusinessID string `json:"business_id"`
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
	PlacedAt   string `json:"placed_at"`
}

// Create validates the ordering business, stores the order with its
// items, and enqueues an order.created event, all in one transaction.
func (s *OrderService) Create(ctx context.Context, o order.Order) (order.Order, error) {
	biz, err := s.businessRepo.GetByID(ctx, o.BusinessID)
	if err != nil {
		if errors.Is(err, businessrepo.ErrBusinessNotFound) {
			return order.Order{}, ErrBusinessNotFound
		}
		return order.Order{}, fmt.Errorf("failed to look up business: %w", err)
	}
	if !biz.Approved {
		return order.Order{}, ErrBusinessNotApproved
	}

	now := time.Now()
	o.ID = uuid.NewString()
	o.CreatedAt = now
	o.UpdatedAt = now

	work := s.uowFactory()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, err
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back order transaction", "error", err)
		}
	}()

	created, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	msg, err := newOrderCreatedMessage(created, now)
	if err != nil {
		return order.Order{}, err
	}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, err
	}

	return created, nil
}

// GetByID retrieves one order with its items.
func (s *OrderService) GetByID(ctx context.Context, id string) (order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderrepo.ErrOrderNotFound) {
			return order.Order{}, ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

func newOrderCreatedMessage(o order.Order, now time.Time) (outbox.Message, error) {
	payload, err := json.Marshal(orderCreatedEvent{
		Event:      "order.created",
		OrderID:    o.ID,
		BusinessID: o.BusinessID,
		TotalCents: int64(o.TotalCents),
		Currency:   o.Currency.String(),
		PlacedAt:   now.Format(time.RFC3339),
	})
	if err != nil {
		return outbox.Message{}, fmt.Errorf("failed to marshal order event: %w", err)
	}

	maxRetries := viper.GetInt("rabbitmq.outbox.max_retries")
	if maxRetries == 0 {
		maxRetries = 5
	}

	return outbox.Message{
		QueueName:    viper.GetString("rabbitmq.orders.queue"),
		ExchangeName: viper.GetString("rabbitmq.orders.exchange"),
		RoutingKey:   viper.GetString("rabbitmq.orders.routing_key"),
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	}, nil
}
