package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	orderrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/outbox/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/outbox"
)

// OrderRepository is the order persistence surface exposed to services.
type OrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
}

// OutboxRepository is the outbox persistence surface exposed to services.
type OutboxRepository interface {
	Insert(ctx context.Context, msg outbox.Message) error
}

// UnitOfWork scopes the order and outbox repositories to one transaction
// once Begin is called.
type UnitOfWork struct {
	pool       *pgxpool.Pool
	tx         pgx.Tx
	orderRepo  OrderRepository
	outboxRepo OutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	return &UnitOfWork{
		pool:       client.Pool(),
		orderRepo:  orderrepo.NewOrderRepository(client.Pool()),
		outboxRepo: outboxrepo.NewOutboxRepository(client.Pool()),
	}
}

func (u *UnitOfWork) OrderRepository() OrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OutboxRepository() OutboxRepository {
	return u.outboxRepo
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewOrderRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after Commit is a no-op,
// so callers can defer it unconditionally.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
