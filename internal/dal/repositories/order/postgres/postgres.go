package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
)

// ErrOrderNotFound is returned when an order id matches no row.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	db postgres.Querier
}

func NewOrderRepository(db postgres.Querier) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// Insert stores an order together with its items and returns the order
// with item ids filled in. Run it inside a transaction so the order and
// its items land together.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := sq.Insert("orders").
		Columns(
			"id",
			"business_id",
			"delivery_date",
			"delivery_time",
			"delivery_address",
			"notes",
			"subtotal_cents",
			"delivery_fee_cents",
			"total_cents",
			"currency",
			"created_at",
			"updated_at",
		).
		Values(
			o.ID,
			o.BusinessID,
			o.DeliveryDate,
			o.DeliveryTime,
			o.DeliveryAddress,
			o.Notes,
			int64(o.SubtotalCents),
			int64(o.DeliveryFee),
			int64(o.TotalCents),
			o.Currency.String(),
			o.CreatedAt,
			o.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	items, err := r.insertItems(ctx, o.ID, o.Items)
	if err != nil {
		return order.Order{}, err
	}
	o.Items = items

	return o, nil
}

func (r *OrderRepository) insertItems(ctx context.Context, orderID string, items []order.Item) ([]order.Item, error) {
	if len(items) == 0 {
		return []order.Item{}, nil
	}

	builder := sq.Insert("order_items").
		Columns(
			"order_id",
			"pastry_id",
			"name",
			"quantity",
			"unit_price_cents",
		).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar)

	for _, it := range items {
		builder = builder.Values(
			orderID,
			it.PastryID,
			it.Name,
			it.Quantity,
			int64(it.UnitPriceCents),
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build items insert query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&items[i].ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		items[i].OrderID = orderID
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

// GetByID retrieves one order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	query, args, err := sq.Select(
		"id",
		"business_id",
		"delivery_date",
		"delivery_time",
		"delivery_address",
		"notes",
		"subtotal_cents",
		"delivery_fee_cents",
		"total_cents",
		"currency",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var o order.Order
	var subtotal, fee, total int64
	var cur string
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&o.ID,
		&o.BusinessID,
		&o.DeliveryDate,
		&o.DeliveryTime,
		&o.DeliveryAddress,
		&o.Notes,
		&subtotal,
		&fee,
		&total,
		&cur,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	o.SubtotalCents = currency.Cents(subtotal)
	o.DeliveryFee = currency.Cents(fee)
	o.TotalCents = currency.Cents(total)
	o.Currency, err = currency.ParseCurrency(cur)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to parse order currency: %w", err)
	}

	o.Items, err = r.listItems(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	return o, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID string) ([]order.Item, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"pastry_id",
		"name",
		"quantity",
		"unit_price_cents",
	).
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build items select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []order.Item{}
	for rows.Next() {
		var it order.Item
		var unitPrice int64
		err := rows.Scan(
			&it.ID,
			&it.OrderID,
			&it.PastryID,
			&it.Name,
			&it.Quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		it.UnitPriceCents = currency.Cents(unitPrice)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
