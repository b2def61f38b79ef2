package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

// PastryDal represents pastry data access layer model
type PastryDal struct {
	Id            string    `db:"id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	PriceCents    int64     `db:"price_cents"`
	PriceCurrency string    `db:"price_currency"`
	Active        bool      `db:"active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// ToModel converts PastryDal to the service layer Pastry model
func (p *PastryDal) ToModel() (*pastry.Pastry, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}
	return &pastry.Pastry{
		ID:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    currency.Cents(p.PriceCents),
		PriceCurrency: cur,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

type PastryRepository struct {
	db postgres.Querier
}

func NewPastryRepository(db postgres.Querier) *PastryRepository {
	return &PastryRepository{
		db: db,
	}
}

// Insert stores a new pastry.
func (r *PastryRepository) Insert(ctx context.Context, p pastry.Pastry) (pastry.Pastry, error) {
	query, args, err := sq.Insert("pastries").
		Columns(
			"id",
			"name",
			"description",
			"price_cents",
			"price_currency",
			"active",
			"created_at",
			"updated_at",
		).
		Values(
			p.ID,
			p.Name,
			p.Description,
			int64(p.PriceCents),
			p.PriceCurrency.String(),
			p.Active,
			p.CreatedAt,
			p.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return pastry.Pastry{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return pastry.Pastry{}, fmt.Errorf("failed to insert pastry: %w", err)
	}

	return p, nil
}

// List retrieves the whole catalog, oldest first.
func (r *PastryRepository) List(ctx context.Context) ([]pastry.Pastry, error) {
	query, args, err := sq.Select(
		"id",
		"name",
		"description",
		"price_cents",
		"price_currency",
		"active",
		"created_at",
		"updated_at",
	).
		From("pastries").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastries: %w", err)
	}
	defer rows.Close()

	pastries := []pastry.Pastry{}
	for rows.Next() {
		var dal PastryDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.Active,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pastry: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert pastry dal to model: %w", err)
		}
		pastries = append(pastries, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return pastries, nil
}
