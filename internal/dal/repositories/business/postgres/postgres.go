package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
)

// ErrBusinessNotFound is returned when a business id matches no row.
var ErrBusinessNotFound = errors.New("business not found")

var businessColumns = []string{
	"id",
	"name",
	"email",
	"phone",
	"business_type",
	"address",
	"approved",
	"created_at",
	"updated_at",
}

// BusinessDal represents business data access layer model
type BusinessDal struct {
	Id           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	BusinessType string    `db:"business_type"`
	Address      string    `db:"address"`
	Approved     bool      `db:"approved"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// ToModel converts BusinessDal to the service layer Business model
func (b *BusinessDal) ToModel() business.Business {
	return business.Business{
		ID:           b.Id,
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		BusinessType: b.BusinessType,
		Address:      b.Address,
		Approved:     b.Approved,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (b *BusinessDal) scan(row pgx.Row) error {
	return row.Scan(
		&b.Id,
		&b.Name,
		&b.Email,
		&b.Phone,
		&b.BusinessType,
		&b.Address,
		&b.Approved,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

type BusinessRepository struct {
	db postgres.Querier
}

func NewBusinessRepository(db postgres.Querier) *BusinessRepository {
	return &BusinessRepository{
		db: db,
	}
}

// Insert stores a new business.
func (r *BusinessRepository) Insert(ctx context.Context, b business.Business) (business.Business, error) {
	query, args, err := sq.Insert("businesses").
		Columns(businessColumns...).
		Values(
			b.ID,
			b.Name,
			b.Email,
			b.Phone,
			b.BusinessType,
			b.Address,
			b.Approved,
			b.CreatedAt,
			b.UpdatedAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return business.Business{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return business.Business{}, fmt.Errorf("failed to insert business: %w", err)
	}

	return b, nil
}

// List retrieves businesses, optionally only those pending approval.
func (r *BusinessRepository) List(ctx context.Context, onlyPending bool) ([]business.Business, error) {
	builder := sq.Select(businessColumns...).
		From("businesses").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar)

	if onlyPending {
		builder = builder.Where(sq.Eq{"approved": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses: %w", err)
	}
	defer rows.Close()

	businesses := []business.Business{}
	for rows.Next() {
		var dal BusinessDal
		if err := dal.scan(rows); err != nil {
			return nil, fmt.Errorf("failed to scan business: %w", err)
		}
		businesses = append(businesses, dal.ToModel())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return businesses, nil
}

// GetByID retrieves a single business.
func (r *BusinessRepository) GetByID(ctx context.Context, id string) (business.Business, error) {
	query, args, err := sq.Select(businessColumns...).
		From("businesses").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return business.Business{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal BusinessDal
	if err := dal.scan(r.db.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.Business{}, ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to get business: %w", err)
	}

	return dal.ToModel(), nil
}

// SetApproval updates the approval flag and returns the updated record.
func (r *BusinessRepository) SetApproval(ctx context.Context, id string, approved bool) (business.Business, error) {
	query, args, err := sq.Update("businesses").
		Set("approved", approved).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(businessColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return business.Business{}, fmt.Errorf("failed to build update query: %w", err)
	}

	var dal BusinessDal
	if err := dal.scan(r.db.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return business.Business{}, ErrBusinessNotFound
		}
		return business.Business{}, fmt.Errorf("failed to update approval: %w", err)
	}

	return dal.ToModel(), nil
}
