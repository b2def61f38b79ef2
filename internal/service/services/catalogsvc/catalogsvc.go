package catalogsvc

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	pastryrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/pastry/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

type pastryRepository interface {
	Insert(ctx context.Context, p pastry.Pastry) (pastry.Pastry, error)
	List(ctx context.Context) ([]pastry.Pastry, error)
}

// CatalogService manages the pastry catalog.
type CatalogService struct {
	repo pastryRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the service to the pastry repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.repo = pastryrepo.NewPastryRepository(pgClient.Pool())
	}
}

// WithRepository sets the repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepository(repo pastryRepository) option {
	return func(s *CatalogService) {
		s.repo = repo
	}
}

// List returns the whole catalog.
func (s *CatalogService) List(ctx context.Context) ([]pastry.Pastry, error) {
	return s.repo.List(ctx)
}

// Create assigns an id and timestamps to a new pastry and stores it.
func (s *CatalogService) Create(ctx context.Context, p pastry.Pastry) (pastry.Pastry, error) {
	now := time.Now()
	p.ID = uuid.NewString()
	p.PriceCurrency = currency.CurrencyUSD
	p.CreatedAt = now
	p.UpdatedAt = now

	return s.repo.Insert(ctx, p)
}
