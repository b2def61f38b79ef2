package directorysvc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/izzybakes/pastry-orders/internal/dal/postgres"
	businessrepo "github.com/izzybakes/pastry-orders/internal/dal/repositories/business/postgres"
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
)

// ErrBusinessNotFound is returned when an approval targets an unknown id.
var ErrBusinessNotFound = errors.New("business not found")

type businessRepository interface {
	Insert(ctx context.Context, b business.Business) (business.Business, error)
	List(ctx context.Context, onlyPending bool) ([]business.Business, error)
	SetApproval(ctx context.Context, id string, approved bool) (business.Business, error)
}

// DirectoryService manages business signup and approval.
type DirectoryService struct {
	repo businessRepository
}

// option is a function that configures the DirectoryService.
type option func(*DirectoryService)

// MustNewDirectoryService creates a new DirectoryService.
func MustNewDirectoryService(opts ...option) *DirectoryService {
	s := &DirectoryService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient wires the service to the business repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *DirectoryService) {
		s.repo = businessrepo.NewBusinessRepository(pgClient.Pool())
	}
}

// WithRepository sets the repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepository(repo businessRepository) option {
	return func(s *DirectoryService) {
		s.repo = repo
	}
}

// List returns businesses, optionally only those pending approval.
func (s *DirectoryService) List(ctx context.Context, onlyPending bool) ([]business.Business, error) {
	return s.repo.List(ctx, onlyPending)
}

// Signup registers a new business. It starts unapproved.
func (s *DirectoryService) Signup(ctx context.Context, b business.Business) (business.Business, error) {
	now := time.Now()
	b.ID = uuid.NewString()
	b.Approved = false
	b.CreatedAt = now
	b.UpdatedAt = now

	return s.repo.Insert(ctx, b)
}

// SetApproval flips the approval flag of a business.
func (s *DirectoryService) SetApproval(ctx context.Context, id string, approved bool) (business.Business, error) {
	b, err := s.repo.SetApproval(ctx, id, approved)
	if err != nil {
		if errors.Is(err, businessrepo.ErrBusinessNotFound) {
			return business.Business{}, ErrBusinessNotFound
		}
		return business.Business{}, err
	}

	return b, nil
}
