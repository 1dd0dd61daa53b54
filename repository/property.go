package repository

import (
	"context"

	"github.com/casaflow/backend/domain"
)

type PropertyRepository interface {
	List(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id string) error
}
