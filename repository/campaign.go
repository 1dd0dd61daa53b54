package repository

import (
	"context"

	"github.com/casaflow/backend/domain"
)

type CampaignRepository interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	GetByID(ctx context.Context, id string) (*domain.Campaign, error)
	Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id string) error
}
