package fallback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// CampaignMirror is the local tier the campaign decorator writes through to.
type CampaignMirror interface {
	List() ([]domain.Campaign, error)
	Get(id string) (*domain.Campaign, error)
	Put(campaign *domain.Campaign) error
	Delete(id string) error
	ReplaceAll(campaigns []domain.Campaign) error
}

type campaignRepository struct {
	remote repository.CampaignRepository
	mirror CampaignMirror
	logger *zap.Logger
}

// NewCampaignRepository decorates the remote campaign repository with the local mirror.
func NewCampaignRepository(remote repository.CampaignRepository, mirror CampaignMirror, logger *zap.Logger) repository.CampaignRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &campaignRepository{
		remote: remote,
		mirror: mirror,
		logger: logger,
	}
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := r.remote.List(ctx)
	if err != nil {
		r.logger.Warn("remote campaign list failed, serving local mirror", zap.Error(err))
		return r.mirror.List()
	}
	if err := r.mirror.ReplaceAll(campaigns); err != nil {
		r.logger.Warn("campaign mirror refresh failed", zap.Error(err))
	}
	return campaigns, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := r.remote.GetByID(ctx, id)
	if err != nil {
		if cached, cacheErr := r.mirror.Get(id); cacheErr == nil && cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return campaign, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	created, err := r.remote.Create(ctx, campaign)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			return nil, err
		}
		r.logger.Warn("remote campaign create failed, storing locally", zap.Error(err))
		campaign.ID = newLocalID()
		if campaign.Status == "" {
			campaign.Status = domain.CampaignDraft
		}
		if mirrorErr := r.mirror.Put(campaign); mirrorErr != nil {
			return nil, mirrorErr
		}
		return campaign, nil
	}

	if mirrorErr := r.mirror.Put(created); mirrorErr != nil {
		r.logger.Warn("campaign mirror write failed", zap.Error(mirrorErr))
	}
	return created, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	if err := r.remote.Update(ctx, campaign); err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) || errors.Is(err, domain.ErrInvalidPayload) {
			if IsLocalID(campaign.ID) {
				return r.mirror.Put(campaign)
			}
			return err
		}
		r.logger.Warn("remote campaign update failed, storing locally", zap.Error(err))
		return r.mirror.Put(campaign)
	}

	if mirrorErr := r.mirror.Put(campaign); mirrorErr != nil {
		r.logger.Warn("campaign mirror write failed", zap.Error(mirrorErr))
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)

	if mirrorErr := r.mirror.Delete(id); mirrorErr != nil {
		r.logger.Warn("campaign mirror delete failed", zap.Error(mirrorErr))
	}

	if err != nil {
		if errors.Is(err, domain.ErrCampaignNotFound) && !IsLocalID(id) {
			return err
		}
		r.logger.Warn("remote campaign delete failed", zap.Error(err))
	}
	return nil
}
