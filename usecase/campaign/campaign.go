// Package campaign resolves a campaign's declarative audience into a
// concrete recipient list at send time and enforces the one-way
// Draft -> Sent transition.
package campaign

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// Mailer hands the matched recipients to an external delivery provider.
// Per-recipient fan-out mechanics live behind this port.
type Mailer interface {
	Send(ctx context.Context, campaign *domain.Campaign, recipients []domain.Client) error
}

type UseCase struct {
	campaigns repository.CampaignRepository
	clients   repository.ClientRepository
	logger    *zap.Logger
}

func New(campaigns repository.CampaignRepository, clients repository.ClientRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		campaigns: campaigns,
		clients:   clients,
		logger:    logger,
	}
}

func (uc *UseCase) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	return uc.campaigns.List(ctx)
}

func (uc *UseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return uc.campaigns.GetByID(ctx, id)
}

func (uc *UseCase) CreateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if campaign == nil || campaign.Name == "" || campaign.Subject == "" {
		return nil, domain.ErrInvalidPayload
	}
	campaign.Status = domain.CampaignDraft
	campaign.SentAt = nil
	campaign.SentToCount = nil
	return uc.campaigns.Create(ctx, campaign)
}

func (uc *UseCase) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if campaign == nil || campaign.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (uc *UseCase) DeleteCampaign(ctx context.Context, id string) error {
	return uc.campaigns.Delete(ctx, id)
}

// Send resolves the campaign's audience against the current client pool,
// marks the campaign sent with a recipient-count snapshot, and returns the
// matched clients. Appending "campaign received" activity to each match is
// the caller's job. Sending an already-sent campaign is a warned no-op
// that returns no recipients and leaves the original snapshot untouched.
func (uc *UseCase) Send(ctx context.Context, campaignID string) (*domain.Campaign, []domain.Client, error) {
	campaign, err := uc.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, nil, err
	}

	if campaign.IsSent() {
		uc.logger.Warn("campaign already sent, skipping",
			zap.String("campaign_id", campaignID),
			zap.String("campaign_name", campaign.Name))
		return campaign, nil, nil
	}

	pool, err := uc.clients.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	var matched []domain.Client
	for i := range pool {
		if campaign.TargetAudience.Matches(&pool[i]) {
			matched = append(matched, pool[i])
		}
	}

	now := time.Now()
	count := len(matched)
	campaign.Status = domain.CampaignSent
	campaign.SentAt = &now
	campaign.SentToCount = &count

	if err := uc.campaigns.Update(ctx, campaign); err != nil {
		return nil, nil, err
	}

	uc.logger.Info("campaign sent",
		zap.String("campaign_id", campaignID),
		zap.Int("recipients", count))
	return campaign, matched, nil
}
