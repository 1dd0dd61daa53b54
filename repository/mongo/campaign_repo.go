package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

type campaignRepository struct {
	collection *mongo.Collection
}

// NewCampaignRepository returns a MongoDB-backed implementation of CampaignRepository.
func NewCampaignRepository(db *mongo.Database) repository.CampaignRepository {
	return &campaignRepository{collection: db.Collection("campaigns")}
}

func (r *campaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var campaigns []domain.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	var campaign domain.Campaign
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if campaign == nil {
		return nil, domain.ErrInvalidPayload
	}
	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	if campaign.Status == "" {
		campaign.Status = domain.CampaignDraft
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	if campaign == nil || campaign.ID == "" {
		return domain.ErrInvalidPayload
	}
	campaign.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": campaign.ID}, campaign)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}
