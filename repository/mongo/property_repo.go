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

type propertyRepository struct {
	collection *mongo.Collection
}

// NewPropertyRepository returns a MongoDB-backed implementation of PropertyRepository.
func NewPropertyRepository(db *mongo.Database) repository.PropertyRepository {
	return &propertyRepository{collection: db.Collection("properties")}
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []domain.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	var property domain.Property
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil {
		return nil, domain.ErrInvalidPayload
	}
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	if property == nil || property.ID == "" {
		return domain.ErrInvalidPayload
	}
	property.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}
