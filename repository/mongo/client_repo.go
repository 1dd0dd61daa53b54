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

type clientRepository struct {
	collection *mongo.Collection
}

// NewClientRepository returns a MongoDB-backed implementation of ClientRepository.
func NewClientRepository(db *mongo.Database) repository.ClientRepository {
	return &clientRepository{collection: db.Collection("clients")}
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []domain.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var client domain.Client
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil {
		return nil, domain.ErrInvalidPayload
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if client == nil || client.ID == "" {
		return domain.ErrInvalidPayload
	}
	client.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": client.ID}, client)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
