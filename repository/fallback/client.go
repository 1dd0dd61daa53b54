package fallback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// ClientMirror is the local tier the client decorator writes through to.
type ClientMirror interface {
	List() ([]domain.Client, error)
	Get(id string) (*domain.Client, error)
	Put(client *domain.Client) error
	Delete(id string) error
	ReplaceAll(clients []domain.Client) error
}

type clientRepository struct {
	remote repository.ClientRepository
	mirror ClientMirror
	logger *zap.Logger
}

// NewClientRepository decorates the remote client repository with the local mirror.
func NewClientRepository(remote repository.ClientRepository, mirror ClientMirror, logger *zap.Logger) repository.ClientRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &clientRepository{
		remote: remote,
		mirror: mirror,
		logger: logger,
	}
}

func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := r.remote.List(ctx)
	if err != nil {
		r.logger.Warn("remote client list failed, serving local mirror", zap.Error(err))
		return r.mirror.List()
	}
	if err := r.mirror.ReplaceAll(clients); err != nil {
		r.logger.Warn("client mirror refresh failed", zap.Error(err))
	}
	return clients, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, err := r.remote.GetByID(ctx, id)
	if err != nil {
		if cached, cacheErr := r.mirror.Get(id); cacheErr == nil && cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	created, err := r.remote.Create(ctx, client)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			return nil, err
		}
		r.logger.Warn("remote client create failed, storing locally", zap.Error(err))
		client.ID = newLocalID()
		if mirrorErr := r.mirror.Put(client); mirrorErr != nil {
			return nil, mirrorErr
		}
		return client, nil
	}

	if mirrorErr := r.mirror.Put(created); mirrorErr != nil {
		r.logger.Warn("client mirror write failed", zap.Error(mirrorErr))
	}
	return created, nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	if err := r.remote.Update(ctx, client); err != nil {
		if errors.Is(err, domain.ErrClientNotFound) || errors.Is(err, domain.ErrInvalidPayload) {
			if IsLocalID(client.ID) {
				return r.mirror.Put(client)
			}
			return err
		}
		r.logger.Warn("remote client update failed, storing locally", zap.Error(err))
		return r.mirror.Put(client)
	}

	if mirrorErr := r.mirror.Put(client); mirrorErr != nil {
		r.logger.Warn("client mirror write failed", zap.Error(mirrorErr))
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)

	if mirrorErr := r.mirror.Delete(id); mirrorErr != nil {
		r.logger.Warn("client mirror delete failed", zap.Error(mirrorErr))
	}

	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) && !IsLocalID(id) {
			return err
		}
		r.logger.Warn("remote client delete failed", zap.Error(err))
	}
	return nil
}
