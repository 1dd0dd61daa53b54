package fallback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// UserMirror is the local tier the user decorator writes through to.
type UserMirror interface {
	List() ([]domain.User, error)
	Get(id string) (*domain.User, error)
	Put(user *domain.User) error
	Delete(id string) error
	ReplaceAll(users []domain.User) error
}

type userRepository struct {
	remote repository.UserRepository
	mirror UserMirror
	logger *zap.Logger
}

// NewUserRepository decorates the remote user repository with the local mirror.
func NewUserRepository(remote repository.UserRepository, mirror UserMirror, logger *zap.Logger) repository.UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userRepository{
		remote: remote,
		mirror: mirror,
		logger: logger,
	}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	users, err := r.remote.List(ctx)
	if err != nil {
		r.logger.Warn("remote user list failed, serving local mirror", zap.Error(err))
		return r.mirror.List()
	}
	if err := r.mirror.ReplaceAll(users); err != nil {
		r.logger.Warn("user mirror refresh failed", zap.Error(err))
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.remote.GetByID(ctx, id)
	if err != nil {
		if cached, cacheErr := r.mirror.Get(id); cacheErr == nil && cached != nil {
			return cached, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	created, err := r.remote.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			return nil, err
		}
		r.logger.Warn("remote user create failed, storing locally", zap.Error(err))
		user.ID = newLocalID()
		if mirrorErr := r.mirror.Put(user); mirrorErr != nil {
			return nil, mirrorErr
		}
		return user, nil
	}

	if mirrorErr := r.mirror.Put(created); mirrorErr != nil {
		r.logger.Warn("user mirror write failed", zap.Error(mirrorErr))
	}
	return created, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.remote.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidPayload) {
			if IsLocalID(user.ID) {
				return r.mirror.Put(user)
			}
			return err
		}
		r.logger.Warn("remote user update failed, storing locally", zap.Error(err))
		return r.mirror.Put(user)
	}

	if mirrorErr := r.mirror.Put(user); mirrorErr != nil {
		r.logger.Warn("user mirror write failed", zap.Error(mirrorErr))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)

	if mirrorErr := r.mirror.Delete(id); mirrorErr != nil {
		r.logger.Warn("user mirror delete failed", zap.Error(mirrorErr))
	}

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) && !IsLocalID(id) {
			return err
		}
		r.logger.Warn("remote user delete failed", zap.Error(err))
	}
	return nil
}
