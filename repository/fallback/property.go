package fallback

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// PropertyMirror is the local tier the property decorator writes through to.
type PropertyMirror interface {
	List() ([]domain.Property, error)
	Get(id string) (*domain.Property, error)
	Put(property *domain.Property) error
	Delete(id string) error
	ReplaceAll(properties []domain.Property) error
}

// RepairQueue collects properties whose stored image references had to be
// sanitized so a background worker can push the cleaned rows back to the
// remote store.
type RepairQueue interface {
	Enqueue(property *domain.Property) error
}

type propertyRepository struct {
	remote  repository.PropertyRepository
	mirror  PropertyMirror
	repairs RepairQueue
	logger  *zap.Logger
}

// NewPropertyRepository decorates the remote property repository with the
// local mirror and image sanitization. repairs may be nil.
func NewPropertyRepository(remote repository.PropertyRepository, mirror PropertyMirror, repairs RepairQueue, logger *zap.Logger) repository.PropertyRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &propertyRepository{
		remote:  remote,
		mirror:  mirror,
		repairs: repairs,
		logger:  logger,
	}
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	properties, err := r.remote.List(ctx)
	if err != nil {
		r.logger.Warn("remote property list failed, serving local mirror", zap.Error(err))
		return r.sanitizeAll(r.mirror.List())
	}

	properties, _ = r.sanitizeAll(properties, nil)
	if err := r.mirror.ReplaceAll(properties); err != nil {
		r.logger.Warn("property mirror refresh failed", zap.Error(err))
	}
	return properties, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	property, err := r.remote.GetByID(ctx, id)
	if err != nil {
		if cached, cacheErr := r.mirror.Get(id); cacheErr == nil && cached != nil {
			cached.SanitizeImages()
			return cached, nil
		}
		return nil, err
	}
	if property.SanitizeImages() {
		r.enqueueRepair(property)
	}
	return property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	created, err := r.remote.Create(ctx, property)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayload) {
			return nil, err
		}
		r.logger.Warn("remote property create failed, storing locally", zap.Error(err))
		property.ID = newLocalID()
		if mirrorErr := r.mirror.Put(property); mirrorErr != nil {
			return nil, mirrorErr
		}
		return property, nil
	}

	if mirrorErr := r.mirror.Put(created); mirrorErr != nil {
		r.logger.Warn("property mirror write failed", zap.Error(mirrorErr))
	}
	return created, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	if err := r.remote.Update(ctx, property); err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) || errors.Is(err, domain.ErrInvalidPayload) {
			if IsLocalID(property.ID) {
				return r.mirror.Put(property)
			}
			return err
		}
		r.logger.Warn("remote property update failed, storing locally", zap.Error(err))
		return r.mirror.Put(property)
	}

	if mirrorErr := r.mirror.Put(property); mirrorErr != nil {
		r.logger.Warn("property mirror write failed", zap.Error(mirrorErr))
	}
	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	err := r.remote.Delete(ctx, id)

	if mirrorErr := r.mirror.Delete(id); mirrorErr != nil {
		r.logger.Warn("property mirror delete failed", zap.Error(mirrorErr))
	}

	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) && !IsLocalID(id) {
			return err
		}
		r.logger.Warn("remote property delete failed", zap.Error(err))
	}
	return nil
}

// sanitizeAll cleans every row and queues repair write-backs for the rows
// that changed. The error argument is passed through untouched.
func (r *propertyRepository) sanitizeAll(properties []domain.Property, err error) ([]domain.Property, error) {
	if err != nil {
		return properties, err
	}
	for i := range properties {
		if properties[i].SanitizeImages() {
			r.enqueueRepair(&properties[i])
		}
	}
	return properties, nil
}

func (r *propertyRepository) enqueueRepair(property *domain.Property) {
	if r.repairs == nil || IsLocalID(property.ID) {
		return
	}
	if err := r.repairs.Enqueue(property); err != nil {
		r.logger.Warn("failed to queue image repair", zap.String("property_id", property.ID), zap.Error(err))
	}
}
