// Package clients manages the lead/customer lifecycle. Statuses form no
// guarded graph; any status may be set directly, and the activity log is
// append-only without agent attribution.
package clients

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

type UseCase struct {
	clients repository.ClientRepository
	logger  *zap.Logger
}

func New(clients repository.ClientRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		clients: clients,
		logger:  logger,
	}
}

func (uc *UseCase) ListClients(ctx context.Context) ([]domain.Client, error) {
	return uc.clients.List(ctx)
}

func (uc *UseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clients.GetByID(ctx, id)
}

func (uc *UseCase) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil || client.Name == "" || client.Email == "" {
		return nil, domain.ErrInvalidPayload
	}
	if client.Status == "" {
		client.Status = domain.ClientLead
	}
	return uc.clients.Create(ctx, client)
}

func (uc *UseCase) UpdateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if client == nil || client.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (uc *UseCase) DeleteClient(ctx context.Context, id string) error {
	return uc.clients.Delete(ctx, id)
}

// SetStatus writes the status directly; there is no transition validation
// beyond the status being a known value.
func (uc *UseCase) SetStatus(ctx context.Context, clientID string, status domain.ClientStatus) (*domain.Client, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidPayload
	}

	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.Status = status

	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// AddActivity appends an immutable, timestamped entry to the client's
// activity log.
func (uc *UseCase) AddActivity(ctx context.Context, clientID, activity, details string) (*domain.Client, error) {
	if activity == "" {
		return nil, domain.ErrInvalidPayload
	}

	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.ActivityLog = append(client.ActivityLog, domain.ClientActivityLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Activity:  activity,
		Details:   details,
	})

	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
