package fallback

import (
	"context"
	"errors"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// ErrRemoteDisabled marks the remote store as statically unavailable, so
// every operation degrades to the local mirror immediately.
var ErrRemoteDisabled = errors.New("remote store disabled")

// Offline remote implementations let the service boot with no reachable
// document store: the decorators then serve the mirror exclusively.
type (
	OfflineProperties struct{}
	OfflineClients    struct{}
	OfflineCampaigns  struct{}
	OfflineUsers      struct{}
)

func (OfflineProperties) List(context.Context) ([]domain.Property, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineProperties) GetByID(context.Context, string) (*domain.Property, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineProperties) Create(context.Context, *domain.Property) (*domain.Property, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineProperties) Update(context.Context, *domain.Property) error { return ErrRemoteDisabled }
func (OfflineProperties) Delete(context.Context, string) error           { return ErrRemoteDisabled }

func (OfflineClients) List(context.Context) ([]domain.Client, error) { return nil, ErrRemoteDisabled }
func (OfflineClients) GetByID(context.Context, string) (*domain.Client, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineClients) Create(context.Context, *domain.Client) (*domain.Client, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineClients) Update(context.Context, *domain.Client) error { return ErrRemoteDisabled }
func (OfflineClients) Delete(context.Context, string) error         { return ErrRemoteDisabled }

func (OfflineCampaigns) List(context.Context) ([]domain.Campaign, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineCampaigns) GetByID(context.Context, string) (*domain.Campaign, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineCampaigns) Create(context.Context, *domain.Campaign) (*domain.Campaign, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineCampaigns) Update(context.Context, *domain.Campaign) error { return ErrRemoteDisabled }
func (OfflineCampaigns) Delete(context.Context, string) error           { return ErrRemoteDisabled }

func (OfflineUsers) List(context.Context) ([]domain.User, error) { return nil, ErrRemoteDisabled }
func (OfflineUsers) GetByID(context.Context, string) (*domain.User, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, ErrRemoteDisabled
}
func (OfflineUsers) Update(context.Context, *domain.User) error { return ErrRemoteDisabled }
func (OfflineUsers) Delete(context.Context, string) error       { return ErrRemoteDisabled }

var (
	_ repository.PropertyRepository = OfflineProperties{}
	_ repository.ClientRepository   = OfflineClients{}
	_ repository.CampaignRepository = OfflineCampaigns{}
	_ repository.UserRepository     = OfflineUsers{}
)
