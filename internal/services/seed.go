package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/casaflow/backend/repository"
)

// Seeder populates empty remote collections with the built-in sample
// dataset on first run. Seeding only happens in the development
// environment and only when the remote store is reachable and reports an
// empty collection; rows go through the regular create path so they get
// real remote-assigned ids.
type Seeder struct {
	environment string

	remoteProperties repository.PropertyRepository
	remoteClients    repository.ClientRepository
	remoteCampaigns  repository.CampaignRepository
	remoteUsers      repository.UserRepository

	properties repository.PropertyRepository
	clients    repository.ClientRepository
	campaigns  repository.CampaignRepository
	users      repository.UserRepository

	logger *zap.Logger
}

// SeederRepos bundles the remote repositories (emptiness checks) and the
// fallback-decorated ones (writes).
type SeederRepos struct {
	RemoteProperties repository.PropertyRepository
	RemoteClients    repository.ClientRepository
	RemoteCampaigns  repository.CampaignRepository
	RemoteUsers      repository.UserRepository

	Properties repository.PropertyRepository
	Clients    repository.ClientRepository
	Campaigns  repository.CampaignRepository
	Users      repository.UserRepository
}

func NewSeeder(environment string, repos SeederRepos, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		environment:      environment,
		remoteProperties: repos.RemoteProperties,
		remoteClients:    repos.RemoteClients,
		remoteCampaigns:  repos.RemoteCampaigns,
		remoteUsers:      repos.RemoteUsers,
		properties:       repos.Properties,
		clients:          repos.Clients,
		campaigns:        repos.Campaigns,
		users:            repos.Users,
		logger:           logger,
	}
}

// Run seeds every empty collection. Failures are logged and skipped; an
// unreachable remote store means no seeding at all.
func (s *Seeder) Run(ctx context.Context) {
	if s.environment != "development" {
		return
	}

	if empty, ok := s.remoteEmpty(ctx, "users", func(ctx context.Context) (int, error) {
		users, err := s.remoteUsers.List(ctx)
		return len(users), err
	}); ok && empty {
		for i := range sampleUsers {
			user := sampleUsers[i]
			if _, err := s.users.Create(ctx, &user); err != nil {
				s.logger.Warn("user seed failed", zap.String("username", user.Username), zap.Error(err))
			}
		}
		s.logger.Info("seeded sample users", zap.Int("count", len(sampleUsers)))
	}

	if empty, ok := s.remoteEmpty(ctx, "properties", func(ctx context.Context) (int, error) {
		properties, err := s.remoteProperties.List(ctx)
		return len(properties), err
	}); ok && empty {
		for i := range sampleProperties {
			property := sampleProperties[i]
			if _, err := s.properties.Create(ctx, &property); err != nil {
				s.logger.Warn("property seed failed", zap.String("title", property.Title), zap.Error(err))
			}
		}
		s.logger.Info("seeded sample properties", zap.Int("count", len(sampleProperties)))
	}

	if empty, ok := s.remoteEmpty(ctx, "clients", func(ctx context.Context) (int, error) {
		clients, err := s.remoteClients.List(ctx)
		return len(clients), err
	}); ok && empty {
		for i := range sampleClients {
			client := sampleClients[i]
			if _, err := s.clients.Create(ctx, &client); err != nil {
				s.logger.Warn("client seed failed", zap.String("name", client.Name), zap.Error(err))
			}
		}
		s.logger.Info("seeded sample clients", zap.Int("count", len(sampleClients)))
	}

	if empty, ok := s.remoteEmpty(ctx, "campaigns", func(ctx context.Context) (int, error) {
		campaigns, err := s.remoteCampaigns.List(ctx)
		return len(campaigns), err
	}); ok && empty {
		for i := range sampleCampaigns {
			campaign := sampleCampaigns[i]
			if _, err := s.campaigns.Create(ctx, &campaign); err != nil {
				s.logger.Warn("campaign seed failed", zap.String("name", campaign.Name), zap.Error(err))
			}
		}
		s.logger.Info("seeded sample campaigns", zap.Int("count", len(sampleCampaigns)))
	}
}

func (s *Seeder) remoteEmpty(ctx context.Context, collection string, count func(context.Context) (int, error)) (empty, ok bool) {
	n, err := count(ctx)
	if err != nil {
		s.logger.Warn("skipping seed check, remote unreachable",
			zap.String("collection", collection), zap.Error(err))
		return false, false
	}
	return n == 0, true
}
