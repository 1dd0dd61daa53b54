package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/usecase/campaign"
)

// LogMailer stands in for the transactional email provider: it records the
// fan-out instead of delivering. The targeting engine only decides who
// matches; delivery lives behind this port.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, c *domain.Campaign, recipients []domain.Client) error {
	for i := range recipients {
		m.logger.Info("campaign email queued",
			zap.String("campaign_id", c.ID),
			zap.String("subject", c.Subject),
			zap.String("recipient", recipients[i].Email))
	}
	return nil
}

var _ campaign.Mailer = (*LogMailer)(nil)
