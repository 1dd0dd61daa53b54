// Package pipeline drives a property's progression through the sales
// funnel: stage moves, commission on close, client association, activity
// logging, and bulk agent assignment.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

type UseCase struct {
	properties repository.PropertyRepository
	users      repository.UserRepository
	logger     *zap.Logger
}

func New(properties repository.PropertyRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		properties: properties,
		users:      users,
		logger:     logger,
	}
}

// MoveToStage sets the property's pipeline stage. The stage graph is free:
// any stage (or nil, "not in pipeline") may follow any other. Entering the
// closed stage stamps soldAt and computes the assigned agent's commission;
// leaving it clears both.
func (uc *UseCase) MoveToStage(ctx context.Context, propertyID string, stage *domain.PipelineStage) (*domain.Property, error) {
	if stage != nil && !stage.Valid() {
		return nil, domain.ErrInvalidPayload
	}

	property, err := uc.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	property.PipelineStage = stage

	if stage != nil && *stage == domain.StageClosed {
		now := time.Now()
		property.SoldAt = &now
		property.CommissionAmount = nil
		if property.AgentID != nil {
			agent, err := uc.users.GetByID(ctx, *property.AgentID)
			if err != nil {
				uc.logger.Warn("commission lookup failed",
					zap.String("property_id", propertyID),
					zap.String("agent_id", *property.AgentID),
					zap.Error(err))
			} else if agent.HasCommission() {
				commission := property.Price * *agent.CommissionRate
				property.CommissionAmount = &commission
			}
		}
	} else {
		property.SoldAt = nil
		property.CommissionAmount = nil
	}

	if err := uc.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// AssignClient links (or unlinks, with nil) a client to the property. The
// client is not validated and no reverse link is kept; the same client may
// sit on any number of properties.
func (uc *UseCase) AssignClient(ctx context.Context, propertyID string, clientID *string) (*domain.Property, error) {
	property, err := uc.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	property.ClientID = clientID

	if err := uc.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// ActivityInput is one human-entered note to append to a property.
type ActivityInput struct {
	Activity string
	Details  string
	AgentID  string
}

// AddActivity appends an immutable, timestamped entry to the property's
// activity log. Entries are never edited or removed; storage order is
// insertion order.
func (uc *UseCase) AddActivity(ctx context.Context, propertyID string, input ActivityInput) (*domain.Property, error) {
	if input.Activity == "" {
		return nil, domain.ErrInvalidPayload
	}

	property, err := uc.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	property.ActivityLog = append(property.ActivityLog, domain.ActivityLog{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Activity:  input.Activity,
		Details:   input.Details,
		AgentID:   input.AgentID,
	})

	if err := uc.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// AssignPropertiesToAgent replaces the agent's portfolio wholesale: every
// property in propertyIDs gets the agent, and every property currently
// held by the agent but absent from the list is released. An empty list
// unassigns everything.
func (uc *UseCase) AssignPropertiesToAgent(ctx context.Context, agentID string, propertyIDs []string) error {
	properties, err := uc.properties.List(ctx)
	if err != nil {
		return err
	}

	wanted := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = true
	}

	for i := range properties {
		property := &properties[i]
		held := property.AgentID != nil && *property.AgentID == agentID

		switch {
		case wanted[property.ID] && !held:
			property.AgentID = &agentID
		case !wanted[property.ID] && held:
			property.AgentID = nil
		default:
			continue
		}

		if err := uc.properties.Update(ctx, property); err != nil {
			return err
		}
	}
	return nil
}
