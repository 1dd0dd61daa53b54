package domain

import "time"

// ClientStatus tracks where a lead sits in its relationship with the
// brokerage. Statuses form no guarded graph; any value may be set directly.
type ClientStatus string

const (
	ClientLead      ClientStatus = "lead"
	ClientContacted ClientStatus = "contacted"
	ClientActive    ClientStatus = "active"
	ClientOnHold    ClientStatus = "on_hold"
	ClientDiscarded ClientStatus = "discarded"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientLead, ClientContacted, ClientActive, ClientOnHold, ClientDiscarded:
		return true
	}
	return false
}

// LeadSource records how a client first reached the brokerage.
type LeadSource string

const (
	SourceWeb      LeadSource = "web"
	SourceReferred LeadSource = "referred"
	SourceCall     LeadSource = "call"
	SourceOther    LeadSource = "other"
)

// Client is a lead or customer managed in the back office.
type Client struct {
	ID              string              `json:"id" bson:"_id,omitempty"`
	Name            string              `json:"name" bson:"name"`
	Email           string              `json:"email" bson:"email"`
	Phone           string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Status          ClientStatus        `json:"status" bson:"status"`
	LeadSource      *LeadSource         `json:"lead_source,omitempty" bson:"leadSource,omitempty"`
	AssignedAgentID *string             `json:"assigned_agent_id,omitempty" bson:"assignedAgentId,omitempty"`
	Notes           string              `json:"notes,omitempty" bson:"notes,omitempty"`
	ActivityLog     []ClientActivityLog `json:"activity_log,omitempty" bson:"activityLog,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updatedAt"`
}

// ClientActivityLog is one append-only note on a client. Unlike a
// property's ActivityLog it carries no agent attribution.
type ClientActivityLog struct {
	ID        string    `json:"id" bson:"id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Activity  string    `json:"activity" bson:"activity"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
}
