package domain

import "time"

// CampaignStatus is a one-way Draft -> Sent transition.
type CampaignStatus string

const (
	CampaignDraft CampaignStatus = "draft"
	CampaignSent  CampaignStatus = "sent"
)

// TargetAudience describes a campaign's declarative recipient filter.
// An empty set in either dimension means "match all" on that dimension.
type TargetAudience struct {
	Statuses    []ClientStatus `json:"statuses,omitempty" bson:"statuses,omitempty"`
	LeadSources []LeadSource   `json:"lead_sources,omitempty" bson:"leadSources,omitempty"`
}

// Matches applies the audience predicate to a client: both the status
// filter and the source filter must hold. A client with no lead source
// never passes a non-empty source filter.
func (a TargetAudience) Matches(c *Client) bool {
	if c == nil {
		return false
	}
	statusOK := len(a.Statuses) == 0
	for _, s := range a.Statuses {
		if c.Status == s {
			statusOK = true
			break
		}
	}
	sourceOK := len(a.LeadSources) == 0
	if !sourceOK && c.LeadSource != nil {
		for _, src := range a.LeadSources {
			if *c.LeadSource == src {
				sourceOK = true
				break
			}
		}
	}
	return statusOK && sourceOK
}

// Campaign is a marketing email blast definition.
type Campaign struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	Name           string         `json:"name" bson:"name"`
	Subject        string         `json:"subject" bson:"subject"`
	Body           string         `json:"body" bson:"body"`
	TargetAudience TargetAudience `json:"target_audience" bson:"targetAudience"`
	Status         CampaignStatus `json:"status" bson:"status"`
	SentAt         *time.Time     `json:"sent_at,omitempty" bson:"sentAt,omitempty"`
	SentToCount    *int           `json:"sent_to_count,omitempty" bson:"sentToCount,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updatedAt"`
}

// IsSent reports whether the campaign already went out. Sent campaigns
// keep their recipient snapshot forever.
func (c *Campaign) IsSent() bool {
	return c != nil && c.Status == CampaignSent
}
