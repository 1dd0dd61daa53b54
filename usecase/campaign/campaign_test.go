package campaign

import (
	"context"
	"testing"

	"github.com/casaflow/backend/domain"
)

type fakeCampaignStore struct {
	rows map[string]*domain.Campaign
}

func newFakeCampaignStore(rows ...*domain.Campaign) *fakeCampaignStore {
	s := &fakeCampaignStore{rows: make(map[string]*domain.Campaign)}
	for _, row := range rows {
		copied := *row
		s.rows[row.ID] = &copied
	}
	return s
}

func (s *fakeCampaignStore) List(context.Context) ([]domain.Campaign, error) {
	out := make([]domain.Campaign, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *fakeCampaignStore) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *fakeCampaignStore) Create(_ context.Context, campaign *domain.Campaign) (*domain.Campaign, error) {
	if campaign.ID == "" {
		campaign.ID = "campaign-1"
	}
	copied := *campaign
	s.rows[campaign.ID] = &copied
	return campaign, nil
}

func (s *fakeCampaignStore) Update(_ context.Context, campaign *domain.Campaign) error {
	if _, ok := s.rows[campaign.ID]; !ok {
		return domain.ErrCampaignNotFound
	}
	copied := *campaign
	s.rows[campaign.ID] = &copied
	return nil
}

func (s *fakeCampaignStore) Delete(_ context.Context, id string) error {
	delete(s.rows, id)
	return nil
}

type fakeClientStore struct {
	rows []domain.Client
}

func (s *fakeClientStore) List(context.Context) ([]domain.Client, error) {
	return append([]domain.Client(nil), s.rows...), nil
}

func (s *fakeClientStore) GetByID(_ context.Context, id string) (*domain.Client, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			copied := s.rows[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (s *fakeClientStore) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	s.rows = append(s.rows, *client)
	return client, nil
}

func (s *fakeClientStore) Update(_ context.Context, client *domain.Client) error {
	for i := range s.rows {
		if s.rows[i].ID == client.ID {
			s.rows[i] = *client
			return nil
		}
	}
	return domain.ErrClientNotFound
}

func (s *fakeClientStore) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrClientNotFound
}

func sourcePtr(s domain.LeadSource) *domain.LeadSource { return &s }

func testPool() *fakeClientStore {
	return &fakeClientStore{rows: []domain.Client{
		{ID: "c1", Name: "Ana", Status: domain.ClientActive, LeadSource: sourcePtr(domain.SourceWeb)},
		{ID: "c2", Name: "Bruno", Status: domain.ClientLead, LeadSource: sourcePtr(domain.SourceWeb)},
		{ID: "c3", Name: "Carla", Status: domain.ClientActive, LeadSource: sourcePtr(domain.SourceReferred)},
		{ID: "c4", Name: "Diego", Status: domain.ClientDiscarded},
	}}
}

func TestSendMatchesStatusAndSourceTogether(t *testing.T) {
	campaigns := newFakeCampaignStore(&domain.Campaign{
		ID:      "camp-1",
		Name:    "Nuevos desarrollos",
		Subject: "Preventa",
		Status:  domain.CampaignDraft,
		TargetAudience: domain.TargetAudience{
			Statuses:    []domain.ClientStatus{domain.ClientActive},
			LeadSources: []domain.LeadSource{domain.SourceWeb},
		},
	})
	uc := New(campaigns, testPool(), nil)

	sent, recipients, err := uc.Send(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(recipients) != 1 || recipients[0].ID != "c1" {
		t.Fatalf("recipients = %v, want exactly c1 (active AND web)", recipientIDs(recipients))
	}
	if !sent.IsSent() {
		t.Error("campaign should be marked sent")
	}
	if sent.SentAt == nil || sent.SentToCount == nil || *sent.SentToCount != 1 {
		t.Error("sent snapshot (sentAt, sentToCount) was not recorded")
	}
}

func TestSendEmptyAudienceMatchesEveryone(t *testing.T) {
	campaigns := newFakeCampaignStore(&domain.Campaign{
		ID:      "camp-1",
		Name:    "Newsletter",
		Subject: "Hola",
		Status:  domain.CampaignDraft,
	})
	uc := New(campaigns, testPool(), nil)

	_, recipients, err := uc.Send(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(recipients) != 4 {
		t.Errorf("recipients = %v, want all four clients", recipientIDs(recipients))
	}
}

func TestSendClientWithoutSourceFailsSourceFilter(t *testing.T) {
	campaigns := newFakeCampaignStore(&domain.Campaign{
		ID:      "camp-1",
		Name:    "Referidos",
		Subject: "Gracias",
		Status:  domain.CampaignDraft,
		TargetAudience: domain.TargetAudience{
			LeadSources: []domain.LeadSource{domain.SourceReferred, domain.SourceOther},
		},
	})
	uc := New(campaigns, testPool(), nil)

	_, recipients, err := uc.Send(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	// c4 has no lead source at all and must not slip through.
	for _, r := range recipients {
		if r.ID == "c4" {
			t.Error("client without a lead source matched a non-empty source filter")
		}
	}
	if len(recipients) != 1 || recipients[0].ID != "c3" {
		t.Errorf("recipients = %v, want exactly c3", recipientIDs(recipients))
	}
}

func TestSendTwiceIsANoOp(t *testing.T) {
	campaigns := newFakeCampaignStore(&domain.Campaign{
		ID:      "camp-1",
		Name:    "Newsletter",
		Subject: "Hola",
		Status:  domain.CampaignDraft,
	})
	pool := testPool()
	uc := New(campaigns, pool, nil)

	first, _, err := uc.Send(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("first send: %v", err)
	}

	// Grow the pool; a re-send must not refresh the snapshot.
	pool.rows = append(pool.rows, domain.Client{ID: "c5", Name: "Eva", Status: domain.ClientLead})

	second, recipients, err := uc.Send(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("second send: %v", err)
	}
	if recipients != nil {
		t.Errorf("re-send returned recipients %v, want none", recipientIDs(recipients))
	}
	if *second.SentToCount != *first.SentToCount {
		t.Errorf("sentToCount changed from %d to %d on re-send", *first.SentToCount, *second.SentToCount)
	}
	if !second.SentAt.Equal(*first.SentAt) {
		t.Error("sentAt changed on re-send")
	}
}

func TestCreateCampaignForcesDraft(t *testing.T) {
	campaigns := newFakeCampaignStore()
	uc := New(campaigns, &fakeClientStore{}, nil)

	count := 99
	created, err := uc.CreateCampaign(context.Background(), &domain.Campaign{
		Name:        "Smuggled",
		Subject:     "Hola",
		Status:      domain.CampaignSent,
		SentToCount: &count,
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	if created.Status != domain.CampaignDraft || created.SentAt != nil || created.SentToCount != nil {
		t.Error("new campaigns must start as clean drafts")
	}
}

func recipientIDs(recipients []domain.Client) []string {
	ids := make([]string, len(recipients))
	for i, r := range recipients {
		ids[i] = r.ID
	}
	return ids
}
