package listings

import (
	"context"
	"errors"
	"testing"

	"github.com/casaflow/backend/domain"
)

type fakePropertyStore struct {
	rows []domain.Property
}

func (s *fakePropertyStore) List(context.Context) ([]domain.Property, error) {
	return append([]domain.Property(nil), s.rows...), nil
}

func (s *fakePropertyStore) GetByID(_ context.Context, id string) (*domain.Property, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			copied := s.rows[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrPropertyNotFound
}

func (s *fakePropertyStore) Create(_ context.Context, property *domain.Property) (*domain.Property, error) {
	if property.ID == "" {
		property.ID = "p-new"
	}
	s.rows = append(s.rows, *property)
	return property, nil
}

func (s *fakePropertyStore) Update(_ context.Context, property *domain.Property) error {
	for i := range s.rows {
		if s.rows[i].ID == property.ID {
			s.rows[i] = *property
			return nil
		}
	}
	return domain.ErrPropertyNotFound
}

func (s *fakePropertyStore) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrPropertyNotFound
}

type fakeParser struct {
	filter *SearchFilter
	err    error
}

func (p *fakeParser) ParseQuery(context.Context, string) (*SearchFilter, error) {
	return p.filter, p.err
}

type fakeDescriber struct {
	text string
	err  error
}

func (d *fakeDescriber) Describe(context.Context, *domain.Property) (string, error) {
	return d.text, d.err
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func validProperty() *domain.Property {
	return &domain.Property{
		Title:         "Casa Polanco",
		OperationType: domain.OperationSale,
		Price:         5200000,
		Country:       "México",
		State:         "CDMX",
		City:          "Ciudad de México",
		Street:        "Av. Horacio",
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	uc := New(&fakePropertyStore{}, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.Property)
	}{
		{"missing title", func(p *domain.Property) { p.Title = "" }},
		{"unknown operation", func(p *domain.Property) { p.OperationType = "lease_to_own" }},
		{"negative price", func(p *domain.Property) { p.Price = -1 }},
		{"rental without rent price", func(p *domain.Property) {
			p.OperationType = domain.OperationRent
			p.RentPrice = 0
		}},
		{"missing city", func(p *domain.Property) { p.City = "" }},
		{"latitude out of range", func(p *domain.Property) { p.Latitude = floatPtr(123) }},
		{"longitude out of range", func(p *domain.Property) { p.Longitude = floatPtr(-200) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validProperty()
			tc.mutate(p)
			if _, err := uc.CreateProperty(ctx, p); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestCreatePropertyDefaultsStatusAndNormalizesIndex(t *testing.T) {
	store := &fakePropertyStore{}
	uc := New(store, nil, nil, nil)

	p := validProperty()
	p.Images = []string{"https://cdn.example.com/a.jpg"}
	p.MainPhotoIndex = 4
	created, err := uc.CreateProperty(context.Background(), p)
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if created.Status != domain.StatusForSale {
		t.Errorf("status = %q, want for_sale default", created.Status)
	}
	if created.MainPhotoIndex != 0 {
		t.Errorf("mainPhotoIndex = %d, want normalized to 0", created.MainPhotoIndex)
	}
}

func searchPool() *fakePropertyStore {
	return &fakePropertyStore{rows: []domain.Property{
		{
			ID: "p1", PropertyType: "house", City: "Playa del Carmen",
			State: "Quintana Roo", Country: "México",
			OperationType: domain.OperationSale, Price: 3000000,
			Bedrooms: intPtr(3), Amenities: []string{"Pool", "Garden"},
		},
		{
			ID: "p2", PropertyType: "apartment", City: "Cancún",
			State: "Quintana Roo", Country: "México",
			OperationType: domain.OperationRent, Price: 2000000, RentPrice: 18000,
			Bedrooms: intPtr(2),
		},
		{
			ID: "p3", PropertyType: "house", City: "Guadalajara",
			State: "Jalisco", Country: "México",
			OperationType: domain.OperationSale, Price: 1500000,
			Bedrooms: intPtr(4), Amenities: []string{"garden"},
		},
	}}
}

func TestSearchAppliesParsedFilter(t *testing.T) {
	parser := &fakeParser{filter: &SearchFilter{
		Type:     "house",
		Location: "quintana roo",
		Bedrooms: intPtr(3),
	}}
	uc := New(searchPool(), parser, nil, nil)

	matched, err := uc.Search(context.Background(), "casa de 3 recámaras en la riviera")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "p1" {
		t.Errorf("matched = %v, want exactly p1", matched)
	}
}

func TestSearchRentalsFilterOnRentPrice(t *testing.T) {
	parser := &fakeParser{filter: &SearchFilter{MaxPrice: floatPtr(20000)}}
	uc := New(searchPool(), parser, nil, nil)

	matched, err := uc.Search(context.Background(), "renta barata")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Only p2's display price (its rent) fits under 20k; the sale prices
	// of p1 and p3 do not.
	if len(matched) != 1 || matched[0].ID != "p2" {
		t.Errorf("matched = %v, want exactly p2", matched)
	}
}

func TestSearchAmenityMatchingIsCaseInsensitive(t *testing.T) {
	parser := &fakeParser{filter: &SearchFilter{Amenities: []string{"GARDEN"}}}
	uc := New(searchPool(), parser, nil, nil)

	matched, err := uc.Search(context.Background(), "con jardín")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("matched %d rows, want p1 and p3", len(matched))
	}
}

func TestSearchParserFailureDegradesToEmpty(t *testing.T) {
	parser := &fakeParser{err: errors.New("model timeout")}
	uc := New(searchPool(), parser, nil, nil)

	matched, err := uc.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search must not surface parser errors, got %v", err)
	}
	if len(matched) != 0 {
		t.Errorf("matched = %v, want empty on parser failure", matched)
	}
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	uc := New(searchPool(), &fakeParser{}, nil, nil)

	matched, err := uc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 3 {
		t.Errorf("matched %d rows, want all 3", len(matched))
	}
}

func TestDescribeWrapsServiceFailure(t *testing.T) {
	store := searchPool()
	uc := New(store, nil, &fakeDescriber{err: errors.New("service down")}, nil)

	if _, err := uc.Describe(context.Background(), "p1"); !domain.IsDomainError(err, domain.ErrCodeInternal) {
		t.Errorf("err = %v, want an internal domain error", err)
	}

	uc = New(store, nil, &fakeDescriber{text: "Hermosa casa"}, nil)
	text, err := uc.Describe(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if text != "Hermosa casa" {
		t.Errorf("text = %q", text)
	}
}
