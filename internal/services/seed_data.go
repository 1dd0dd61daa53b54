package services

import "github.com/casaflow/backend/domain"

func floatPtr(f float64) *float64                      { return &f }
func intPtr(i int) *int                                { return &i }
func sourcePtr(s domain.LeadSource) *domain.LeadSource { return &s }

var sampleUsers = []domain.User{
	{
		Username: "admin",
		Password: "admin123",
		Role:     domain.RoleAdmin,
		Name:     "Administrator",
	},
	{
		Username:       "mrodriguez",
		Password:       "agent123",
		Role:           domain.RoleAgent,
		Name:           "Maria Rodriguez",
		CommissionRate: floatPtr(0.03),
	},
	{
		Username: "jpartner",
		Password: "referrer123",
		Role:     domain.RoleReferrer,
		Name:     "Jorge Partner",
	},
}

var sampleProperties = []domain.Property{
	{
		Title:          "Modern downtown apartment",
		Description:    "Two-bedroom apartment with city views, walking distance to the financial district.",
		OperationType:  domain.OperationSale,
		PropertyType:   "apartment",
		Price:          2850000,
		ShowPrice:      true,
		Bedrooms:       intPtr(2),
		Bathrooms:      intPtr(2),
		ParkingSpots:   intPtr(1),
		ConstructionM2: floatPtr(95),
		Country:        "Mexico",
		State:          "CDMX",
		City:           "Mexico City",
		Neighborhood:   "Roma Norte",
		Street:         "Av. Alvaro Obregon",
		StreetNumber:   "120",
		Latitude:       floatPtr(19.4194),
		Longitude:      floatPtr(-99.1615),
		Images:         []string{"https://images.example.com/listings/roma-norte-120/main.jpg"},
		Amenities:      []string{"elevator", "gym", "pets-allowed"},
		Status:         domain.StatusForSale,
	},
	{
		Title:          "Family house with garden",
		OperationType:  domain.OperationSale,
		PropertyType:   "house",
		Price:          5400000,
		ShowPrice:      true,
		Bedrooms:       intPtr(4),
		Bathrooms:      intPtr(3),
		HalfBathrooms:  intPtr(1),
		ParkingSpots:   intPtr(2),
		ConstructionM2: floatPtr(240),
		LandM2:         floatPtr(320),
		YearBuilt:      intPtr(2012),
		Country:        "Mexico",
		State:          "Jalisco",
		City:           "Guadalajara",
		Neighborhood:   "Providencia",
		Street:         "Calle Montevideo",
		Images:         []string{"https://images.example.com/listings/providencia/front.jpg"},
		Amenities:      []string{"garden", "terrace"},
		Status:         domain.StatusForSale,
	},
	{
		Title:         "Furnished studio near the beach",
		OperationType: domain.OperationShortTermRent,
		PropertyType:  "studio",
		Price:         1200000,
		RentPrice:     18500,
		ShowPrice:     true,
		Bedrooms:      intPtr(1),
		Bathrooms:     intPtr(1),
		Country:       "Mexico",
		State:         "Quintana Roo",
		City:          "Playa del Carmen",
		Street:        "Quinta Avenida",
		Images:        []string{"https://images.example.com/listings/playa-studio/pool.jpg"},
		Amenities:     []string{"pool", "furnished", "no-pets"},
		Status:        domain.StatusForSale,
	},
}

var sampleClients = []domain.Client{
	{
		Name:       "Laura Hernandez",
		Email:      "laura.hernandez@example.com",
		Phone:      "+52 55 1234 5678",
		Status:     domain.ClientLead,
		LeadSource: sourcePtr(domain.SourceWeb),
		Notes:      "Interested in two-bedroom apartments around Roma Norte.",
	},
	{
		Name:       "Carlos Mendoza",
		Email:      "carlos.mendoza@example.com",
		Status:     domain.ClientActive,
		LeadSource: sourcePtr(domain.SourceReferred),
		Notes:      "Looking to upgrade to a bigger house, budget up to 6M.",
	},
	{
		Name:       "Sofia Castillo",
		Email:      "sofia.castillo@example.com",
		Phone:      "+52 33 8765 4321",
		Status:     domain.ClientContacted,
		LeadSource: sourcePtr(domain.SourceCall),
	},
}

var sampleCampaigns = []domain.Campaign{
	{
		Name:    "New listings - Roma Norte",
		Subject: "Fresh apartments in Roma Norte this week",
		Body:    "<p>Take a look at the newest listings in your favorite neighborhood.</p>",
		TargetAudience: domain.TargetAudience{
			Statuses: []domain.ClientStatus{domain.ClientLead, domain.ClientContacted},
		},
		Status: domain.CampaignDraft,
	},
}
