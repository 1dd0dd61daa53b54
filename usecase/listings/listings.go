// Package listings covers property CRUD for both the public site and the
// back office, plus the AI-assisted free-text search. The AI calls are
// opaque remote ports; their failures degrade to empty results, never
// uncaught errors.
package listings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/casaflow/backend/domain"
	"github.com/casaflow/backend/repository"
)

// SearchFilter is the structured form the AI service distills a free-text
// query into. Every field is optional.
type SearchFilter struct {
	Type      string   `json:"type,omitempty"`
	Location  string   `json:"location,omitempty"`
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
}

// Parser turns a free-text query into a structured filter.
type Parser interface {
	ParseQuery(ctx context.Context, query string) (*SearchFilter, error)
}

// Describer turns property attributes into marketing copy.
type Describer interface {
	Describe(ctx context.Context, property *domain.Property) (string, error)
}

type UseCase struct {
	properties repository.PropertyRepository
	parser     Parser
	describer  Describer
	logger     *zap.Logger
}

func New(properties repository.PropertyRepository, parser Parser, describer Describer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		properties: properties,
		parser:     parser,
		describer:  describer,
		logger:     logger,
	}
}

func (uc *UseCase) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return uc.properties.List(ctx)
}

func (uc *UseCase) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	return uc.properties.GetByID(ctx, id)
}

func (uc *UseCase) CreateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if err := validate(property); err != nil {
		return nil, err
	}
	if property.Status == "" {
		property.Status = domain.StatusForSale
	}
	return uc.properties.Create(ctx, property)
}

func (uc *UseCase) UpdateProperty(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil || property.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := validate(property); err != nil {
		return nil, err
	}
	if err := uc.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (uc *UseCase) DeleteProperty(ctx context.Context, id string) error {
	return uc.properties.Delete(ctx, id)
}

// Search runs the free-text query through the AI parser and filters the
// collection in memory. A parser failure yields an empty result, not an
// error.
func (uc *UseCase) Search(ctx context.Context, query string) ([]domain.Property, error) {
	properties, err := uc.properties.List(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" || uc.parser == nil {
		return properties, nil
	}

	filter, err := uc.parser.ParseQuery(ctx, query)
	if err != nil {
		uc.logger.Warn("search query parsing failed", zap.String("query", query), zap.Error(err))
		return []domain.Property{}, nil
	}

	var matched []domain.Property
	for i := range properties {
		if filter.matches(&properties[i]) {
			matched = append(matched, properties[i])
		}
	}
	return matched, nil
}

// Describe asks the AI service for marketing copy. Failures surface as an
// error string for the UI, never a panic.
func (uc *UseCase) Describe(ctx context.Context, propertyID string) (string, error) {
	property, err := uc.properties.GetByID(ctx, propertyID)
	if err != nil {
		return "", err
	}
	if uc.describer == nil {
		return "", domain.NewError(domain.ErrCodeInternal, "description service not configured")
	}
	text, err := uc.describer.Describe(ctx, property)
	if err != nil {
		uc.logger.Warn("description generation failed", zap.String("property_id", propertyID), zap.Error(err))
		return "", domain.WrapError(domain.ErrCodeInternal, "description generation failed", err)
	}
	return text, nil
}

func (f *SearchFilter) matches(p *domain.Property) bool {
	if f.Type != "" && !strings.EqualFold(f.Type, p.PropertyType) {
		return false
	}
	if f.Location != "" && !matchesLocation(f.Location, p) {
		return false
	}
	price := p.DisplayPrice()
	if f.MinPrice != nil && price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms < *f.Bedrooms) {
		return false
	}
	if f.Bathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms < *f.Bathrooms) {
		return false
	}
	for _, amenity := range f.Amenities {
		if !containsFold(p.Amenities, amenity) {
			return false
		}
	}
	return true
}

func matchesLocation(location string, p *domain.Property) bool {
	location = strings.ToLower(location)
	for _, candidate := range []string{p.City, p.State, p.Neighborhood, p.Country} {
		if candidate != "" && strings.Contains(strings.ToLower(candidate), location) {
			return true
		}
	}
	return false
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func validate(p *domain.Property) error {
	if p == nil || p.Title == "" {
		return domain.ErrInvalidPayload
	}
	switch p.OperationType {
	case domain.OperationSale, domain.OperationRent, domain.OperationShortTermRent:
	default:
		return domain.NewError(domain.ErrCodeInvalid, "unknown operation type")
	}
	if p.Price < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "price must not be negative")
	}
	if p.OperationType.IsRental() && p.RentPrice <= 0 {
		return domain.NewError(domain.ErrCodeInvalid, "rent operations require a rent price")
	}
	if p.Country == "" || p.State == "" || p.City == "" || p.Street == "" {
		return domain.NewError(domain.ErrCodeInvalid, "country, state, city and street are required")
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		return domain.NewError(domain.ErrCodeInvalid, "latitude out of range")
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		return domain.NewError(domain.ErrCodeInvalid, "longitude out of range")
	}
	if p.MainPhotoIndex < 0 || (len(p.Images) > 0 && p.MainPhotoIndex >= len(p.Images)) {
		p.MainPhotoIndex = 0
	}
	return nil
}
