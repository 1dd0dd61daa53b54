package domain

import (
	"strings"
	"time"
)

// OperationType classifies the commercial operation offered for a property.
type OperationType string

const (
	OperationSale          OperationType = "sale"
	OperationRent          OperationType = "rent"
	OperationShortTermRent OperationType = "short_term_rent"
)

// IsRental reports whether the operation involves a recurring rent price.
func (o OperationType) IsRental() bool {
	return o == OperationRent || o == OperationShortTermRent
}

// PropertyStatus is the commercial availability of a listing.
type PropertyStatus string

const (
	StatusForSale PropertyStatus = "for_sale"
	StatusSold    PropertyStatus = "sold"
	StatusRented  PropertyStatus = "rented"
)

// PipelineStage is a property's position in the sales funnel. The stage
// graph is free: any stage may be set from any other, including backward
// moves (deals can be reopened).
type PipelineStage string

const (
	StageLead           PipelineStage = "lead"
	StageContacted      PipelineStage = "contacted"
	StageVisitScheduled PipelineStage = "visit_scheduled"
	StageNegotiation    PipelineStage = "negotiation"
	StageClosed         PipelineStage = "closed"
)

// PipelineStages lists the funnel stages in their typical progression order.
var PipelineStages = []PipelineStage{
	StageLead,
	StageContacted,
	StageVisitScheduled,
	StageNegotiation,
	StageClosed,
}

// Valid reports whether s is one of the five defined stages.
func (s PipelineStage) Valid() bool {
	switch s {
	case StageLead, StageContacted, StageVisitScheduled, StageNegotiation, StageClosed:
		return true
	}
	return false
}

// PlaceholderImage replaces image references that cannot be resolved
// outside the session that produced them (blob handles and the like).
const PlaceholderImage = "https://placehold.co/800x600?text=Property"

// Property represents one listing together with its CRM linkage.
type Property struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description,omitempty" bson:"description,omitempty"`
	OperationType OperationType `json:"operation_type" bson:"operationType"`
	PropertyType  string        `json:"property_type,omitempty" bson:"propertyType,omitempty"`

	Price     float64 `json:"price" bson:"price"`
	RentPrice float64 `json:"rent_price,omitempty" bson:"rentPrice,omitempty"`
	ShowPrice bool    `json:"show_price" bson:"showPrice"`

	Bedrooms       *int     `json:"bedrooms,omitempty" bson:"bedrooms,omitempty"`
	Bathrooms      *int     `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	HalfBathrooms  *int     `json:"half_bathrooms,omitempty" bson:"halfBathrooms,omitempty"`
	ParkingSpots   *int     `json:"parking_spots,omitempty" bson:"parkingSpots,omitempty"`
	ConstructionM2 *float64 `json:"construction_m2,omitempty" bson:"constructionM2,omitempty"`
	LandM2         *float64 `json:"land_m2,omitempty" bson:"landM2,omitempty"`
	LandWidth      *float64 `json:"land_width,omitempty" bson:"landWidth,omitempty"`
	LandDepth      *float64 `json:"land_depth,omitempty" bson:"landDepth,omitempty"`
	YearBuilt      *int     `json:"year_built,omitempty" bson:"yearBuilt,omitempty"`
	FloorNumber    *int     `json:"floor_number,omitempty" bson:"floorNumber,omitempty"`
	BuildingFloors *int     `json:"building_floors,omitempty" bson:"buildingFloors,omitempty"`

	Country      string   `json:"country" bson:"country"`
	State        string   `json:"state" bson:"state"`
	City         string   `json:"city" bson:"city"`
	Street       string   `json:"street" bson:"street"`
	Neighborhood string   `json:"neighborhood,omitempty" bson:"neighborhood,omitempty"`
	StreetNumber string   `json:"street_number,omitempty" bson:"streetNumber,omitempty"`
	ZipCode      string   `json:"zip_code,omitempty" bson:"zipCode,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`

	Images         []string `json:"images,omitempty" bson:"images,omitempty"`
	MainPhotoIndex int      `json:"main_photo_index" bson:"mainPhotoIndex"`
	Videos         []string `json:"videos,omitempty" bson:"videos,omitempty"`
	Tours360       []string `json:"tours_360,omitempty" bson:"tours360,omitempty"`

	Amenities []string `json:"amenities,omitempty" bson:"amenities,omitempty"`

	AgentID          *string        `json:"agent_id,omitempty" bson:"agentId,omitempty"`
	ClientID         *string        `json:"client_id,omitempty" bson:"clientId,omitempty"`
	PipelineStage    *PipelineStage `json:"pipeline_stage,omitempty" bson:"pipelineStage,omitempty"`
	ActivityLog      []ActivityLog  `json:"activity_log,omitempty" bson:"activityLog,omitempty"`
	Status           PropertyStatus `json:"status" bson:"status"`
	SoldAt           *time.Time     `json:"sold_at,omitempty" bson:"soldAt,omitempty"`
	CommissionAmount *float64       `json:"commission_amount,omitempty" bson:"commissionAmount,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// ActivityLog is one append-only, agent-attributed note on a property.
type ActivityLog struct {
	ID        string    `json:"id" bson:"id"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Activity  string    `json:"activity" bson:"activity"`
	Details   string    `json:"details,omitempty" bson:"details,omitempty"`
	AgentID   string    `json:"agent_id,omitempty" bson:"agentId,omitempty"`
}

// DisplayPrice returns the price shown to the public: the rent price when
// the operation is a rent variant and a positive rent price exists, the
// sale price otherwise.
func (p *Property) DisplayPrice() float64 {
	if p == nil {
		return 0
	}
	if p.OperationType.IsRental() && p.RentPrice > 0 {
		return p.RentPrice
	}
	return p.Price
}

// HasCoordinates reports whether the listing carries a usable geolocation.
// A coordinate of exactly 0,0 or outside the valid ranges means "unset";
// out-of-range values are never clamped.
func (p *Property) HasCoordinates() bool {
	if p == nil || p.Latitude == nil || p.Longitude == nil {
		return false
	}
	lat, lng := *p.Latitude, *p.Longitude
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// IsClosed reports whether the property sits in the closed pipeline stage.
func (p *Property) IsClosed() bool {
	return p != nil && p.PipelineStage != nil && *p.PipelineStage == StageClosed
}

// ValidImageRef reports whether ref can be rendered outside the session
// that stored it: an absolute HTTP(S) URL or an embedded data URI.
func ValidImageRef(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "data:")
}

// SanitizeImages replaces unresolvable image references with the
// placeholder and resets an out-of-range main photo index. It reports
// whether anything changed so callers can schedule a repair write-back.
func (p *Property) SanitizeImages() bool {
	if p == nil {
		return false
	}
	changed := false
	for i, ref := range p.Images {
		if !ValidImageRef(ref) {
			p.Images[i] = PlaceholderImage
			changed = true
		}
	}
	if p.MainPhotoIndex < 0 || p.MainPhotoIndex >= len(p.Images) {
		if p.MainPhotoIndex != 0 {
			p.MainPhotoIndex = 0
			changed = true
		}
	}
	return changed
}
