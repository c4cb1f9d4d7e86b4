package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PlanTier string

const (
	TierFree          PlanTier = "free"
	TierIndividual    PlanTier = "individual"
	TierBusiness      PlanTier = "business"
	TierInstitutional PlanTier = "institutional"
)

var AllTiers = []PlanTier{TierFree, TierIndividual, TierBusiness, TierInstitutional}

func (t PlanTier) Valid() bool {
	switch t {
	case TierFree, TierIndividual, TierBusiness, TierInstitutional:
		return true
	}
	return false
}

func (t PlanTier) IsPaid() bool {
	return t.Valid() && t != TierFree
}

type PlanStatus string

const (
	PlanStatusActive  PlanStatus = "active"
	PlanStatusExpired PlanStatus = "expired"
	PlanStatusRenewed PlanStatus = "renewed"
)

type DeliveryPreference string

const (
	DeliveryEmail     DeliveryPreference = "email"
	DeliveryDashboard DeliveryPreference = "dashboard"
	DeliveryBoth      DeliveryPreference = "both"
)

func (d DeliveryPreference) Valid() bool {
	switch d {
	case DeliveryEmail, DeliveryDashboard, DeliveryBoth:
		return true
	}
	return false
}

// Plan is a user's subscription to one tier of research services. Only one
// free plan may ever exist per user; the partial unique index enforces it.
type Plan struct {
	BaseModel
	UserID             uuid.UUID          `gorm:"type:uuid;not null;index;uniqueIndex:idx_plans_single_free,where:service_choice = 'free'" json:"user_id"`
	DeliveryPreference DeliveryPreference `gorm:"size:16;not null" json:"delivery_preference"`
	ServiceChoice      PlanTier           `gorm:"size:16;not null;index" json:"service_choice"`
	StartDate          time.Time          `gorm:"not null" json:"start_date"`
	EndDate            time.Time          `gorm:"not null;index" json:"end_date"`
	Status             PlanStatus         `gorm:"size:16;not null;default:active;index" json:"status"`

	FreeOfferings              []string `gorm:"serializer:json;type:text" json:"free_offerings"`
	IndividualBusinessServices []string `gorm:"serializer:json;type:text" json:"individual_business_services"`
	BusinessServices           []string `gorm:"serializer:json;type:text" json:"business_services"`
	InstitutionalServices      []string `gorm:"serializer:json;type:text" json:"institutional_services"`

	TotalPrice    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_price"`
	RenewedFromID *uuid.UUID      `gorm:"type:uuid" json:"renewed_from_id,omitempty"`
}

// ServicesFor returns the service ids stored for the given tier.
func (p *Plan) ServicesFor(tier PlanTier) []string {
	switch tier {
	case TierFree:
		return p.FreeOfferings
	case TierIndividual:
		return p.IndividualBusinessServices
	case TierBusiness:
		return p.BusinessServices
	case TierInstitutional:
		return p.InstitutionalServices
	}
	return nil
}

func (p *Plan) SetServicesFor(tier PlanTier, ids []string) {
	switch tier {
	case TierFree:
		p.FreeOfferings = ids
	case TierIndividual:
		p.IndividualBusinessServices = ids
	case TierBusiness:
		p.BusinessServices = ids
	case TierInstitutional:
		p.InstitutionalServices = ids
	}
}

// AllServiceIDs lists the ids across every tier array, in tier order.
func (p *Plan) AllServiceIDs() []string {
	var ids []string
	for _, tier := range AllTiers {
		ids = append(ids, p.ServicesFor(tier)...)
	}
	return ids
}

// ServiceOffering is one entry of a tier's research-service catalog.
type ServiceOffering struct {
	BaseModel
	Tier        PlanTier `gorm:"size:16;not null;uniqueIndex:idx_offering_tier_name" json:"tier"`
	Name        string   `gorm:"not null;uniqueIndex:idx_offering_tier_name" json:"name"`
	Description string   `json:"description"`
}

// PlanPricing is the single pricing configuration row used for quotes.
// SelectPercentage[i] is the share of BasePrice charged for the (i+1)-th
// selected service.
type PlanPricing struct {
	BaseModel
	BasePrice          decimal.Decimal   `gorm:"type:numeric(18,2);not null;default:0" json:"base_price"`
	SelectPercentage   []decimal.Decimal `gorm:"serializer:json;type:text" json:"select_percentage"`
	GST                decimal.Decimal   `gorm:"type:numeric(5,2);not null;default:0" json:"gst"`
	GSTEnabled         bool              `json:"gst_enabled"`
	PlatformFee        decimal.Decimal   `gorm:"type:numeric(18,2);not null;default:0" json:"platform_fee"`
	PlatformFeeEnabled bool              `json:"platform_fee_enabled"`
}
