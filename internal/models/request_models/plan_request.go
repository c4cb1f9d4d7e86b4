package request_models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest fields are left unvalidated by the binder so that the
// plan service can report every missing field of the failing element.
type CreatePlanRequest struct {
	DeliveryPreference         string           `json:"deliveryPreference"`
	ServiceChoice              string           `json:"serviceChoice"`
	StartDate                  *time.Time       `json:"startDate"`
	EndDate                    *time.Time       `json:"endDate"`
	FreeOfferings              []string         `json:"freeOfferings"`
	IndividualBusinessServices []string         `json:"individualBusinessServices"`
	BusinessServices           []string         `json:"businessServices"`
	InstitutionalServices      []string         `json:"institutionalServices"`
	TotalPrice                 *decimal.Decimal `json:"totalPrice"`
}

type CreatePlansRequest struct {
	Plans []CreatePlanRequest `json:"plans" binding:"required,min=1"`
}

type UpgradePlanRequest struct {
	FreeOfferings              []string        `json:"freeOfferings"`
	IndividualBusinessServices []string        `json:"individualBusinessServices"`
	BusinessServices           []string        `json:"businessServices"`
	InstitutionalServices      []string        `json:"institutionalServices"`
	AdditionalPrice            decimal.Decimal `json:"additionalPrice"`
}

type OfferingRequest struct {
	Tier        string `json:"tier" binding:"required,oneof=free individual business institutional"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type PricingRequest struct {
	BasePrice          decimal.Decimal   `json:"basePrice"`
	SelectPercentage   []decimal.Decimal `json:"selectPercentage"`
	GST                decimal.Decimal   `json:"gst"`
	GSTEnabled         bool              `json:"gstEnabled"`
	PlatformFee        decimal.Decimal   `json:"platformFee"`
	PlatformFeeEnabled bool              `json:"platformFeeEnabled"`
}
