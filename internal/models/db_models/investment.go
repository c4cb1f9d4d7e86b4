package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	}
	return false
}

type InvestmentPlanStatus string

const (
	InvestmentPlanActive   InvestmentPlanStatus = "active"
	InvestmentPlanInactive InvestmentPlanStatus = "inactive"
)

type PayoutFrequency string

const (
	PayoutMonthly   PayoutFrequency = "monthly"
	PayoutQuarterly PayoutFrequency = "quarterly"
	PayoutYearly    PayoutFrequency = "yearly"
)

func (p PayoutFrequency) Valid() bool {
	switch p {
	case PayoutMonthly, PayoutQuarterly, PayoutYearly:
		return true
	}
	return false
}

type PurchaseStatus string

const (
	PurchaseActive    PurchaseStatus = "active"
	PurchaseMatured   PurchaseStatus = "matured"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

type InvestmentCategory struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type InvestmentPlan struct {
	BaseModel
	CategoryID     *uuid.UUID           `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Title          string               `gorm:"not null" json:"title"`
	MinAmount      decimal.Decimal      `gorm:"type:numeric(18,2);not null" json:"min_amount"`
	DurationMonths int                  `gorm:"not null" json:"duration_months"`
	ROI            string               `gorm:"size:32;not null" json:"roi"`
	Risk           RiskLevel            `gorm:"size:16" json:"risk"`
	AdditionalInfo string               `json:"additional_info"`
	Description    string               `json:"description"`
	Status         InvestmentPlanStatus `gorm:"size:16;not null;default:active;index" json:"status"`
	IsPopular      bool                 `gorm:"default:false" json:"is_popular"`
	IsFeatured     bool                 `gorm:"default:false" json:"is_featured"`

	Category *InvestmentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// InvestmentPurchase is immutable after creation apart from Status.
type InvestmentPurchase struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	PlanID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	PayoutFrequency PayoutFrequency `gorm:"size:16;not null" json:"payout_frequency"`
	StartDate       time.Time       `gorm:"not null" json:"start_date"`
	EndDate         time.Time       `gorm:"not null;index" json:"end_date"`
	Status          PurchaseStatus  `gorm:"size:16;not null;default:active;index" json:"status"`

	Plan *InvestmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}
