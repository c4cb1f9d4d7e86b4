package request_models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type InvestmentPlanRequest struct {
	CategoryID     *uuid.UUID      `json:"categoryId"`
	Title          string          `json:"title" binding:"required"`
	MinAmount      decimal.Decimal `json:"minAmount"`
	DurationMonths int             `json:"durationMonths" binding:"required,min=1"`
	ROI            string          `json:"roi" binding:"required"`
	Risk           string          `json:"risk" binding:"omitempty,oneof=Low Moderate High"`
	AdditionalInfo string          `json:"additionalInfo"`
	Description    string          `json:"description"`
	IsPopular      bool            `json:"isPopular"`
	IsFeatured     bool            `json:"isFeatured"`
}

type InvestmentFlagsRequest struct {
	IsPopular  *bool   `json:"isPopular"`
	IsFeatured *bool   `json:"isFeatured"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type PurchaseRequest struct {
	PlanID          uuid.UUID       `json:"planId" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	PayoutFrequency string          `json:"payoutFrequency" binding:"required"`
}
