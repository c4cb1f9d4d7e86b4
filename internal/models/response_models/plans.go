package response_models

import (
	"github.com/shopspring/decimal"

	"seraphina/internal/models/db_models"
)

type PlanStatusResponse struct {
	HasActivePlan bool                 `json:"has_active_plan"`
	HasUsedFree   bool                 `json:"has_used_free_plan"`
	ActiveTiers   []db_models.PlanTier `json:"active_tiers"`
	ActivePlans   int                  `json:"active_plans"`
}

type RenewalResult struct {
	Plan    *db_models.Plan        `json:"plan"`
	Renewed *db_models.Plan        `json:"renewed_from"`
	Entry   *db_models.Transaction `json:"transaction,omitempty"`
}

type QuoteLine struct {
	Position   int             `json:"position"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

type PlanQuote struct {
	Tier        db_models.PlanTier `json:"tier"`
	Services    int                `json:"services"`
	Lines       []QuoteLine        `json:"lines"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	GST         decimal.Decimal    `json:"gst"`
	PlatformFee decimal.Decimal    `json:"platform_fee"`
	Total       decimal.Decimal    `json:"total"`
}
