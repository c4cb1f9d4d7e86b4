package response_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"seraphina/internal/models/db_models"
)

type PerformancePoint struct {
	Date     time.Time       `json:"date"`
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
}

type PerformanceSummary struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	ProfitAmount  decimal.Decimal `json:"profit_amount"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
}

type PurchasePerformance struct {
	PurchaseID    uuid.UUID                `json:"purchase_id"`
	PlanTitle     string                   `json:"plan_title"`
	Amount        decimal.Decimal          `json:"amount"`
	ROI           decimal.Decimal          `json:"roi"`
	MonthsElapsed int                      `json:"months_elapsed"`
	CurrentValue  decimal.Decimal          `json:"current_value"`
	Status        db_models.PurchaseStatus `json:"status"`
}

type Performance struct {
	Range     string                `json:"range"`
	Series    []PerformancePoint    `json:"series"`
	Summary   PerformanceSummary    `json:"summary"`
	Breakdown []PurchasePerformance `json:"breakdown"`
}
