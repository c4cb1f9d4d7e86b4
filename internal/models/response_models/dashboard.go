package response_models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// "day" | "week" | "month"
	Interval string `json:"interval"`
	// Optional: timezone used for bucketing (defaults to UTC if empty)
	Timezone string `json:"timezone,omitempty"`
}

type KPIBlock struct {
	TotalUsers        int64            `json:"total_users"`
	NewUsers          int64            `json:"new_users"`
	UsersByStatus     map[string]int64 `json:"users_by_verification"`
	PlansByStatus     map[string]int64 `json:"plans_by_status"`
	ActivePurchases   int64            `json:"active_purchases"`
	AmountUnderManage decimal.Decimal  `json:"amount_under_management"`
}

type SeriesPoint struct {
	Bucket time.Time       `json:"bucket"`
	Value  decimal.Decimal `json:"value"`
}

type RevenueSeries struct {
	Currency string          `json:"currency"`
	Points   []SeriesPoint   `json:"points"`
	Total    decimal.Decimal `json:"total"`
}

type PlanMixItem struct {
	Tier    string          `json:"tier"`
	Count   int64           `json:"count"`
	Percent float64         `json:"percent"`
	Total   decimal.Decimal `json:"total"`
}

type LedgerTotal struct {
	Type  string          `json:"type"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type RecentTransaction struct {
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Description   string          `json:"description"`
	Phone         string          `json:"phone"`
}

type DashboardReport struct {
	Range              TimeRange           `json:"range"`
	KPIs               KPIBlock            `json:"kpis"`
	Revenue            RevenueSeries       `json:"revenue"`
	PlanMix            []PlanMixItem       `json:"plan_mix"`
	LedgerTotals       []LedgerTotal       `json:"ledger_totals"`
	RecentTransactions []RecentTransaction `json:"recent_transactions"`
}
