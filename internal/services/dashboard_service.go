package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type DashboardService interface {
	BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// normalizeRange ensures sane defaults and ordering
func normalizeRange(r resp.TimeRange, now time.Time) (resp.TimeRange, error) {
	out := r
	switch out.Interval {
	case "":
		out.Interval = "day"
	case "day", "week", "month":
	default:
		return out, utils.WithDetails(utils.ErrInvalidField, "interval")
	}
	if out.End.IsZero() {
		out.End = now
	}
	if out.Start.IsZero() {
		out.Start = out.End.AddDate(0, 0, -30) // last 30 days default
	}
	if out.Start.After(out.End) {
		out.Start, out.End = out.End, out.Start
	}
	return out, nil
}

func (s *dashboardService) BuildDashboard(ctx context.Context, rng resp.TimeRange, currency string) (*resp.DashboardReport, error) {
	rng, err := normalizeRange(rng, s.now())
	if err != nil {
		return nil, err
	}

	// ---------- Core counts ----------
	totalUsers, err := s.repo.CountTotalUsers(ctx)
	if err != nil {
		return nil, err
	}
	newUsers, err := s.repo.CountNewUsers(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	byVerification, err := s.repo.UsersByVerification(ctx)
	if err != nil {
		return nil, err
	}
	byPlanStatus, err := s.repo.PlansByStatus(ctx)
	if err != nil {
		return nil, err
	}
	activePurchases, underManagement, err := s.repo.CountActivePurchases(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Revenue ----------
	revenueRows, err := s.repo.RevenueSeries(ctx, rng.Start, rng.End, rng.Interval, rng.Timezone)
	if err != nil {
		return nil, err
	}
	revenue := resp.RevenueSeries{Currency: currency, Points: []resp.SeriesPoint{}, Total: decimal.Zero}
	for _, r := range revenueRows {
		revenue.Points = append(revenue.Points, resp.SeriesPoint{Bucket: r.Bucket, Value: r.Sum})
		revenue.Total = revenue.Total.Add(r.Sum)
	}

	// ---------- Plan mix ----------
	planRows, err := s.repo.PlanMix(ctx)
	if err != nil {
		return nil, err
	}
	var totalActive int64
	for _, r := range planRows {
		totalActive += r.Count
	}
	planMix := make([]resp.PlanMixItem, 0, len(planRows))
	for _, r := range planRows {
		var pct float64
		if totalActive > 0 {
			pct = float64(r.Count) * 100.0 / float64(totalActive)
		}
		planMix = append(planMix, resp.PlanMixItem{Tier: r.Tier, Count: r.Count, Percent: pct, Total: r.Total})
	}

	// ---------- Ledger ----------
	totalRows, err := s.repo.LedgerTotals(ctx, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	ledgerTotals := make([]resp.LedgerTotal, 0, len(totalRows))
	for _, r := range totalRows {
		ledgerTotals = append(ledgerTotals, resp.LedgerTotal{Type: r.Type, Count: r.Count, Total: r.Total})
	}

	recentRows, err := s.repo.RecentTransactions(ctx, 10)
	if err != nil {
		return nil, err
	}
	recent := make([]resp.RecentTransaction, 0, len(recentRows))
	for _, r := range recentRows {
		recent = append(recent, resp.RecentTransaction{
			TransactionID: r.TransactionID,
			CreatedAt:     time.Unix(0, r.CreatedAt).UTC(),
			Amount:        r.Amount,
			Type:          r.Type,
			Status:        r.Status,
			Description:   r.Description,
			Phone:         r.Phone,
		})
	}

	return &resp.DashboardReport{
		Range: rng,
		KPIs: resp.KPIBlock{
			TotalUsers:        totalUsers,
			NewUsers:          newUsers,
			UsersByStatus:     countsByStatus(byVerification),
			PlansByStatus:     countsByStatus(byPlanStatus),
			ActivePurchases:   activePurchases,
			AmountUnderManage: underManagement,
		},
		Revenue:            revenue,
		PlanMix:            planMix,
		LedgerTotals:       ledgerTotals,
		RecentTransactions: recent,
	}, nil
}

func countsByStatus(rows []repositories.StatusCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out
}
