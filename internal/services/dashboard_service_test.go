package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type stubDashboardRepo struct {
	gotInterval string
}

func (s *stubDashboardRepo) CountTotalUsers(context.Context) (int64, error) { return 12, nil }

func (s *stubDashboardRepo) CountNewUsers(context.Context, time.Time, time.Time) (int64, error) {
	return 3, nil
}

func (s *stubDashboardRepo) UsersByVerification(context.Context) ([]repositories.StatusCount, error) {
	return []repositories.StatusCount{{Status: "approved", Count: 9}, {Status: "pending", Count: 3}}, nil
}

func (s *stubDashboardRepo) PlansByStatus(context.Context) ([]repositories.StatusCount, error) {
	return []repositories.StatusCount{{Status: "active", Count: 4}}, nil
}

func (s *stubDashboardRepo) CountActivePurchases(context.Context) (int64, decimal.Decimal, error) {
	return 2, decimal.NewFromInt(15000), nil
}

func (s *stubDashboardRepo) PlanMix(context.Context) ([]repositories.PlanMixRow, error) {
	return []repositories.PlanMixRow{
		{Tier: "premium", Count: 3, Total: decimal.NewFromInt(9000)},
		{Tier: "free", Count: 1, Total: decimal.Zero},
	}, nil
}

func (s *stubDashboardRepo) LedgerTotals(context.Context, time.Time, time.Time) ([]repositories.LedgerTotalRow, error) {
	return []repositories.LedgerTotalRow{{Type: "addMoney", Count: 5, Total: decimal.NewFromInt(2500)}}, nil
}

func (s *stubDashboardRepo) RevenueSeries(_ context.Context, _, _ time.Time, interval, _ string) ([]repositories.BucketSum, error) {
	s.gotInterval = interval
	return []repositories.BucketSum{
		{Bucket: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Sum: decimal.NewFromInt(4000)},
		{Bucket: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), Sum: decimal.NewFromInt(5000)},
	}, nil
}

func (s *stubDashboardRepo) RecentTransactions(context.Context, int) ([]repositories.RecentTransactionRow, error) {
	return []repositories.RecentTransactionRow{{TransactionID: "QVA1B2C3D4E5", Phone: "+919800000000"}}, nil
}

func TestDashboardService_BuildDashboard(t *testing.T) {
	repo := &stubDashboardRepo{}
	svc := NewDashboardService(repo)

	report, err := svc.BuildDashboard(context.Background(), resp.TimeRange{}, "INR")
	require.NoError(t, err)

	assert.Equal(t, "day", repo.gotInterval)
	assert.Equal(t, 30*24*time.Hour, report.Range.End.Sub(report.Range.Start))
	assert.EqualValues(t, 12, report.KPIs.TotalUsers)
	assert.EqualValues(t, 3, report.KPIs.UsersByStatus["pending"])
	assert.True(t, decimal.NewFromInt(9000).Equal(report.Revenue.Total))
	require.Len(t, report.PlanMix, 2)
	assert.InDelta(t, 75.0, report.PlanMix[0].Percent, 0.001)
	assert.Len(t, report.RecentTransactions, 1)

	_, err = svc.BuildDashboard(context.Background(), resp.TimeRange{Interval: "hour"}, "INR")
	assert.ErrorIs(t, err, utils.ErrInvalidField)
}
