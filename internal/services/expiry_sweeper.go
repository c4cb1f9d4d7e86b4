package services

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"seraphina/internal/repositories"
)

var (
	plansExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seraphina_plans_expired_total",
		Help: "Plans moved to expired by the sweep",
	})
	investmentsMaturedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seraphina_investments_matured_total",
		Help: "Investment purchases moved to matured by the sweep",
	})
)

type SweepResult struct {
	PlansExpired     int64 `json:"plans_expired"`
	PurchasesMatured int64 `json:"purchases_matured"`
}

// ExpirySweeper is the only time-driven status change. Running it twice in a
// row is a no-op the second time.
type ExpirySweeper struct {
	plans       repositories.IPlanRepository
	investments repositories.InvestmentRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewExpirySweeper(plans repositories.IPlanRepository, investments repositories.InvestmentRepository, log *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		plans:       plans,
		investments: investments,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ExpirySweeper) Run(ctx context.Context) (SweepResult, error) {
	now := s.now()
	var result SweepResult

	expired, err := s.plans.ExpireEnded(ctx, now, PlanEventSources(PlanEventExpire))
	if err != nil {
		s.log.Error("plan expiry sweep failed", zap.Error(err))
		return result, err
	}
	result.PlansExpired = expired
	plansExpiredTotal.Add(float64(expired))

	matured, err := s.investments.MatureEnded(ctx, now)
	if err != nil {
		s.log.Error("investment maturity sweep failed", zap.Error(err))
		return result, err
	}
	result.PurchasesMatured = matured
	investmentsMaturedTotal.Add(float64(matured))

	s.log.Info("expiry sweep finished",
		zap.Int64("plans_expired", expired),
		zap.Int64("purchases_matured", matured))
	return result, nil
}
