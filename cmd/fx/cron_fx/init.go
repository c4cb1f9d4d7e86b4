package cron_fx

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"seraphina/internal/config"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

// Module provides the sweeper. Schedule additionally registers the cron job
// and belongs only in the long-running server.
var Module = fx.Provide(provideExpirySweeper)

var Schedule = fx.Invoke(scheduleSweep)

func provideExpirySweeper(plans repositories.IPlanRepository, investments repositories.InvestmentRepository, log *zap.Logger) *services.ExpirySweeper {
	return services.NewExpirySweeper(plans, investments, log)
}

func scheduleSweep(lc fx.Lifecycle, cfg *config.Config, sweeper *services.ExpirySweeper, log *zap.Logger) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	_, err = c.AddFunc(cfg.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		// Run logs its own outcome
		_, _ = sweeper.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule sweep %q: %w", cfg.SweepSchedule, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			log.Info("expiry sweep scheduled", zap.String("schedule", cfg.SweepSchedule), zap.String("timezone", cfg.Timezone))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-c.Stop().Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}
