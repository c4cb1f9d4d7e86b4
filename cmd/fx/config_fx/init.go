package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"seraphina/internal/config"
)

var Module = fx.Provide(config.Load, provideLogger)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsDevelopment() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
