package investment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

var Module = fx.Provide(provideInvestmentRepo, provideInvestmentService)

func provideInvestmentRepo(db *gorm.DB) repositories.InvestmentRepository {
	return repositories.NewInvestmentRepository(db)
}

func provideInvestmentService(
	db *gorm.DB,
	repo repositories.InvestmentRepository,
	users repositories.UserRepository,
	ledger repositories.LedgerRepository,
	recorder *services.Ledger,
	notifier services.Notifier,
	log *zap.Logger,
) services.InvestmentServiceInterface {
	return services.NewInvestmentService(db, repo, users, ledger, recorder, notifier, log)
}
