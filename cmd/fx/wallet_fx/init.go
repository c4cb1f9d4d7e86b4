package wallet_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

var Module = fx.Provide(
	provideLedgerRepo, services.NewLedger, provideWalletService,
)

func provideLedgerRepo(db *gorm.DB) repositories.LedgerRepository {
	return repositories.NewLedgerRepository(db)
}

func provideWalletService(
	db *gorm.DB,
	users repositories.UserRepository,
	ledger repositories.LedgerRepository,
	recorder *services.Ledger,
	notifier services.Notifier,
) services.WalletServiceInterface {
	return services.NewWalletService(db, users, ledger, recorder, notifier)
}
