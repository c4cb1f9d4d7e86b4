package bank_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

var Module = fx.Provide(provideBankRepo, provideBankService)

func provideBankRepo(db *gorm.DB) repositories.BankRepository {
	return repositories.NewBankRepository(db)
}

func provideBankService(repo repositories.BankRepository) services.BankServiceInterface {
	return services.NewBankService(repo)
}
