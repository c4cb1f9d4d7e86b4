package infra

import (
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

func Models() []interface{} {
	return []interface{}{
		&db_models.User{},
		&db_models.Admin{},
		&db_models.Transaction{},
		&db_models.Plan{},
		&db_models.ServiceOffering{},
		&db_models.PlanPricing{},
		&db_models.InvestmentCategory{},
		&db_models.InvestmentPlan{},
		&db_models.InvestmentPurchase{},
		&db_models.BankName{},
		&db_models.BankAccount{},
		&db_models.Notification{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
