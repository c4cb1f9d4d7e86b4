package plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

var Module = fx.Provide(
	provideCatalogRepo, provideCatalogService,
	providePlanRepo, providePlanService,
)

func provideCatalogRepo(db *gorm.DB) repositories.CatalogRepository {
	return repositories.NewCatalogRepository(db)
}

func provideCatalogService(repo repositories.CatalogRepository) services.CatalogServiceInterface {
	return services.NewCatalogService(repo)
}

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(
	db *gorm.DB,
	users repositories.UserRepository,
	plans repositories.IPlanRepository,
	ledger repositories.LedgerRepository,
	recorder *services.Ledger,
	catalog services.CatalogServiceInterface,
	notifier services.Notifier,
	log *zap.Logger,
) services.PlanServiceInterface {
	return services.NewPlanService(db, users, plans, ledger, recorder, catalog, notifier, log)
}
