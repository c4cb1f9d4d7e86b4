package dashboard_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"seraphina/internal/api/controllers"
	"seraphina/internal/config"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
)

var Module = fx.Provide(
	provideDashboardRepo, provideDashboardService, provideDashboardController,
)

func provideDashboardRepo(db *gorm.DB) repositories.DashboardRepository {
	return repositories.NewDashboardRepository(db)
}

func provideDashboardService(repo repositories.DashboardRepository) services.DashboardService {
	return services.NewDashboardService(repo)
}

// The controller needs the configured timezone as its default bucket zone,
// so it is provided here rather than in controllers_fx.
func provideDashboardController(svc services.DashboardService, cfg *config.Config) *controllers.DashboardController {
	return controllers.NewDashboardController(svc, cfg.Timezone)
}
