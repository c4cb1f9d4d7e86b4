package controllers_fx

import (
	"go.uber.org/fx"

	"seraphina/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewProfileController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewWalletController),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewCatalogController),
	fx.Provide(controllers.NewInvestmentController),
	fx.Provide(controllers.NewBankController),
	fx.Provide(controllers.NewNotificationController),
)
