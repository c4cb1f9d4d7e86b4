package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"seraphina/internal/api/controllers"
	"seraphina/internal/config"
	"seraphina/pkg/middleware"
	"seraphina/pkg/storage"
	"seraphina/pkg/utils"
)

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type Controllers struct {
	fx.In

	Account      *controllers.AccountController
	Profile      *controllers.ProfileController
	Admin        *controllers.AdminController
	Wallet       *controllers.WalletController
	Plan         *controllers.PlanController
	Catalog      *controllers.CatalogController
	Investment   *controllers.InvestmentController
	Bank         *controllers.BankController
	Notification *controllers.NotificationController
	Dashboard    *controllers.DashboardController
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	tokens *utils.TokenManager,
	uploads *storage.LocalFileStore,
	ctrls Controllers,
) (*gin.Engine, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	enforcer, err := middleware.NewEnforcer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", uploads.Root())

	RegisterRoutes(r, enforcer, tokens, ctrls)

	return r, nil
}

func RegisterRoutes(r *gin.Engine, enforcer *casbin.Enforcer, tokens *utils.TokenManager, ctrls Controllers) {
	auth := []gin.HandlerFunc{
		middleware.JWTAuthMiddleware(tokens),
		middleware.CasbinMiddleware(enforcer),
	}

	public := r.Group("/api/user")
	{
		public.POST("/auth/otp", ctrls.Account.GenerateOtp)
		public.POST("/auth/otp/verify", ctrls.Account.VerifyOtp)
		public.POST("/auth/otp/resend", ctrls.Account.ResendOtp)
		public.POST("/auth/register", ctrls.Account.Register)

		public.GET("/catalog/services", ctrls.Catalog.ListOfferings)
		public.GET("/catalog/pricing", ctrls.Catalog.GetPricing)
		public.GET("/catalog/quote", ctrls.Catalog.Quote)

		public.GET("/investments/plans", ctrls.Investment.ListActivePlans)
		public.GET("/investments/plans/:id", ctrls.Investment.GetPlan)
		public.GET("/investments/categories", ctrls.Investment.ListCategories)

		public.GET("/banks", ctrls.Bank.ListBankNames)
	}

	user := r.Group("/api/user", auth...)
	{
		user.GET("/profile", ctrls.Profile.GetProfile)
		user.PUT("/profile", ctrls.Profile.UpdateProfile)
		user.PUT("/profile/image", ctrls.Profile.UpdateProfileImage)

		user.GET("/wallet", ctrls.Wallet.GetWallet)
		user.GET("/wallet/transactions", ctrls.Wallet.GetTransactions)
		user.POST("/wallet/add", ctrls.Wallet.AddMoney)
		user.POST("/wallet/withdraw", ctrls.Wallet.Withdraw)

		user.POST("/bank-account", ctrls.Bank.LinkBankAccount)
		user.GET("/bank-account", ctrls.Bank.GetBankAccount)
		user.PUT("/bank-account", ctrls.Bank.UpdateBankAccount)

		user.POST("/plans", ctrls.Plan.CreatePlans)
		user.GET("/plans", ctrls.Plan.GetPlans)
		user.GET("/plans/active", ctrls.Plan.GetActivePlans)
		user.GET("/plans/status", ctrls.Plan.GetPlanStatus)
		user.POST("/plans/:id/upgrade", ctrls.Plan.UpgradePlan)
		user.POST("/plans/:id/renew", ctrls.Plan.RenewPlan)

		user.POST("/investments/purchases", ctrls.Investment.Purchase)
		user.GET("/investments/purchases", ctrls.Investment.ListPurchases)
		user.GET("/investments/performance", ctrls.Investment.Performance)

		user.GET("/notifications", ctrls.Notification.ListNotifications)
		user.PATCH("/notifications/:id/read", ctrls.Notification.MarkRead)
		user.GET("/notifications/ws", ctrls.Notification.Stream)
	}

	r.POST("/api/admin/auth/login", ctrls.Account.AdminLogin)

	admin := r.Group("/api/admin", auth...)
	{
		admin.GET("/users", ctrls.Admin.ListUsers)
		admin.GET("/users/:id", ctrls.Admin.GetUser)
		admin.PATCH("/users/:id/verification", ctrls.Admin.SetVerification)

		admin.POST("/catalog/services", ctrls.Catalog.CreateOffering)
		admin.PUT("/catalog/services/:id", ctrls.Catalog.UpdateOffering)
		admin.DELETE("/catalog/services/:id", ctrls.Catalog.DeleteOffering)
		admin.PUT("/catalog/pricing", ctrls.Catalog.UpsertPricing)

		admin.GET("/investments/categories", ctrls.Investment.ListCategories)
		admin.POST("/investments/categories", ctrls.Investment.CreateCategory)
		admin.PUT("/investments/categories/:id", ctrls.Investment.UpdateCategory)
		admin.DELETE("/investments/categories/:id", ctrls.Investment.DeleteCategory)
		admin.GET("/investments/plans", ctrls.Investment.ListPlans)
		admin.POST("/investments/plans", ctrls.Investment.CreatePlan)
		admin.PUT("/investments/plans/:id", ctrls.Investment.UpdatePlan)
		admin.PATCH("/investments/plans/:id/flags", ctrls.Investment.SetPlanFlags)
		admin.DELETE("/investments/plans/:id", ctrls.Investment.DeletePlan)
		admin.POST("/investments/purchases/:id/cancel", ctrls.Investment.CancelPurchase)

		admin.GET("/banks", ctrls.Bank.ListBankNames)
		admin.POST("/banks", ctrls.Bank.CreateBankName)
		admin.PUT("/banks/:id", ctrls.Bank.UpdateBankName)
		admin.DELETE("/banks/:id", ctrls.Bank.DeleteBankName)

		admin.GET("/plans", ctrls.Plan.ListPlans)
		admin.GET("/dashboard", ctrls.Dashboard.GetDashboard)
	}
}
