package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/config"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
	mem "seraphina/pkg/memcache"
	"seraphina/pkg/storage"
	"seraphina/pkg/utils"
)

var Module = fx.Provide(
	provideUserRepo, provideAdminRepo,
	provideTokenManager, provideSMSSender,
	provideLocalFileStore, provideFileStore,
	provideAuthService, provideUserService,
)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideAdminRepo(db *gorm.DB) repositories.AdminRepository {
	return repositories.NewAdminRepository(db)
}

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
}

func provideSMSSender(cfg *config.Config, log *zap.Logger) services.SMSSender {
	return services.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
}

func provideLocalFileStore(cfg *config.Config) (*storage.LocalFileStore, error) {
	return storage.NewLocalFileStore(cfg.UploadDir, cfg.UploadMaxBytes)
}

func provideFileStore(store *storage.LocalFileStore) storage.FileStore {
	return store
}

func provideAuthService(
	users repositories.UserRepository,
	admins repositories.AdminRepository,
	otps mem.OTPStore,
	sms services.SMSSender,
	tokens *utils.TokenManager,
	store storage.FileStore,
	notifier services.Notifier,
	cfg *config.Config,
	log *zap.Logger,
) services.AuthServiceInterface {
	return services.NewAuthService(users, admins, otps, sms, tokens, store, notifier, services.OTPConfig{
		Length:       cfg.OTPLength,
		TTL:          cfg.OTPTTL,
		MaxAttempts:  cfg.OTPMaxAttempts,
		ResendWindow: cfg.OTPResendWindow,
		ExposeCode:   cfg.OTPExposeCode,
	}, log)
}

func provideUserService(users repositories.UserRepository, store storage.FileStore, notifier services.Notifier, log *zap.Logger) services.UserServiceInterface {
	return services.NewUserService(users, store, notifier, log)
}
