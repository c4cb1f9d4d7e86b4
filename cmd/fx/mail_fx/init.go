package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"seraphina/internal/config"
	"seraphina/internal/services"
)

var Module = fx.Provide(provideMailService)

// provideMailService returns nil when SMTP is not configured; the
// notification dispatcher then skips the email channel.
func provideMailService(cfg *config.Config, log *zap.Logger) services.IMailService {
	smtpCfg := services.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: "Seraphina",
		AppName:  "Seraphina",
	}
	if !smtpCfg.Enabled() {
		log.Info("SMTP not configured, email notifications disabled")
		return nil
	}
	return services.NewSMTPMailService(smtpCfg)
}
