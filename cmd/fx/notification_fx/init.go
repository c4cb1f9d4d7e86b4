package notification_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/config"
	"seraphina/internal/infra"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
	"seraphina/pkg/realtime"
)

var Module = fx.Provide(
	provideNotificationRepo,
	provideHub,
	provideKafkaPublisher,
	provideDispatcher,
	provideNotifier,
	provideNotificationService,
)

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideHub(log *zap.Logger) *realtime.Hub {
	return realtime.NewHub(log)
}

// provideKafkaPublisher returns nil when KAFKA_BROKERS is unset.
func provideKafkaPublisher(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *infra.KafkaPublisher {
	pub := infra.NewKafkaPublisher(cfg)
	if pub == nil {
		log.Info("KAFKA_BROKERS not set, notification events are not published")
		return nil
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return pub.Close()
		},
	})
	return pub
}

func provideDispatcher(
	lc fx.Lifecycle,
	cfg *config.Config,
	repo repositories.NotificationRepository,
	users repositories.UserRepository,
	hub *realtime.Hub,
	pub *infra.KafkaPublisher,
	mailer services.IMailService,
	log *zap.Logger,
) *services.NotificationDispatcher {
	d := services.NewNotificationDispatcher(repo, users, log, cfg.NotificationQueueSize).
		WithPusher(hub)
	// a typed nil would defeat the dispatcher's nil checks
	if pub != nil {
		d.WithPublisher(pub)
	}
	if mailer != nil {
		d.WithMailer(mailer)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}

func provideNotifier(d *services.NotificationDispatcher) services.Notifier {
	return d
}

func provideNotificationService(d *services.NotificationDispatcher) services.NotificationServiceInterface {
	return d
}
