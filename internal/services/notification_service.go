package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"seraphina/internal/models/db_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

var (
	notificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seraphina_notifications_delivered_total",
			Help: "Notifications delivered, by channel",
		},
		[]string{"channel"},
	)
	notificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seraphina_notifications_dropped_total",
		Help: "Notifications dropped because the queue was full or closed",
	})
)

type NotificationEvent struct {
	UserID uuid.UUID
	Kind   db_models.NotificationKind
	Title  string
	Body   string
	Data   map[string]any
}

// Notifier accepts notifications without blocking the caller. Delivery is
// best effort.
type Notifier interface {
	Notify(ev NotificationEvent)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

type RealtimePusher interface {
	Send(userID string, payload any) int
}

type NotificationServiceInterface interface {
	Notifier
	ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.Page[db_models.Notification], error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type NotificationDispatcher struct {
	repo      repositories.NotificationRepository
	users     repositories.UserRepository
	pusher    RealtimePusher
	publisher EventPublisher
	mailer    IMailService
	log       *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan NotificationEvent
	wg     sync.WaitGroup
}

func NewNotificationDispatcher(
	repo repositories.NotificationRepository,
	users repositories.UserRepository,
	log *zap.Logger,
	queueSize int,
) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &NotificationDispatcher{
		repo:  repo,
		users: users,
		log:   log,
		queue: make(chan NotificationEvent, queueSize),
	}
}

func (d *NotificationDispatcher) WithPusher(p RealtimePusher) *NotificationDispatcher {
	d.pusher = p
	return d
}

func (d *NotificationDispatcher) WithPublisher(p EventPublisher) *NotificationDispatcher {
	d.publisher = p
	return d
}

func (d *NotificationDispatcher) WithMailer(m IMailService) *NotificationDispatcher {
	d.mailer = m
	return d
}

func (d *NotificationDispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.queue {
			d.deliver(ev)
		}
	}()
}

// Stop refuses new events and waits for the queue to drain or ctx to end.
func (d *NotificationDispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *NotificationDispatcher) Notify(ev NotificationEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		notificationsDropped.Inc()
		d.log.Warn("notification dropped, dispatcher stopped", zap.String("user_id", ev.UserID.String()))
		return
	}
	select {
	case d.queue <- ev:
	default:
		notificationsDropped.Inc()
		d.log.Warn("notification dropped, queue full",
			zap.String("user_id", ev.UserID.String()),
			zap.String("title", ev.Title))
	}
}

func (d *NotificationDispatcher) deliver(ev NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	n := &db_models.Notification{
		UserID: ev.UserID,
		Title:  ev.Title,
		Body:   ev.Body,
		Kind:   ev.Kind,
	}
	if len(ev.Data) > 0 {
		if raw, err := json.Marshal(ev.Data); err == nil {
			n.Data = datatypes.JSON(raw)
		}
	}

	err := utils.Retry(ctx, 3, 50*time.Millisecond, func() error {
		return d.repo.Create(ctx, n)
	})
	if err != nil {
		d.log.Error("persist notification", zap.String("user_id", ev.UserID.String()), zap.Error(err))
	} else {
		notificationsDelivered.WithLabelValues("db").Inc()
	}

	if d.pusher != nil && d.pusher.Send(ev.UserID.String(), n) > 0 {
		notificationsDelivered.WithLabelValues("websocket").Inc()
	}

	if d.publisher != nil {
		payload := map[string]any{
			"user_id": ev.UserID,
			"kind":    ev.Kind,
			"title":   ev.Title,
			"body":    ev.Body,
			"data":    ev.Data,
			"sent_at": time.Now().UTC(),
		}
		if err := d.publisher.Publish(ctx, ev.UserID.String(), payload); err != nil {
			d.log.Warn("publish notification event", zap.Error(err))
		} else {
			notificationsDelivered.WithLabelValues("kafka").Inc()
		}
	}

	if d.mailer != nil {
		user, err := d.users.FindById(ctx, ev.UserID)
		if err != nil {
			d.log.Warn("load user for notification email", zap.Error(err))
			return
		}
		if user == nil || user.Email == nil || *user.Email == "" {
			return
		}
		if err := d.mailer.SendNotification(*user.Email, ev.Title, ev.Body); err != nil {
			d.log.Warn("send notification email", zap.String("user_id", ev.UserID.String()), zap.Error(err))
			return
		}
		notificationsDelivered.WithLabelValues("email").Inc()
	}
}

func (d *NotificationDispatcher) ListForUser(ctx context.Context, userID uuid.UUID, page, pageSize int) (*resp.Page[db_models.Notification], error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	items, total, err := d.repo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &resp.Page[db_models.Notification]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (d *NotificationDispatcher) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := d.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}

func validatePage(page, pageSize int) error {
	if page < 1 {
		return utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return utils.ErrInvalidPageSize
	}
	return nil
}
