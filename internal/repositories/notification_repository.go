package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *db_models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *db_models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Notification{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []db_models.Notification
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	return items, total, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected == 1, res.Error
}
