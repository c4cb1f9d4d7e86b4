package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/pkg/utils"
)

type LedgerRepository interface {
	WithTx(tx *gorm.DB) LedgerRepository
	// Insert writes the entry inside a savepoint so a duplicate transaction id
	// can be retried without aborting the caller's transaction.
	Insert(ctx context.Context, entry *db_models.Transaction) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Transaction, error)
	PageByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Transaction, int64, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*db_models.Transaction, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Insert(ctx context.Context, entry *db_models.Transaction) error {
	err := r.db.WithContext(ctx).Transaction(func(sp *gorm.DB) error {
		return sp.Create(entry).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicateTransactionID
	}
	return err
}

func (r *ledgerRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Transaction, error) {
	var entries []db_models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *ledgerRepository) PageByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]db_models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []db_models.Transaction
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepository) FindByTransactionID(ctx context.Context, transactionID string) (*db_models.Transaction, error) {
	var entry db_models.Transaction
	err := r.db.WithContext(ctx).First(&entry, "transaction_id = ?", transactionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}
