package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

type BankRepository interface {
	ListBankNames(ctx context.Context) ([]db_models.BankName, error)
	FindBankName(ctx context.Context, id uuid.UUID) (*db_models.BankName, error)
	CreateBankName(ctx context.Context, bank *db_models.BankName) error
	SaveBankName(ctx context.Context, bank *db_models.BankName) error
	DeleteBankName(ctx context.Context, id uuid.UUID) (bool, error)

	FindAccountByUser(ctx context.Context, userID uuid.UUID) (*db_models.BankAccount, error)
	CreateAccount(ctx context.Context, account *db_models.BankAccount) error
	SaveAccount(ctx context.Context, account *db_models.BankAccount) error
}

type bankRepository struct {
	db *gorm.DB
}

func NewBankRepository(db *gorm.DB) BankRepository {
	return &bankRepository{db: db}
}

func (r *bankRepository) ListBankNames(ctx context.Context) ([]db_models.BankName, error) {
	var banks []db_models.BankName
	err := r.db.WithContext(ctx).Order("name ASC").Find(&banks).Error
	return banks, err
}

func (r *bankRepository) FindBankName(ctx context.Context, id uuid.UUID) (*db_models.BankName, error) {
	var bank db_models.BankName
	err := r.db.WithContext(ctx).First(&bank, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepository) CreateBankName(ctx context.Context, bank *db_models.BankName) error {
	return r.db.WithContext(ctx).Create(bank).Error
}

func (r *bankRepository) SaveBankName(ctx context.Context, bank *db_models.BankName) error {
	return r.db.WithContext(ctx).Save(bank).Error
}

func (r *bankRepository) DeleteBankName(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.BankName{}, "id = ?", id)
	return res.RowsAffected == 1, res.Error
}

func (r *bankRepository) FindAccountByUser(ctx context.Context, userID uuid.UUID) (*db_models.BankAccount, error) {
	var account db_models.BankAccount
	err := r.db.WithContext(ctx).Preload("BankName").First(&account, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *bankRepository) CreateAccount(ctx context.Context, account *db_models.BankAccount) error {
	return r.db.WithContext(ctx).Omit("BankName").Create(account).Error
}

func (r *bankRepository) SaveAccount(ctx context.Context, account *db_models.BankAccount) error {
	return r.db.WithContext(ctx).Omit("BankName").Save(account).Error
}
