package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seraphina/internal/models/db_models"
)

type UserFilter struct {
	Search       string
	Verification db_models.VerificationStatus
	Page         int
	PageSize     int
}

type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *db_models.User) error
	Save(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	FindByPhone(ctx context.Context, phone string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	// LockById takes a row lock on the user for the rest of the transaction.
	LockById(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	List(ctx context.Context, filter UserFilter) ([]db_models.User, int64, error)

	CreditWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	DebitWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(ctx context.Context, user *db_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Save(ctx context.Context, user *db_models.User) error {
	// wallet is only ever changed through CreditWallet/DebitWallet
	return r.db.WithContext(ctx).Omit("Wallet").Save(user).Error
}

func (r *userRepository) first(ctx context.Context, query *gorm.DB) (*db_models.User, error) {
	var user db_models.User
	err := query.WithContext(ctx).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.first(ctx, r.db.Where("id = ?", id))
}

func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*db_models.User, error) {
	return r.first(ctx, r.db.Where("phone = ?", phone))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.first(ctx, r.db.Where("email = ?", email))
}

func (r *userRepository) LockById(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	return r.first(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]db_models.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&db_models.User{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like, like)
	}
	if filter.Verification != "" {
		q = q.Where("admin_verified = ?", filter.Verification)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []db_models.User
	err := q.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&users).Error
	return users, total, err
}

// CreditWallet adds amount in a single UPDATE. It reports false when the
// user does not exist.
func (r *userRepository) CreditWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("wallet", gorm.Expr("wallet + ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DebitWallet subtracts amount only while the balance covers it, so two
// concurrent debits can never drive the wallet negative.
func (r *userRepository) DebitWallet(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND wallet >= ?", id, amount).
		Update("wallet", gorm.Expr("wallet - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) Balance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Select("id", "wallet").Where("id = ?", id).First(&user).Error
	if err != nil {
		return decimal.Zero, err
	}
	return user.Wallet, nil
}
