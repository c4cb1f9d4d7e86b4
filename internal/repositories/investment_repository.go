package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

type InvestmentPlanFilter struct {
	Status     db_models.InvestmentPlanStatus
	CategoryID *uuid.UUID
	Popular    bool
	Featured   bool
}

type InvestmentRepository interface {
	WithTx(tx *gorm.DB) InvestmentRepository

	ListCategories(ctx context.Context) ([]db_models.InvestmentCategory, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*db_models.InvestmentCategory, error)
	CreateCategory(ctx context.Context, category *db_models.InvestmentCategory) error
	SaveCategory(ctx context.Context, category *db_models.InvestmentCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error)

	ListPlans(ctx context.Context, filter InvestmentPlanFilter) ([]db_models.InvestmentPlan, error)
	FindPlan(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPlan, error)
	CreatePlan(ctx context.Context, plan *db_models.InvestmentPlan) error
	SavePlan(ctx context.Context, plan *db_models.InvestmentPlan) error
	DeletePlan(ctx context.Context, id uuid.UUID) (bool, error)

	CreatePurchase(ctx context.Context, purchase *db_models.InvestmentPurchase) error
	FindPurchase(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPurchase, error)
	// PurchasesByUser preloads each purchase's plan, newest first.
	PurchasesByUser(ctx context.Context, userID uuid.UUID) ([]db_models.InvestmentPurchase, error)
	TransitionPurchase(ctx context.Context, id uuid.UUID, from, to db_models.PurchaseStatus) (bool, error)
	MatureEnded(ctx context.Context, now time.Time) (int64, error)
}

type investmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) WithTx(tx *gorm.DB) InvestmentRepository {
	return &investmentRepository{db: tx}
}

func (r *investmentRepository) ListCategories(ctx context.Context) ([]db_models.InvestmentCategory, error) {
	var categories []db_models.InvestmentCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *investmentRepository) FindCategory(ctx context.Context, id uuid.UUID) (*db_models.InvestmentCategory, error) {
	var category db_models.InvestmentCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *investmentRepository) CreateCategory(ctx context.Context, category *db_models.InvestmentCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *investmentRepository) SaveCategory(ctx context.Context, category *db_models.InvestmentCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *investmentRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.InvestmentCategory{}, "id = ?", id)
	return res.RowsAffected == 1, res.Error
}

func (r *investmentRepository) ListPlans(ctx context.Context, filter InvestmentPlanFilter) ([]db_models.InvestmentPlan, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Popular {
		q = q.Where("is_popular = ?", true)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}

	var plans []db_models.InvestmentPlan
	err := q.Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *investmentRepository) FindPlan(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPlan, error) {
	var plan db_models.InvestmentPlan
	err := r.db.WithContext(ctx).Preload("Category").First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *investmentRepository) CreatePlan(ctx context.Context, plan *db_models.InvestmentPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *investmentRepository) SavePlan(ctx context.Context, plan *db_models.InvestmentPlan) error {
	return r.db.WithContext(ctx).Omit("Category").Save(plan).Error
}

func (r *investmentRepository) DeletePlan(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.InvestmentPlan{}, "id = ?", id)
	return res.RowsAffected == 1, res.Error
}

func (r *investmentRepository) CreatePurchase(ctx context.Context, purchase *db_models.InvestmentPurchase) error {
	return r.db.WithContext(ctx).Omit("Plan").Create(purchase).Error
}

func (r *investmentRepository) FindPurchase(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPurchase, error) {
	var purchase db_models.InvestmentPurchase
	err := r.db.WithContext(ctx).Preload("Plan").First(&purchase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &purchase, nil
}

func (r *investmentRepository) PurchasesByUser(ctx context.Context, userID uuid.UUID) ([]db_models.InvestmentPurchase, error) {
	var purchases []db_models.InvestmentPurchase
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

func (r *investmentRepository) TransitionPurchase(ctx context.Context, id uuid.UUID, from, to db_models.PurchaseStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.InvestmentPurchase{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}

func (r *investmentRepository) MatureEnded(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.InvestmentPurchase{}).
		Where("end_date < ? AND status = ?", now, db_models.PurchaseActive).
		Update("status", db_models.PurchaseMatured)
	return res.RowsAffected, res.Error
}
