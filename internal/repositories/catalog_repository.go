package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository
	ListOfferings(ctx context.Context, tier db_models.PlanTier) ([]db_models.ServiceOffering, error)
	FindOffering(ctx context.Context, id uuid.UUID) (*db_models.ServiceOffering, error)
	// ExistingOfferingIDs returns the subset of ids that belong to tier.
	ExistingOfferingIDs(ctx context.Context, tier db_models.PlanTier, ids []string) ([]string, error)
	CreateOffering(ctx context.Context, offering *db_models.ServiceOffering) error
	SaveOffering(ctx context.Context, offering *db_models.ServiceOffering) error
	DeleteOffering(ctx context.Context, id uuid.UUID) (bool, error)

	GetPricing(ctx context.Context) (*db_models.PlanPricing, error)
	SavePricing(ctx context.Context, pricing *db_models.PlanPricing) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	return &catalogRepository{db: tx}
}

func (r *catalogRepository) ListOfferings(ctx context.Context, tier db_models.PlanTier) ([]db_models.ServiceOffering, error) {
	var offerings []db_models.ServiceOffering
	q := r.db.WithContext(ctx)
	if tier != "" {
		q = q.Where("tier = ?", tier)
	}
	err := q.Order("name ASC").Find(&offerings).Error
	return offerings, err
}

func (r *catalogRepository) FindOffering(ctx context.Context, id uuid.UUID) (*db_models.ServiceOffering, error) {
	var offering db_models.ServiceOffering
	err := r.db.WithContext(ctx).First(&offering, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offering, nil
}

func (r *catalogRepository) ExistingOfferingIDs(ctx context.Context, tier db_models.PlanTier, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&db_models.ServiceOffering{}).
		Where("tier = ? AND id IN ?", tier, ids).
		Pluck("id", &found).Error
	return found, err
}

func (r *catalogRepository) CreateOffering(ctx context.Context, offering *db_models.ServiceOffering) error {
	return r.db.WithContext(ctx).Create(offering).Error
}

func (r *catalogRepository) SaveOffering(ctx context.Context, offering *db_models.ServiceOffering) error {
	return r.db.WithContext(ctx).Save(offering).Error
}

func (r *catalogRepository) DeleteOffering(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.ServiceOffering{}, "id = ?", id)
	return res.RowsAffected == 1, res.Error
}

func (r *catalogRepository) GetPricing(ctx context.Context) (*db_models.PlanPricing, error) {
	var pricing db_models.PlanPricing
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&pricing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pricing, nil
}

func (r *catalogRepository) SavePricing(ctx context.Context, pricing *db_models.PlanPricing) error {
	return r.db.WithContext(ctx).Save(pricing).Error
}
