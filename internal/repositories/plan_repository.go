package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
)

type PlanFilter struct {
	Status   db_models.PlanStatus
	Tier     db_models.PlanTier
	Page     int
	PageSize int
}

type IPlanRepository interface {
	WithTx(tx *gorm.DB) IPlanRepository
	Create(ctx context.Context, plan *db_models.Plan) error
	Save(ctx context.Context, plan *db_models.Plan) error
	GetPlanById(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error)
	GetPlansByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error)
	// GetActivePlans returns the user's active plans in creation order.
	GetActivePlans(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error)
	GetActivePlansByTier(ctx context.Context, userID uuid.UUID, tier db_models.PlanTier) ([]db_models.Plan, error)
	CountByTier(ctx context.Context, userID uuid.UUID, tier db_models.PlanTier) (int64, error)
	// HasRenewal reports whether any plan was renewed from sourceID,
	// whatever the source's current status.
	HasRenewal(ctx context.Context, sourceID uuid.UUID) (bool, error)
	// TransitionStatus moves the plan from one status to another only if it
	// still holds the expected status.
	TransitionStatus(ctx context.Context, planID uuid.UUID, from, to db_models.PlanStatus) (bool, error)
	ExpireEnded(ctx context.Context, now time.Time, from []db_models.PlanStatus) (int64, error)
	List(ctx context.Context, filter PlanFilter) ([]db_models.Plan, int64, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

func (p *PlanRepository) WithTx(tx *gorm.DB) IPlanRepository {
	return &PlanRepository{db: tx}
}

func (p *PlanRepository) Create(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Create(plan).Error
}

func (p *PlanRepository) Save(ctx context.Context, plan *db_models.Plan) error {
	return p.db.WithContext(ctx).Save(plan).Error
}

func (p *PlanRepository) GetPlanById(ctx context.Context, planID uuid.UUID) (*db_models.Plan, error) {

	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "id = ?", planID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p *PlanRepository) GetPlansByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error) {

	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error

	return plans, err
}

func (p *PlanRepository) GetActivePlans(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error) {

	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, db_models.PlanStatusActive).
		Order("created_at ASC").
		Find(&plans).Error

	return plans, err
}

func (p *PlanRepository) GetActivePlansByTier(ctx context.Context, userID uuid.UUID, tier db_models.PlanTier) ([]db_models.Plan, error) {

	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("user_id = ? AND service_choice = ? AND status = ?", userID, tier, db_models.PlanStatusActive).
		Order("created_at ASC").
		Find(&plans).Error

	return plans, err
}

func (p *PlanRepository) CountByTier(ctx context.Context, userID uuid.UUID, tier db_models.PlanTier) (int64, error) {
	var n int64
	err := p.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Where("user_id = ? AND service_choice = ?", userID, tier).
		Count(&n).Error
	return n, err
}

func (p *PlanRepository) HasRenewal(ctx context.Context, sourceID uuid.UUID) (bool, error) {
	var n int64
	err := p.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Where("renewed_from_id = ?", sourceID).
		Count(&n).Error
	return n > 0, err
}

func (p *PlanRepository) TransitionStatus(ctx context.Context, planID uuid.UUID, from, to db_models.PlanStatus) (bool, error) {
	res := p.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Where("id = ? AND status = ?", planID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (p *PlanRepository) ExpireEnded(ctx context.Context, now time.Time, from []db_models.PlanStatus) (int64, error) {
	res := p.db.WithContext(ctx).
		Model(&db_models.Plan{}).
		Where("end_date < ? AND status IN ?", now, from).
		Update("status", db_models.PlanStatusExpired)
	return res.RowsAffected, res.Error
}

func (p *PlanRepository) List(ctx context.Context, filter PlanFilter) ([]db_models.Plan, int64, error) {
	q := p.db.WithContext(ctx).Model(&db_models.Plan{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Tier != "" {
		q = q.Where("service_choice = ?", filter.Tier)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var plans []db_models.Plan
	err := q.Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&plans).Error
	return plans, total, err
}
