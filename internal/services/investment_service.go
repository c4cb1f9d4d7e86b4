package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type InvestmentServiceInterface interface {
	ListCategories(ctx context.Context) ([]db_models.InvestmentCategory, error)
	CreateCategory(ctx context.Context, req request_models.CategoryRequest) (*db_models.InvestmentCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req request_models.CategoryRequest) (*db_models.InvestmentCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListPlans(ctx context.Context, filter repositories.InvestmentPlanFilter) ([]db_models.InvestmentPlan, error)
	ListActivePlans(ctx context.Context, filter repositories.InvestmentPlanFilter) ([]db_models.InvestmentPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPlan, error)
	CreatePlan(ctx context.Context, req request_models.InvestmentPlanRequest) (*db_models.InvestmentPlan, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req request_models.InvestmentPlanRequest) (*db_models.InvestmentPlan, error)
	SetPlanFlags(ctx context.Context, id uuid.UUID, req request_models.InvestmentFlagsRequest) (*db_models.InvestmentPlan, error)
	DeletePlan(ctx context.Context, id uuid.UUID) error

	Purchase(ctx context.Context, userID uuid.UUID, req request_models.PurchaseRequest) (*db_models.InvestmentPurchase, error)
	ListPurchases(ctx context.Context, userID uuid.UUID) ([]db_models.InvestmentPurchase, error)
	CancelPurchase(ctx context.Context, purchaseID uuid.UUID) (*db_models.InvestmentPurchase, error)
	Performance(ctx context.Context, userID uuid.UUID, rng string) (*resp.Performance, error)
}

type InvestmentService struct {
	db       *gorm.DB
	repo     repositories.InvestmentRepository
	users    repositories.UserRepository
	ledger   repositories.LedgerRepository
	recorder *Ledger
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewInvestmentService(
	db *gorm.DB,
	repo repositories.InvestmentRepository,
	users repositories.UserRepository,
	ledger repositories.LedgerRepository,
	recorder *Ledger,
	notifier Notifier,
	log *zap.Logger,
) InvestmentServiceInterface {
	return &InvestmentService{
		db:       db,
		repo:     repo,
		users:    users,
		ledger:   ledger,
		recorder: recorder,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *InvestmentService) ListCategories(ctx context.Context) ([]db_models.InvestmentCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *InvestmentService) CreateCategory(ctx context.Context, req request_models.CategoryRequest) (*db_models.InvestmentCategory, error) {
	category := &db_models.InvestmentCategory{Name: req.Name, Description: req.Description}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *InvestmentService) UpdateCategory(ctx context.Context, id uuid.UUID, req request_models.CategoryRequest) (*db_models.InvestmentCategory, error) {
	category, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrCategoryExists
		}
		return nil, err
	}
	return category, nil
}

func (s *InvestmentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrCategoryNotFound
	}
	return nil
}

func (s *InvestmentService) ListPlans(ctx context.Context, filter repositories.InvestmentPlanFilter) ([]db_models.InvestmentPlan, error) {
	return s.repo.ListPlans(ctx, filter)
}

func (s *InvestmentService) ListActivePlans(ctx context.Context, filter repositories.InvestmentPlanFilter) ([]db_models.InvestmentPlan, error) {
	filter.Status = db_models.InvestmentPlanActive
	plans, err := s.repo.ListPlans(ctx, filter)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []db_models.InvestmentPlan{}
	}
	return plans, nil
}

func (s *InvestmentService) GetPlan(ctx context.Context, id uuid.UUID) (*db_models.InvestmentPlan, error) {
	plan, err := s.repo.FindPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, utils.ErrInvestmentNotFound
	}
	return plan, nil
}

func (s *InvestmentService) applyPlanRequest(ctx context.Context, plan *db_models.InvestmentPlan, req request_models.InvestmentPlanRequest) error {
	var invalid []string
	if req.MinAmount.IsNegative() {
		invalid = append(invalid, "minAmount")
	}
	if req.DurationMonths < 1 {
		invalid = append(invalid, "durationMonths")
	}
	if _, err := ParseROI(req.ROI); err != nil {
		invalid = append(invalid, "roi")
	}
	risk := db_models.RiskLevel(req.Risk)
	if req.Risk != "" && !risk.Valid() {
		invalid = append(invalid, "risk")
	}
	if len(invalid) > 0 {
		return utils.WithDetails(utils.ErrInvalidField, invalid...)
	}

	if req.CategoryID != nil {
		category, err := s.repo.FindCategory(ctx, *req.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return utils.ErrCategoryNotFound
		}
	}

	plan.CategoryID = req.CategoryID
	plan.Category = nil
	plan.Title = req.Title
	plan.MinAmount = req.MinAmount
	plan.DurationMonths = req.DurationMonths
	plan.ROI = req.ROI
	plan.Risk = risk
	plan.AdditionalInfo = req.AdditionalInfo
	plan.Description = req.Description
	plan.IsPopular = req.IsPopular
	plan.IsFeatured = req.IsFeatured
	return nil
}

func (s *InvestmentService) CreatePlan(ctx context.Context, req request_models.InvestmentPlanRequest) (*db_models.InvestmentPlan, error) {
	plan := &db_models.InvestmentPlan{Status: db_models.InvestmentPlanActive}
	if err := s.applyPlanRequest(ctx, plan, req); err != nil {
		return nil, err
	}
	if err := s.repo.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *InvestmentService) UpdatePlan(ctx context.Context, id uuid.UUID, req request_models.InvestmentPlanRequest) (*db_models.InvestmentPlan, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPlanRequest(ctx, plan, req); err != nil {
		return nil, err
	}
	if err := s.repo.SavePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *InvestmentService) SetPlanFlags(ctx context.Context, id uuid.UUID, req request_models.InvestmentFlagsRequest) (*db_models.InvestmentPlan, error) {
	plan, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsPopular != nil {
		plan.IsPopular = *req.IsPopular
	}
	if req.IsFeatured != nil {
		plan.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		status := db_models.InvestmentPlanStatus(*req.Status)
		if status != db_models.InvestmentPlanActive && status != db_models.InvestmentPlanInactive {
			return nil, utils.WithDetails(utils.ErrInvalidField, "status")
		}
		plan.Status = status
	}
	if err := s.repo.SavePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *InvestmentService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.DeletePlan(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrInvestmentNotFound
	}
	return nil
}

func (s *InvestmentService) Purchase(ctx context.Context, userID uuid.UUID, req request_models.PurchaseRequest) (*db_models.InvestmentPurchase, error) {
	if !req.Amount.IsPositive() {
		return nil, utils.ErrInvalidAmount
	}
	frequency := db_models.PayoutFrequency(req.PayoutFrequency)
	if !frequency.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "payoutFrequency")
	}

	plan, err := s.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.Status != db_models.InvestmentPlanActive {
		return nil, utils.ErrInvestmentPlanInactive
	}
	if req.Amount.LessThan(plan.MinAmount) {
		return nil, utils.WithDetails(utils.ErrBelowMinimumInvestment, "minimum "+formatRupees(plan.MinAmount))
	}

	user, err := s.users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	now := s.now()
	purchase := &db_models.InvestmentPurchase{
		BaseModel:       db_models.BaseModel{ID: uuid.New()},
		UserID:          userID,
		PlanID:          plan.ID,
		Amount:          req.Amount,
		PayoutFrequency: frequency,
		StartDate:       now,
		EndDate:         utils.AddMonths(now, plan.DurationMonths),
		Status:          db_models.PurchaseActive,
	}

	var entry *db_models.Transaction
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		var err error
		entry, err = s.recorder.Record(ctx, s.ledger.WithTx(tx), LedgerEntry{
			UserID:      userID,
			Amount:      req.Amount,
			Type:        db_models.TxnTypeInvestment,
			Description: fmt.Sprintf("Invested %s in %s", formatRupees(req.Amount), plan.Title),
			ReferenceID: &purchase.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	purchase.Plan = plan

	s.notifier.Notify(NotificationEvent{
		UserID: userID,
		Kind:   db_models.NotifyInvestment,
		Title:  "Investment Purchased",
		Body:   fmt.Sprintf("You invested %s in %s for %d months.", formatRupees(req.Amount), plan.Title, plan.DurationMonths),
		Data:   map[string]any{"purchase_id": purchase.ID, "transaction_id": entry.TransactionID},
	})
	return purchase, nil
}

func (s *InvestmentService) ListPurchases(ctx context.Context, userID uuid.UUID) ([]db_models.InvestmentPurchase, error) {
	purchases, err := s.repo.PurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if purchases == nil {
		purchases = []db_models.InvestmentPurchase{}
	}
	return purchases, nil
}

func (s *InvestmentService) CancelPurchase(ctx context.Context, purchaseID uuid.UUID) (*db_models.InvestmentPurchase, error) {
	purchase, err := s.repo.FindPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, utils.ErrPurchaseNotFound
	}

	to, err := NextPurchaseStatus(purchase.Status, PurchaseEventCancel)
	if err != nil {
		return nil, utils.ErrPurchaseNotCancelable
	}
	ok, err := s.repo.TransitionPurchase(ctx, purchase.ID, purchase.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.ErrPurchaseNotCancelable
	}
	purchase.Status = to

	s.notifier.Notify(NotificationEvent{
		UserID: purchase.UserID,
		Kind:   db_models.NotifyInvestment,
		Title:  "Investment Cancelled",
		Body:   fmt.Sprintf("Your investment of %s has been cancelled.", formatRupees(purchase.Amount)),
		Data:   map[string]any{"purchase_id": purchase.ID},
	})
	return purchase, nil
}

func (s *InvestmentService) Performance(ctx context.Context, userID uuid.UUID, rng string) (*resp.Performance, error) {
	r, err := ParsePerformanceRange(rng)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repo.PurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	perf := ComputePerformance(purchases, s.now(), r)
	return &perf, nil
}
