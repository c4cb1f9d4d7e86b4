package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	resp "seraphina/internal/models/response_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

// renewalMonths is fixed and independent of the catalog.
const renewalMonths = 6

type PlanServiceInterface interface {
	CreatePlans(ctx context.Context, userID uuid.UUID, reqs []request_models.CreatePlanRequest) ([]db_models.Plan, error)
	UpgradePlan(ctx context.Context, userID, planID uuid.UUID, req request_models.UpgradePlanRequest) (*db_models.Plan, error)
	RenewPlan(ctx context.Context, userID, planID uuid.UUID) (*resp.RenewalResult, error)
	GetPlansByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error)
	GetActivePlansForUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error)
	GetPlanStatus(ctx context.Context, userID uuid.UUID) (*resp.PlanStatusResponse, error)
	ListPlans(ctx context.Context, filter repositories.PlanFilter) (*resp.Page[db_models.Plan], error)
}

type PlanService struct {
	db       *gorm.DB
	users    repositories.UserRepository
	planRepo repositories.IPlanRepository
	ledger   repositories.LedgerRepository
	recorder *Ledger
	catalog  CatalogServiceInterface
	notifier Notifier
	log      *zap.Logger
}

func NewPlanService(
	db *gorm.DB,
	users repositories.UserRepository,
	planRepo repositories.IPlanRepository,
	ledger repositories.LedgerRepository,
	recorder *Ledger,
	catalog CatalogServiceInterface,
	notifier Notifier,
	log *zap.Logger,
) PlanServiceInterface {
	return &PlanService{
		db:       db,
		users:    users,
		planRepo: planRepo,
		ledger:   ledger,
		recorder: recorder,
		catalog:  catalog,
		notifier: notifier,
		log:      log,
	}
}

// txRepos binds the repositories used by plan mutations to one transaction.
type txRepos struct {
	users  repositories.UserRepository
	plans  repositories.IPlanRepository
	ledger repositories.LedgerRepository
}

func (p *PlanService) inUserTx(ctx context.Context, userID uuid.UUID, fn func(r txRepos) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos{
			users:  p.users.WithTx(tx),
			plans:  p.planRepo.WithTx(tx),
			ledger: p.ledger.WithTx(tx),
		}
		// every plan mutation of a user queues behind this row lock
		user, err := r.users.LockById(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return utils.ErrUserNotFound
		}
		return fn(r)
	})
}

func (p *PlanService) CreatePlans(ctx context.Context, userID uuid.UUID, reqs []request_models.CreatePlanRequest) ([]db_models.Plan, error) {
	if len(reqs) == 0 {
		return nil, utils.WithDetails(utils.ErrMissingFields, "plans")
	}

	drafts := make([]*db_models.Plan, 0, len(reqs))
	for i, req := range reqs {
		draft, err := p.validatePlanRequest(ctx, userID, req)
		if err != nil {
			return nil, &utils.BatchError{Index: i, Err: err}
		}
		drafts = append(drafts, draft)
	}

	var events []NotificationEvent
	err := p.inUserTx(ctx, userID, func(r txRepos) error {
		for i, plan := range drafts {
			ev, err := p.createOne(ctx, r, plan)
			if err != nil {
				return &utils.BatchError{Index: i, Err: err}
			}
			if ev != nil {
				events = append(events, *ev)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		p.notifier.Notify(ev)
	}

	created := make([]db_models.Plan, 0, len(drafts))
	for _, plan := range drafts {
		created = append(created, *plan)
	}
	return created, nil
}

func (p *PlanService) validatePlanRequest(ctx context.Context, userID uuid.UUID, req request_models.CreatePlanRequest) (*db_models.Plan, error) {
	var missing []string
	if req.DeliveryPreference == "" {
		missing = append(missing, "deliveryPreference")
	}
	if req.ServiceChoice == "" {
		missing = append(missing, "serviceChoice")
	}
	if req.StartDate == nil || req.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if req.EndDate == nil || req.EndDate.IsZero() {
		missing = append(missing, "endDate")
	}
	if len(missing) > 0 {
		return nil, utils.WithDetails(utils.ErrMissingFields, missing...)
	}

	delivery := db_models.DeliveryPreference(req.DeliveryPreference)
	if !delivery.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "deliveryPreference")
	}
	tier := db_models.PlanTier(req.ServiceChoice)
	if !tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "serviceChoice")
	}
	start, end := req.StartDate.UTC(), req.EndDate.UTC()
	if !end.After(start) {
		return nil, utils.WithDetails(utils.ErrInvalidField, "endDate")
	}

	price := decimal.Zero
	if req.TotalPrice != nil {
		price = *req.TotalPrice
	}
	if price.IsNegative() || (tier == db_models.TierFree && price.IsPositive()) {
		return nil, utils.WithDetails(utils.ErrInvalidField, "totalPrice")
	}

	plan := &db_models.Plan{
		UserID:             userID,
		DeliveryPreference: delivery,
		ServiceChoice:      tier,
		StartDate:          start,
		EndDate:            end,
		Status:             db_models.PlanStatusActive,
		TotalPrice:         price,
	}
	selections := map[db_models.PlanTier][]string{
		db_models.TierFree:          req.FreeOfferings,
		db_models.TierIndividual:    req.IndividualBusinessServices,
		db_models.TierBusiness:      req.BusinessServices,
		db_models.TierInstitutional: req.InstitutionalServices,
	}
	if err := p.validateSelections(ctx, selections); err != nil {
		return nil, err
	}
	mergeSelections(plan, selections)
	return plan, nil
}

func (p *PlanService) validateSelections(ctx context.Context, selections map[db_models.PlanTier][]string) error {
	for _, tier := range db_models.AllTiers {
		if err := p.catalog.ValidateServiceIDs(ctx, tier, selections[tier]); err != nil {
			return err
		}
	}
	return nil
}

// mergeSelections stores validated ids on plan in canonical form, keeping
// what the plan already holds.
func mergeSelections(plan *db_models.Plan, selections map[db_models.PlanTier][]string) {
	for _, tier := range db_models.AllTiers {
		merged := unionIDs(plan.ServicesFor(tier), canonicalIDs(selections[tier]))
		plan.SetServicesFor(tier, merged)
	}
}

func (p *PlanService) createOne(ctx context.Context, r txRepos, plan *db_models.Plan) (*NotificationEvent, error) {
	tier := plan.ServiceChoice

	if tier == db_models.TierFree {
		used, err := r.plans.CountByTier(ctx, plan.UserID, db_models.TierFree)
		if err != nil {
			return nil, err
		}
		if used > 0 {
			return nil, utils.ErrFreePlanAlreadyUsed
		}
	} else {
		if err := p.checkDuplicateServices(ctx, r, plan.UserID, tier, plan.ServicesFor(tier), uuid.Nil); err != nil {
			return nil, err
		}
	}

	plan.ID = uuid.New()

	var ev *NotificationEvent
	if plan.TotalPrice.IsPositive() {
		entry, err := p.recorder.Record(ctx, r.ledger, LedgerEntry{
			UserID:      plan.UserID,
			Amount:      plan.TotalPrice,
			Type:        db_models.TxnTypePlanPurchase,
			Description: fmt.Sprintf("Purchased %s plan for %s", tier, formatRupees(plan.TotalPrice)),
			ReferenceID: &plan.ID,
		})
		if err != nil {
			return nil, err
		}
		ev = &NotificationEvent{
			UserID: plan.UserID,
			Kind:   db_models.NotifyPlan,
			Title:  "Plan Purchased",
			Body:   fmt.Sprintf("Your %s plan is now active. %s has been charged.", tier, formatRupees(plan.TotalPrice)),
			Data:   map[string]any{"plan_id": plan.ID, "transaction_id": entry.TransactionID},
		}
	}

	if tier.IsPaid() {
		if err := p.expireFreePlans(ctx, r, plan.UserID); err != nil {
			return nil, err
		}
	}

	if err := r.plans.Create(ctx, plan); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrFreePlanAlreadyUsed
		}
		return nil, err
	}
	return ev, nil
}

func (p *PlanService) expireFreePlans(ctx context.Context, r txRepos, userID uuid.UUID) error {
	frees, err := r.plans.GetActivePlansByTier(ctx, userID, db_models.TierFree)
	if err != nil {
		return err
	}
	for _, free := range frees {
		to, err := NextPlanStatus(free.Status, PlanEventTierSwitch)
		if err != nil {
			return err
		}
		if _, err := r.plans.TransitionStatus(ctx, free.ID, free.Status, to); err != nil {
			return err
		}
		p.log.Info("free plan expired by tier switch",
			zap.String("user_id", userID.String()),
			zap.String("plan_id", free.ID.String()))
	}
	return nil
}

// checkDuplicateServices rejects ids already held by another active plan of
// the same tier. exclude skips the plan being modified.
func (p *PlanService) checkDuplicateServices(ctx context.Context, r txRepos, userID uuid.UUID, tier db_models.PlanTier, ids []string, exclude uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	active, err := r.plans.GetActivePlansByTier(ctx, userID, tier)
	if err != nil {
		return err
	}

	taken := make(map[string]struct{})
	for _, plan := range active {
		if plan.ID == exclude {
			continue
		}
		for _, id := range plan.ServicesFor(tier) {
			taken[id] = struct{}{}
		}
	}

	var dup []string
	for _, id := range ids {
		if _, ok := taken[id]; ok {
			dup = append(dup, id)
		}
	}
	if len(dup) > 0 {
		sort.Strings(dup)
		return utils.WithDetails(utils.ErrDuplicateService, dup...)
	}
	return nil
}

func (p *PlanService) UpgradePlan(ctx context.Context, userID, planID uuid.UUID, req request_models.UpgradePlanRequest) (*db_models.Plan, error) {
	if req.AdditionalPrice.IsNegative() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "additionalPrice")
	}
	selections := map[db_models.PlanTier][]string{
		db_models.TierFree:          req.FreeOfferings,
		db_models.TierIndividual:    req.IndividualBusinessServices,
		db_models.TierBusiness:      req.BusinessServices,
		db_models.TierInstitutional: req.InstitutionalServices,
	}
	if err := p.validateSelections(ctx, selections); err != nil {
		return nil, err
	}

	var plan *db_models.Plan
	var ev *NotificationEvent
	err := p.inUserTx(ctx, userID, func(r txRepos) error {
		var err error
		plan, err = r.plans.GetPlanById(ctx, planID)
		if err != nil {
			return err
		}
		if plan == nil || plan.UserID != userID {
			return utils.ErrPlanNotFound
		}
		if plan.Status != db_models.PlanStatusActive {
			return utils.ErrPlanNotActive
		}

		tier := plan.ServiceChoice
		if tier == db_models.TierFree && req.AdditionalPrice.IsPositive() {
			return utils.WithDetails(utils.ErrInvalidField, "additionalPrice")
		}
		added := newIDs(plan.ServicesFor(tier), canonicalIDs(selections[tier]))
		if err := p.checkDuplicateServices(ctx, r, userID, tier, added, plan.ID); err != nil {
			return err
		}
		mergeSelections(plan, selections)

		if req.AdditionalPrice.IsPositive() {
			entry, err := p.recorder.Record(ctx, r.ledger, LedgerEntry{
				UserID:      userID,
				Amount:      req.AdditionalPrice,
				Type:        db_models.TxnTypePlanUpgrade,
				Description: fmt.Sprintf("Upgraded %s plan for %s", tier, formatRupees(req.AdditionalPrice)),
				ReferenceID: &plan.ID,
			})
			if err != nil {
				return err
			}
			plan.TotalPrice = plan.TotalPrice.Add(req.AdditionalPrice)
			ev = &NotificationEvent{
				UserID: userID,
				Kind:   db_models.NotifyPlan,
				Title:  "Plan Upgraded",
				Body:   fmt.Sprintf("Your %s plan has been upgraded. %s has been charged.", tier, formatRupees(req.AdditionalPrice)),
				Data:   map[string]any{"plan_id": plan.ID, "transaction_id": entry.TransactionID},
			}
		}
		return r.plans.Save(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	if ev != nil {
		p.notifier.Notify(*ev)
	}
	return plan, nil
}

func (p *PlanService) RenewPlan(ctx context.Context, userID, planID uuid.UUID) (*resp.RenewalResult, error) {
	var result resp.RenewalResult
	err := p.inUserTx(ctx, userID, func(r txRepos) error {
		source, err := r.plans.GetPlanById(ctx, planID)
		if err != nil {
			return err
		}
		if source == nil || source.UserID != userID {
			return utils.ErrPlanNotFound
		}
		if source.ServiceChoice == db_models.TierFree {
			return utils.ErrFreePlanNotRenewable
		}
		if source.Status == db_models.PlanStatusRenewed {
			return utils.ErrPlanAlreadyRenewed
		}
		// the sweep moves a renewed source on to expired, so the status alone
		// does not tell whether this period was already renewed
		already, err := r.plans.HasRenewal(ctx, source.ID)
		if err != nil {
			return err
		}
		if already {
			return utils.ErrPlanAlreadyRenewed
		}
		to, err := NextPlanStatus(source.Status, PlanEventRenew)
		if err != nil {
			return err
		}

		tier := source.ServiceChoice
		if err := p.checkDuplicateServices(ctx, r, userID, tier, source.ServicesFor(tier), source.ID); err != nil {
			return err
		}

		ok, err := r.plans.TransitionStatus(ctx, source.ID, source.Status, to)
		if err != nil {
			return err
		}
		if !ok {
			return utils.ErrPlanAlreadyRenewed
		}
		source.Status = to

		start := source.EndDate.UTC()
		renewed := &db_models.Plan{
			BaseModel:                  db_models.BaseModel{ID: uuid.New()},
			UserID:                     userID,
			DeliveryPreference:         source.DeliveryPreference,
			ServiceChoice:              tier,
			StartDate:                  start,
			EndDate:                    utils.AddMonths(start, renewalMonths),
			Status:                     db_models.PlanStatusActive,
			FreeOfferings:              cloneIDs(source.FreeOfferings),
			IndividualBusinessServices: cloneIDs(source.IndividualBusinessServices),
			BusinessServices:           cloneIDs(source.BusinessServices),
			InstitutionalServices:      cloneIDs(source.InstitutionalServices),
			TotalPrice:                 source.TotalPrice,
			RenewedFromID:              &source.ID,
		}

		if source.TotalPrice.IsPositive() {
			entry, err := p.recorder.Record(ctx, r.ledger, LedgerEntry{
				UserID:      userID,
				Amount:      source.TotalPrice,
				Type:        db_models.TxnTypePlanRenewal,
				Description: fmt.Sprintf("Renewed %s plan for %s", tier, formatRupees(source.TotalPrice)),
				ReferenceID: &renewed.ID,
			})
			if err != nil {
				return err
			}
			result.Entry = entry
		}

		if err := r.plans.Create(ctx, renewed); err != nil {
			return err
		}
		result.Plan = renewed
		result.Renewed = source
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.notifier.Notify(NotificationEvent{
		UserID: userID,
		Kind:   db_models.NotifyPlan,
		Title:  "Plan Renewed",
		Body: fmt.Sprintf("Your %s plan has been renewed until %s.",
			result.Plan.ServiceChoice, result.Plan.EndDate.In(utils.IST()).Format("02 Jan 2006")),
		Data: map[string]any{"plan_id": result.Plan.ID, "renewed_from": result.Renewed.ID},
	})
	return &result, nil
}

func (p *PlanService) GetPlansByUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error) {
	plans, err := p.planRepo.GetPlansByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []db_models.Plan{}
	}
	return plans, nil
}

// GetActivePlansForUser hides active free plans once any paid plan is
// active, and skips paid plans whose services were all covered by earlier
// plans. Plans are visited in creation order, so the result depends on it.
func (p *PlanService) GetActivePlansForUser(ctx context.Context, userID uuid.UUID) ([]db_models.Plan, error) {
	active, err := p.planRepo.GetActivePlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	return effectivePlans(active), nil
}

func effectivePlans(active []db_models.Plan) []db_models.Plan {
	var paid, free []db_models.Plan
	for _, plan := range active {
		if plan.ServiceChoice.IsPaid() {
			paid = append(paid, plan)
		} else {
			free = append(free, plan)
		}
	}
	if len(paid) == 0 {
		if free == nil {
			return []db_models.Plan{}
		}
		return free
	}

	seen := make(map[string]struct{})
	out := []db_models.Plan{}
	for _, plan := range paid {
		ids := plan.AllServiceIDs()
		fresh := false
		for _, id := range ids {
			if _, ok := seen[id]; !ok {
				fresh = true
			}
			seen[id] = struct{}{}
		}
		if fresh {
			out = append(out, plan)
		}
	}
	return out
}

func (p *PlanService) GetPlanStatus(ctx context.Context, userID uuid.UUID) (*resp.PlanStatusResponse, error) {
	active, err := p.planRepo.GetActivePlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	freeCount, err := p.planRepo.CountByTier(ctx, userID, db_models.TierFree)
	if err != nil {
		return nil, err
	}

	status := &resp.PlanStatusResponse{
		HasActivePlan: len(active) > 0,
		HasUsedFree:   freeCount > 0,
		ActiveTiers:   []db_models.PlanTier{},
		ActivePlans:   len(active),
	}
	seen := make(map[db_models.PlanTier]bool)
	for _, plan := range active {
		if !seen[plan.ServiceChoice] {
			seen[plan.ServiceChoice] = true
			status.ActiveTiers = append(status.ActiveTiers, plan.ServiceChoice)
		}
	}
	return status, nil
}

func (p *PlanService) ListPlans(ctx context.Context, filter repositories.PlanFilter) (*resp.Page[db_models.Plan], error) {
	if err := validatePage(filter.Page, filter.PageSize); err != nil {
		return nil, err
	}
	if filter.Tier != "" && !filter.Tier.Valid() {
		return nil, utils.WithDetails(utils.ErrInvalidField, "tier")
	}
	plans, total, err := p.planRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &resp.Page[db_models.Plan]{Items: plans, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// canonicalIDs lower-cases and de-duplicates uuid strings, keeping order.
// Ids were validated against the catalog beforehand.
func canonicalIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if parsed, err := uuid.Parse(id); err == nil {
			id = parsed.String()
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func unionIDs(existing, add []string) []string {
	out := append([]string{}, existing...)
	return append(out, newIDs(existing, add)...)
}

// newIDs returns the ids in add that are not in existing.
func newIDs(existing, add []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
	}
	var out []string
	for _, id := range add {
		if _, ok := have[id]; ok {
			continue
		}
		have[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func cloneIDs(ids []string) []string {
	return append([]string{}, ids...)
}
