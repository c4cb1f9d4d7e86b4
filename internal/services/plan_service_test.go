package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/pkg/utils"
)

type planFixture struct {
	db       *gorm.DB
	svc      PlanServiceInterface
	catalog  CatalogServiceInterface
	plans    repositories.IPlanRepository
	notifier *recordingNotifier
	user     *db_models.User
}

func newPlanFixture(t *testing.T) *planFixture {
	t.Helper()
	db := testdb.New(t)
	catalog := NewCatalogService(repositories.NewCatalogRepository(db))
	notifier := &recordingNotifier{}
	plans := repositories.NewPlanRepository(db)
	svc := NewPlanService(db,
		repositories.NewUserRepository(db),
		plans,
		repositories.NewLedgerRepository(db),
		NewLedger(),
		catalog,
		notifier,
		zap.NewNop())
	return &planFixture{
		db:       db,
		svc:      svc,
		catalog:  catalog,
		plans:    plans,
		notifier: notifier,
		user:     seedUser(t, db, "+919811000000"),
	}
}

func (f *planFixture) offering(t *testing.T, tier, name string) string {
	t.Helper()
	o, err := f.catalog.CreateOffering(context.Background(), request_models.OfferingRequest{Tier: tier, Name: name})
	require.NoError(t, err)
	return o.ID.String()
}

var (
	planStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	planEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func planReq(tier db_models.PlanTier, price int64, services ...string) request_models.CreatePlanRequest {
	start, end := planStart, planEnd
	total := decimal.NewFromInt(price)
	req := request_models.CreatePlanRequest{
		DeliveryPreference: string(db_models.DeliveryEmail),
		ServiceChoice:      string(tier),
		StartDate:          &start,
		EndDate:            &end,
		TotalPrice:         &total,
	}
	switch tier {
	case db_models.TierFree:
		req.FreeOfferings = services
	case db_models.TierIndividual:
		req.IndividualBusinessServices = services
	case db_models.TierBusiness:
		req.BusinessServices = services
	case db_models.TierInstitutional:
		req.InstitutionalServices = services
	}
	return req
}

func batchIndex(t *testing.T, err error) int {
	t.Helper()
	var be *utils.BatchError
	require.True(t, errors.As(err, &be), "expected a batch error, got %v", err)
	return be.Index
}

func TestPlanService_FreePlanOnlyOnce(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	tip := f.offering(t, "free", "Daily Tips")

	created, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0, tip)})
	require.NoError(t, err)
	require.Len(t, created, 1)

	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0, tip)})
	assert.ErrorIs(t, err, utils.ErrFreePlanAlreadyUsed)
	assert.Equal(t, 0, batchIndex(t, err))
	assert.Equal(t, 409, utils.StatusFor(err))

	plans, err := f.svc.GetPlansByUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, db_models.PlanStatusActive, plans[0].Status)
	assert.Empty(t, f.notifier.titles(), "free plans carry no charge")
}

func TestPlanService_FreePlanStaysUsedAfterExpiry(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0)})
	require.NoError(t, err)
	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 100)})
	require.NoError(t, err)

	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0)})
	assert.ErrorIs(t, err, utils.ErrFreePlanAlreadyUsed)
}

func TestPlanService_TierSwitchExpiresFreePlan(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	svc := f.offering(t, "individual", "Portfolio Review")

	free, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0)})
	require.NoError(t, err)

	paid, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierIndividual, 999, svc)})
	require.NoError(t, err)
	require.Len(t, paid, 1)

	reloaded, err := f.plans.GetPlanById(ctx, free[0].ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.PlanStatusExpired, reloaded.Status)

	individual, err := f.plans.GetPlanById(ctx, paid[0].ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.PlanStatusActive, individual.Status)
	assert.Equal(t, []string{svc}, individual.IndividualBusinessServices)

	entries := ledgerEntries(t, f.db, f.user)
	require.Len(t, entries, 1)
	assert.Equal(t, db_models.TxnTypePlanPurchase, entries[0].Type)
	assert.True(t, decimal.NewFromInt(999).Equal(entries[0].Amount))
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, paid[0].ID, *entries[0].ReferenceID)

	assert.Equal(t, []string{"Plan Purchased"}, f.notifier.titles())
}

func TestPlanService_DuplicateServiceGuard(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.offering(t, "business", "A")
	b := f.offering(t, "business", "B")
	c := f.offering(t, "business", "C")

	_, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 500, a)})
	require.NoError(t, err)

	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 500, b, a)})
	assert.ErrorIs(t, err, utils.ErrDuplicateService)
	assert.Equal(t, []string{a}, utils.ErrorDetails(err))

	// disjoint services in the same tier are allowed
	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 500, b, c)})
	require.NoError(t, err)

	active, err := f.plans.GetActivePlansByTier(ctx, f.user.ID, db_models.TierBusiness)
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, plan := range active {
		for _, id := range plan.BusinessServices {
			assert.False(t, seen[id], "service %s held twice", id)
			seen[id] = true
		}
	}
}

func TestPlanService_BatchIsAllOrNothing(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.offering(t, "business", "A")
	b := f.offering(t, "institutional", "B")

	_, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{
		planReq(db_models.TierInstitutional, 200, b),
		planReq(db_models.TierBusiness, 100, a),
		planReq(db_models.TierBusiness, 100, a),
	})
	assert.ErrorIs(t, err, utils.ErrDuplicateService)
	assert.Equal(t, 2, batchIndex(t, err))

	plans, err := f.svc.GetPlansByUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, plans)
	assert.Empty(t, ledgerEntries(t, f.db, f.user))
	assert.Empty(t, f.notifier.titles())
}

func TestPlanService_ValidationReportsIndexAndFields(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{
		planReq(db_models.TierBusiness, 100),
		{ServiceChoice: "business"},
	})
	assert.ErrorIs(t, err, utils.ErrMissingFields)
	assert.Equal(t, 1, batchIndex(t, err))
	assert.Equal(t, []string{"deliveryPreference", "startDate", "endDate"}, utils.ErrorDetails(err))

	bad := planReq(db_models.TierBusiness, 100)
	bad.ServiceChoice = "platinum"
	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{bad})
	assert.ErrorIs(t, err, utils.ErrInvalidField)

	backwards := planReq(db_models.TierBusiness, 100)
	backwards.EndDate = &planStart
	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{backwards})
	assert.Equal(t, []string{"endDate"}, utils.ErrorDetails(err))

	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 10)})
	assert.Equal(t, []string{"totalPrice"}, utils.ErrorDetails(err))

	_, err = f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 10, uuid.NewString())})
	assert.ErrorIs(t, err, utils.ErrUnknownService)

	_, err = f.svc.CreatePlans(ctx, uuid.New(), []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 10)})
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestPlanService_RenewPlan(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.offering(t, "business", "A")

	created, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 1200, a)})
	require.NoError(t, err)
	source := created[0]

	result, err := f.svc.RenewPlan(ctx, f.user.ID, source.ID)
	require.NoError(t, err)

	renewed := result.Plan
	assert.True(t, planEnd.Equal(renewed.StartDate))
	assert.True(t, time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC).Equal(renewed.EndDate), "six calendar months, clamped to month end")
	assert.True(t, decimal.NewFromInt(1200).Equal(renewed.TotalPrice))
	assert.Equal(t, []string{a}, renewed.BusinessServices)
	assert.Equal(t, db_models.PlanStatusActive, renewed.Status)
	require.NotNil(t, renewed.RenewedFromID)
	assert.Equal(t, source.ID, *renewed.RenewedFromID)

	reloaded, err := f.plans.GetPlanById(ctx, source.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.PlanStatusRenewed, reloaded.Status)

	var renewals []db_models.Transaction
	for _, e := range ledgerEntries(t, f.db, f.user) {
		if e.Type == db_models.TxnTypePlanRenewal {
			renewals = append(renewals, e)
		}
	}
	require.Len(t, renewals, 1)
	assert.True(t, decimal.NewFromInt(1200).Equal(renewals[0].Amount))

	_, err = f.svc.RenewPlan(ctx, f.user.ID, source.ID)
	assert.ErrorIs(t, err, utils.ErrPlanAlreadyRenewed)

	assert.Equal(t, []string{"Plan Purchased", "Plan Renewed"}, f.notifier.titles())
}

func TestPlanService_RenewAfterSweepIsRejected(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.offering(t, "business", "A")

	created, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 1200, a)})
	require.NoError(t, err)
	source := created[0]

	first, err := f.svc.RenewPlan(ctx, f.user.ID, source.ID)
	require.NoError(t, err)

	sweeper := NewExpirySweeper(f.plans, repositories.NewInvestmentRepository(f.db), zap.NewNop())
	sweeper.now = func() time.Time { return first.Plan.EndDate.AddDate(0, 0, 1) }
	_, err = sweeper.Run(ctx)
	require.NoError(t, err)

	reloaded, err := f.plans.GetPlanById(ctx, source.ID)
	require.NoError(t, err)
	require.Equal(t, db_models.PlanStatusExpired, reloaded.Status)

	_, err = f.svc.RenewPlan(ctx, f.user.ID, source.ID)
	assert.ErrorIs(t, err, utils.ErrPlanAlreadyRenewed)

	var renewals int
	for _, e := range ledgerEntries(t, f.db, f.user) {
		if e.Type == db_models.TxnTypePlanRenewal {
			renewals++
		}
	}
	assert.Equal(t, 1, renewals)

	// the renewal itself is a fresh source and may be renewed once
	_, err = f.svc.RenewPlan(ctx, f.user.ID, first.Plan.ID)
	assert.NoError(t, err)
}

func TestPlanService_RenewRejections(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	free, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0)})
	require.NoError(t, err)

	_, err = f.svc.RenewPlan(ctx, f.user.ID, free[0].ID)
	assert.ErrorIs(t, err, utils.ErrFreePlanNotRenewable)

	_, err = f.svc.RenewPlan(ctx, f.user.ID, uuid.New())
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)

	other := seedUser(t, f.db, "+919811000099")
	_, err = f.svc.RenewPlan(ctx, other.ID, free[0].ID)
	assert.ErrorIs(t, err, utils.ErrPlanNotFound)
}

func TestPlanService_RenewZeroPriceSkipsLedger(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierInstitutional, 0)})
	require.NoError(t, err)

	result, err := f.svc.RenewPlan(ctx, f.user.ID, created[0].ID)
	require.NoError(t, err)
	assert.Nil(t, result.Entry)
	assert.Empty(t, ledgerEntries(t, f.db, f.user))
}

func TestPlanService_UpgradePlan(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	a := f.offering(t, "business", "A")
	b := f.offering(t, "business", "B")
	c := f.offering(t, "business", "C")

	first, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 500, a)})
	require.NoError(t, err)
	second, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierBusiness, 500, c)})
	require.NoError(t, err)

	upgraded, err := f.svc.UpgradePlan(ctx, f.user.ID, first[0].ID, request_models.UpgradePlanRequest{
		BusinessServices: []string{a, b},
		AdditionalPrice:  decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, upgraded.BusinessServices)
	assert.True(t, decimal.NewFromInt(800).Equal(upgraded.TotalPrice))

	_, err = f.svc.UpgradePlan(ctx, f.user.ID, first[0].ID, request_models.UpgradePlanRequest{BusinessServices: []string{c}})
	assert.ErrorIs(t, err, utils.ErrDuplicateService)

	_, err = f.svc.UpgradePlan(ctx, f.user.ID, first[0].ID, request_models.UpgradePlanRequest{AdditionalPrice: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, utils.ErrInvalidField)

	_, err = f.svc.RenewPlan(ctx, f.user.ID, second[0].ID)
	require.NoError(t, err)
	_, err = f.svc.UpgradePlan(ctx, f.user.ID, second[0].ID, request_models.UpgradePlanRequest{AdditionalPrice: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, utils.ErrPlanNotActive)

	var upgrades int
	for _, e := range ledgerEntries(t, f.db, f.user) {
		if e.Type == db_models.TxnTypePlanUpgrade {
			upgrades++
			assert.True(t, decimal.NewFromInt(300).Equal(e.Amount))
		}
	}
	assert.Equal(t, 1, upgrades)
}

func TestPlanService_UpgradeFreePlanCannotCharge(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()
	x := f.offering(t, "free", "X")

	free, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{planReq(db_models.TierFree, 0)})
	require.NoError(t, err)

	_, err = f.svc.UpgradePlan(ctx, f.user.ID, free[0].ID, request_models.UpgradePlanRequest{
		FreeOfferings:   []string{x},
		AdditionalPrice: decimal.NewFromInt(50),
	})
	require.ErrorIs(t, err, utils.ErrInvalidField)
	assert.Equal(t, []string{"additionalPrice"}, utils.ErrorDetails(err))

	reloaded, err := f.plans.GetPlanById(ctx, free[0].ID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice.IsZero())
	assert.Empty(t, reloaded.FreeOfferings)
	assert.Empty(t, ledgerEntries(t, f.db, f.user))

	upgraded, err := f.svc.UpgradePlan(ctx, f.user.ID, free[0].ID, request_models.UpgradePlanRequest{FreeOfferings: []string{x}})
	require.NoError(t, err)
	assert.Equal(t, []string{x}, upgraded.FreeOfferings)
}

func TestPlanService_ExpirySweepIsIdempotent(t *testing.T) {
	f := newPlanFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreatePlans(ctx, f.user.ID, []request_models.CreatePlanRequest{
		planReq(db_models.TierBusiness, 0),
		planReq(db_models.TierInstitutional, 0),
	})
	require.NoError(t, err)
	_, err = f.svc.RenewPlan(ctx, f.user.ID, created[1].ID)
	require.NoError(t, err)

	sweeper := NewExpirySweeper(f.plans, repositories.NewInvestmentRepository(f.db), zap.NewNop())
	sweeper.now = func() time.Time { return planEnd.AddDate(0, 0, 1) }

	first, err := sweeper.Run(ctx)
	require.NoError(t, err)
	// the business plan and the renewed institutional source
	assert.Equal(t, int64(2), first.PlansExpired)

	second, err := sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.PlansExpired)

	active, err := f.svc.GetActivePlansForUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, active, 0, "renewal has no services so it is filtered out")

	status, err := f.svc.GetPlanStatus(ctx, f.user.ID)
	require.NoError(t, err)
	assert.True(t, status.HasActivePlan)
	assert.Equal(t, []db_models.PlanTier{db_models.TierInstitutional}, status.ActiveTiers)
	assert.False(t, status.HasUsedFree)
}

func TestEffectivePlans(t *testing.T) {
	plan := func(tier db_models.PlanTier, ids ...string) db_models.Plan {
		p := db_models.Plan{BaseModel: db_models.BaseModel{ID: uuid.New()}, ServiceChoice: tier}
		p.SetServicesFor(tier, ids)
		return p
	}

	free := plan(db_models.TierFree, "f1")
	assert.Equal(t, []db_models.Plan{free}, effectivePlans([]db_models.Plan{free}))
	assert.Empty(t, effectivePlans(nil))

	p1 := plan(db_models.TierBusiness, "a", "b")
	p2 := plan(db_models.TierIndividual, "b")
	p3 := plan(db_models.TierInstitutional, "b", "c")
	got := effectivePlans([]db_models.Plan{free, p1, p2, p3})
	require.Len(t, got, 2)
	assert.Equal(t, p1.ID, got[0].ID)
	assert.Equal(t, p3.ID, got[1].ID)

	// order matters: visiting p2 first keeps it
	got = effectivePlans([]db_models.Plan{p2, p1, p3})
	require.Len(t, got, 3)
}
