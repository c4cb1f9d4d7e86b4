package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seraphina/internal/infra/testdb"
	"seraphina/internal/models/db_models"
)

func newPlan(userID uuid.UUID, tier db_models.PlanTier, start, end time.Time) *db_models.Plan {
	return &db_models.Plan{
		UserID:             userID,
		DeliveryPreference: db_models.DeliveryEmail,
		ServiceChoice:      tier,
		StartDate:          start,
		EndDate:            end,
		Status:             db_models.PlanStatusActive,
		TotalPrice:         decimal.Zero,
	}
}

func TestPlanRepository_SingleFreePlanIndex(t *testing.T) {
	db := testdb.New(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "+919700000001")
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, newPlan(user.ID, db_models.TierFree, now, now.AddDate(0, 1, 0))))
	err := repo.Create(ctx, newPlan(user.ID, db_models.TierFree, now, now.AddDate(0, 1, 0)))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// paid tiers are not limited by the index
	require.NoError(t, repo.Create(ctx, newPlan(user.ID, db_models.TierBusiness, now, now.AddDate(0, 1, 0))))
	require.NoError(t, repo.Create(ctx, newPlan(user.ID, db_models.TierBusiness, now, now.AddDate(0, 1, 0))))
}

func TestPlanRepository_ServiceArraysRoundTrip(t *testing.T) {
	db := testdb.New(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "+919700000002")
	now := time.Now().UTC()

	plan := newPlan(user.ID, db_models.TierIndividual, now, now.AddDate(0, 6, 0))
	plan.IndividualBusinessServices = []string{"a", "b"}
	require.NoError(t, repo.Create(ctx, plan))

	loaded, err := repo.GetPlanById(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, loaded.IndividualBusinessServices)
	assert.Empty(t, loaded.BusinessServices)
}

func TestPlanRepository_ExpireEndedIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "+919700000003")
	now := time.Now().UTC()

	ended := newPlan(user.ID, db_models.TierBusiness, now.AddDate(0, -7, 0), now.AddDate(0, 0, -1))
	current := newPlan(user.ID, db_models.TierInstitutional, now, now.AddDate(0, 6, 0))
	require.NoError(t, repo.Create(ctx, ended))
	require.NoError(t, repo.Create(ctx, current))

	from := []db_models.PlanStatus{db_models.PlanStatusActive, db_models.PlanStatusRenewed}
	n, err := repo.ExpireEnded(ctx, now, from)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.ExpireEnded(ctx, now, from)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	active, err := repo.GetActivePlans(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, current.ID, active[0].ID)
}

func TestPlanRepository_TransitionStatusIsConditional(t *testing.T) {
	db := testdb.New(t)
	repo := NewPlanRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "+919700000004")
	now := time.Now().UTC()

	plan := newPlan(user.ID, db_models.TierBusiness, now, now.AddDate(0, 6, 0))
	require.NoError(t, repo.Create(ctx, plan))

	ok, err := repo.TransitionStatus(ctx, plan.ID, db_models.PlanStatusActive, db_models.PlanStatusRenewed)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, plan.ID, db_models.PlanStatusActive, db_models.PlanStatusExpired)
	require.NoError(t, err)
	assert.False(t, ok)
}
