package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seraphina/internal/models/db_models"
	"seraphina/pkg/utils"
)

func TestNextPlanStatus(t *testing.T) {
	tests := []struct {
		from    db_models.PlanStatus
		event   PlanEvent
		want    db_models.PlanStatus
		illegal bool
	}{
		{db_models.PlanStatusActive, PlanEventExpire, db_models.PlanStatusExpired, false},
		{db_models.PlanStatusRenewed, PlanEventExpire, db_models.PlanStatusExpired, false},
		{db_models.PlanStatusActive, PlanEventTierSwitch, db_models.PlanStatusExpired, false},
		{db_models.PlanStatusActive, PlanEventRenew, db_models.PlanStatusRenewed, false},
		{db_models.PlanStatusExpired, PlanEventRenew, db_models.PlanStatusRenewed, false},
		{db_models.PlanStatusExpired, PlanEventExpire, db_models.PlanStatusExpired, true},
		{db_models.PlanStatusRenewed, PlanEventRenew, db_models.PlanStatusRenewed, true},
		{db_models.PlanStatusExpired, PlanEventTierSwitch, db_models.PlanStatusExpired, true},
	}
	for _, tc := range tests {
		got, err := NextPlanStatus(tc.from, tc.event)
		if tc.illegal {
			assert.ErrorIs(t, err, utils.ErrIllegalTransition, "%s -%s->", tc.from, tc.event)
		} else {
			assert.NoError(t, err)
		}
		assert.Equal(t, tc.want, got)
	}
}

func TestPlanEventSources(t *testing.T) {
	assert.ElementsMatch(t,
		[]db_models.PlanStatus{db_models.PlanStatusActive, db_models.PlanStatusRenewed},
		PlanEventSources(PlanEventExpire))
	assert.ElementsMatch(t,
		[]db_models.PlanStatus{db_models.PlanStatusActive},
		PlanEventSources(PlanEventTierSwitch))
}

func TestNextPurchaseStatus(t *testing.T) {
	to, err := NextPurchaseStatus(db_models.PurchaseActive, PurchaseEventCancel)
	assert.NoError(t, err)
	assert.Equal(t, db_models.PurchaseCancelled, to)

	_, err = NextPurchaseStatus(db_models.PurchaseMatured, PurchaseEventCancel)
	assert.ErrorIs(t, err, utils.ErrIllegalTransition)
}
