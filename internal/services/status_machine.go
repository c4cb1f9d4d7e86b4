package services

import (
	"seraphina/internal/models/db_models"
	"seraphina/pkg/utils"
)

type PlanEvent string

const (
	// PlanEventExpire fires from the daily sweep once EndDate has passed.
	PlanEventExpire PlanEvent = "expire"
	// PlanEventTierSwitch fires on the free plan when a paid plan is bought.
	PlanEventTierSwitch PlanEvent = "tier_switch"
	PlanEventRenew      PlanEvent = "renew"
)

type planTransition struct {
	from  db_models.PlanStatus
	event PlanEvent
}

var planTransitions = map[planTransition]db_models.PlanStatus{
	{db_models.PlanStatusActive, PlanEventExpire}:     db_models.PlanStatusExpired,
	{db_models.PlanStatusRenewed, PlanEventExpire}:    db_models.PlanStatusExpired,
	{db_models.PlanStatusActive, PlanEventTierSwitch}: db_models.PlanStatusExpired,
	{db_models.PlanStatusActive, PlanEventRenew}:      db_models.PlanStatusRenewed,
	{db_models.PlanStatusExpired, PlanEventRenew}:     db_models.PlanStatusRenewed,
}

// NextPlanStatus is the only place plan statuses are allowed to change.
func NextPlanStatus(from db_models.PlanStatus, event PlanEvent) (db_models.PlanStatus, error) {
	to, ok := planTransitions[planTransition{from, event}]
	if !ok {
		return from, utils.WithDetails(utils.ErrIllegalTransition, string(from), string(event))
	}
	return to, nil
}

// PlanEventSources lists every status from which event is accepted.
func PlanEventSources(event PlanEvent) []db_models.PlanStatus {
	var out []db_models.PlanStatus
	for _, s := range []db_models.PlanStatus{db_models.PlanStatusActive, db_models.PlanStatusExpired, db_models.PlanStatusRenewed} {
		if _, ok := planTransitions[planTransition{s, event}]; ok {
			out = append(out, s)
		}
	}
	return out
}

type PurchaseEvent string

const (
	PurchaseEventMature PurchaseEvent = "mature"
	PurchaseEventCancel PurchaseEvent = "cancel"
)

var purchaseTransitions = map[db_models.PurchaseStatus]map[PurchaseEvent]db_models.PurchaseStatus{
	db_models.PurchaseActive: {
		PurchaseEventMature: db_models.PurchaseMatured,
		PurchaseEventCancel: db_models.PurchaseCancelled,
	},
}

func NextPurchaseStatus(from db_models.PurchaseStatus, event PurchaseEvent) (db_models.PurchaseStatus, error) {
	to, ok := purchaseTransitions[from][event]
	if !ok {
		return from, utils.WithDetails(utils.ErrIllegalTransition, string(from), string(event))
	}
	return to, nil
}
