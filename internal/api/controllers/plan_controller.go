package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{planService: planService}
}

// bindPlans accepts a bare JSON array or {"plans": [...]}.
func bindPlans(c *gin.Context) ([]request_models.CreatePlanRequest, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var plans []request_models.CreatePlanRequest
		if err := binding.JSON.BindBody(trimmed, &plans); err != nil {
			return nil, err
		}
		return plans, nil
	}
	var req request_models.CreatePlansRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		return nil, err
	}
	return req.Plans, nil
}

// CreatePlans godoc
// @Summary Purchase one or more plans
// @Description All-or-nothing; a failing element is reported by index
// @Tags Plans
// @Accept json
// @Produce json
// @Param request body request_models.CreatePlansRequest true "Plans"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans [post]
func (p *PlanController) CreatePlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	plans, err := bindPlans(c)
	if err != nil {
		respondBindError(c, err)
		return
	}
	if len(plans) == 0 {
		utils.RespondError(c, http.StatusBadRequest, "At least one plan is required")
		return
	}

	created, err := p.planService.CreatePlans(c.Request.Context(), userID, plans)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, created, "Plans created successfully")
}

// GetPlans godoc
// @Summary All plans of the caller
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans [get]
func (p *PlanController) GetPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plans, err := p.planService.GetPlansByUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetActivePlans godoc
// @Summary Effective active plans
// @Description Free plans are hidden once a paid plan is active
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans/active [get]
func (p *PlanController) GetActivePlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plans, err := p.planService.GetActivePlansForUser(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Active plans fetched successfully")
}

// GetPlanStatus godoc
// @Summary Whether the caller holds active plans and used the free plan
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans/status [get]
func (p *PlanController) GetPlanStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := p.planService.GetPlanStatus(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Plan status fetched successfully")
}

// UpgradePlan godoc
// @Summary Add services to an active plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.UpgradePlanRequest true "Additional services"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans/{id}/upgrade [post]
func (p *PlanController) UpgradePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpgradePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	plan, err := p.planService.UpgradePlan(c.Request.Context(), userID, planID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan upgraded successfully")
}

// RenewPlan godoc
// @Summary Renew a paid plan for six months
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/plans/{id}/renew [post]
func (p *PlanController) RenewPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := p.planService.RenewPlan(c.Request.Context(), userID, planID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, result, "Plan renewed successfully")
}

// ListPlans godoc
// @Summary List all plans
// @Tags Admin
// @Produce json
// @Param status query string false "active | expired | renewed"
// @Param tier query string false "free | individual | business | institutional"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}

	plans, err := p.planService.ListPlans(c.Request.Context(), repositories.PlanFilter{
		Status:   db_models.PlanStatus(c.Query("status")),
		Tier:     db_models.PlanTier(c.Query("tier")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}
