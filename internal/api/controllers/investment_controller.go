package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type InvestmentController struct {
	investmentService services.InvestmentServiceInterface
}

func NewInvestmentController(investmentService services.InvestmentServiceInterface) *InvestmentController {
	return &InvestmentController{investmentService: investmentService}
}

func planFilter(c *gin.Context) (repositories.InvestmentPlanFilter, bool) {
	filter := repositories.InvestmentPlanFilter{
		Status:   db_models.InvestmentPlanStatus(c.Query("status")),
		Popular:  c.Query("popular") == "true",
		Featured: c.Query("featured") == "true",
	}
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid category")
			return filter, false
		}
		filter.CategoryID = &id
	}
	return filter, true
}

// ListCategories godoc
// @Summary Investment categories
// @Tags Investments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /user/investments/categories [get]
func (i *InvestmentController) ListCategories(c *gin.Context) {
	categories, err := i.investmentService.ListCategories(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, categories, "Categories fetched successfully")
}

// ListActivePlans godoc
// @Summary Active investment plans
// @Tags Investments
// @Produce json
// @Param category query string false "Category ID"
// @Param popular query bool false "Only popular plans"
// @Param featured query bool false "Only featured plans"
// @Success 200 {object} utils.APIResponse
// @Router /user/investments/plans [get]
func (i *InvestmentController) ListActivePlans(c *gin.Context) {
	filter, ok := planFilter(c)
	if !ok {
		return
	}
	plans, err := i.investmentService.ListActivePlans(c.Request.Context(), filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Investment plans fetched successfully")
}

// GetPlan godoc
// @Summary One investment plan
// @Tags Investments
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /user/investments/plans/{id} [get]
func (i *InvestmentController) GetPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	plan, err := i.investmentService.GetPlan(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Investment plan fetched successfully")
}

// Purchase godoc
// @Summary Invest in a plan
// @Tags Investments
// @Accept json
// @Produce json
// @Param request body request_models.PurchaseRequest true "Purchase"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/investments/purchases [post]
func (i *InvestmentController) Purchase(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	purchase, err := i.investmentService.Purchase(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, purchase, "Investment purchased successfully")
}

// ListPurchases godoc
// @Summary The caller's investments
// @Tags Investments
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/investments/purchases [get]
func (i *InvestmentController) ListPurchases(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	purchases, err := i.investmentService.ListPurchases(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, purchases, "Investments fetched successfully")
}

// Performance godoc
// @Summary Projected portfolio performance
// @Tags Investments
// @Produce json
// @Param range query string false "1M | 3M | 6M | 1Y | ALL (default ALL)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/investments/performance [get]
func (i *InvestmentController) Performance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	perf, err := i.investmentService.Performance(c.Request.Context(), userID, c.Query("range"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, perf, "Performance fetched successfully")
}

// ---- admin ----

// ListPlans godoc
// @Summary All investment plans
// @Tags Admin
// @Produce json
// @Param status query string false "active | inactive"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/plans [get]
func (i *InvestmentController) ListPlans(c *gin.Context) {
	filter, ok := planFilter(c)
	if !ok {
		return
	}
	plans, err := i.investmentService.ListPlans(c.Request.Context(), filter)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Investment plans fetched successfully")
}

// CreatePlan godoc
// @Summary Create an investment plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.InvestmentPlanRequest true "Plan"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/plans [post]
func (i *InvestmentController) CreatePlan(c *gin.Context) {
	var req request_models.InvestmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := i.investmentService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, plan, "Investment plan created successfully")
}

// UpdatePlan godoc
// @Summary Update an investment plan
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.InvestmentPlanRequest true "Plan"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/plans/{id} [put]
func (i *InvestmentController) UpdatePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.InvestmentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := i.investmentService.UpdatePlan(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Investment plan updated successfully")
}

// SetPlanFlags godoc
// @Summary Toggle popular, featured or status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param request body request_models.InvestmentFlagsRequest true "Flags"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/plans/{id}/flags [patch]
func (i *InvestmentController) SetPlanFlags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.InvestmentFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	plan, err := i.investmentService.SetPlanFlags(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Investment plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete an investment plan
// @Tags Admin
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/plans/{id} [delete]
func (i *InvestmentController) DeletePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := i.investmentService.DeletePlan(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Investment plan deleted successfully")
}

// CreateCategory godoc
// @Summary Create an investment category
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.CategoryRequest true "Category"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/categories [post]
func (i *InvestmentController) CreateCategory(c *gin.Context) {
	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := i.investmentService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, category, "Category created successfully")
}

// UpdateCategory godoc
// @Summary Rename an investment category
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body request_models.CategoryRequest true "Category"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/categories/{id} [put]
func (i *InvestmentController) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := i.investmentService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, category, "Category updated successfully")
}

// DeleteCategory godoc
// @Summary Delete an investment category
// @Tags Admin
// @Param id path string true "Category ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/categories/{id} [delete]
func (i *InvestmentController) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := i.investmentService.DeleteCategory(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Category deleted successfully")
}

// CancelPurchase godoc
// @Summary Cancel an active investment
// @Tags Admin
// @Param id path string true "Purchase ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/investments/purchases/{id}/cancel [post]
func (i *InvestmentController) CancelPurchase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	purchase, err := i.investmentService.CancelPurchase(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, purchase, "Investment cancelled successfully")
}
