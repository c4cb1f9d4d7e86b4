package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListOfferings godoc
// @Summary Service catalogue
// @Tags Catalog
// @Produce json
// @Param tier query string false "free | individual | business | institutional"
// @Success 200 {object} utils.APIResponse
// @Router /user/catalog/services [get]
func (cc *CatalogController) ListOfferings(c *gin.Context) {
	offerings, err := cc.catalogService.ListOfferings(c.Request.Context(), db_models.PlanTier(c.Query("tier")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, offerings, "Services fetched successfully")
}

// CreateOffering godoc
// @Summary Add a catalogue service
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.OfferingRequest true "Offering"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/catalog/services [post]
func (cc *CatalogController) CreateOffering(c *gin.Context) {
	var req request_models.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	offering, err := cc.catalogService.CreateOffering(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, offering, "Service created successfully")
}

// UpdateOffering godoc
// @Summary Update a catalogue service
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Offering ID"
// @Param request body request_models.OfferingRequest true "Offering"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/catalog/services/{id} [put]
func (cc *CatalogController) UpdateOffering(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	offering, err := cc.catalogService.UpdateOffering(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, offering, "Service updated successfully")
}

// DeleteOffering godoc
// @Summary Remove a catalogue service
// @Tags Admin
// @Param id path string true "Offering ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/catalog/services/{id} [delete]
func (cc *CatalogController) DeleteOffering(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.catalogService.DeleteOffering(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Service deleted successfully")
}

// GetPricing godoc
// @Summary Current plan pricing
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /user/catalog/pricing [get]
func (cc *CatalogController) GetPricing(c *gin.Context) {
	pricing, err := cc.catalogService.GetPricing(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, pricing, "Pricing fetched successfully")
}

// UpsertPricing godoc
// @Summary Replace plan pricing
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.PricingRequest true "Pricing"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/catalog/pricing [put]
func (cc *CatalogController) UpsertPricing(c *gin.Context) {
	var req request_models.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pricing, err := cc.catalogService.UpsertPricing(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, pricing, "Pricing saved successfully")
}

// Quote godoc
// @Summary Price a prospective plan
// @Tags Catalog
// @Produce json
// @Param tier query string true "Tier"
// @Param services query int true "Number of services"
// @Success 200 {object} utils.APIResponse
// @Router /user/catalog/quote [get]
func (cc *CatalogController) Quote(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("services", "0"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "services must be an integer")
		return
	}
	quote, err := cc.catalogService.QuotePlan(c.Request.Context(), db_models.PlanTier(c.Query("tier")), count)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, quote, "Quote calculated successfully")
}
