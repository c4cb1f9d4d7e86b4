package controllers

import (
	"github.com/gin-gonic/gin"

	"seraphina/internal/models/db_models"
	"seraphina/internal/models/request_models"
	"seraphina/internal/repositories"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type AdminController struct {
	userService services.UserServiceInterface
}

func NewAdminController(userService services.UserServiceInterface) *AdminController {
	return &AdminController{userService: userService}
}

// ListUsers godoc
// @Summary Search users
// @Tags Admin
// @Produce json
// @Param search query string false "Name, phone or email fragment"
// @Param verification query string false "pending | approved | rejected"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}
	users, err := a.userService.ListUsers(c.Request.Context(), repositories.UserFilter{
		Search:       c.Query("search"),
		Verification: db_models.VerificationStatus(c.Query("verification")),
		Page:         page,
		PageSize:     pageSize,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, users, "Users fetched successfully")
}

// GetUser godoc
// @Summary One user
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (a *AdminController) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := a.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "User fetched successfully")
}

// SetVerification godoc
// @Summary Approve or reject a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body request_models.VerificationRequest true "Status"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/users/{id}/verification [patch]
func (a *AdminController) SetVerification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.VerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := a.userService.SetVerification(c.Request.Context(), id, db_models.VerificationStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, user, "Verification updated successfully")
}
