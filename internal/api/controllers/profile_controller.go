package controllers

import (
	"github.com/gin-gonic/gin"

	"seraphina/internal/models/request_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type ProfileController struct {
	userService services.UserServiceInterface
}

func NewProfileController(userService services.UserServiceInterface) *ProfileController {
	return &ProfileController{userService: userService}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/profile [get]
func (p *ProfileController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := p.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile fetched successfully")
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Description Partial update; only submitted fields and files change
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/profile [put]
func (p *ProfileController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := p.userService.UpdateProfile(c.Request.Context(), userID, req, kycFiles(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile updated successfully")
}

// UpdateProfileImage godoc
// @Summary Replace the profile image
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param profileImage formData file true "Image"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/profile/image [put]
func (p *ProfileController) UpdateProfileImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := p.userService.UpdateProfileImage(c.Request.Context(), userID, formFile(c, "profileImage"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Profile image updated successfully")
}
