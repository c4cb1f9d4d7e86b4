package controllers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"seraphina/internal/models/request_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type AccountController struct {
	authService services.AuthServiceInterface
}

func NewAccountController(authService services.AuthServiceInterface) *AccountController {
	return &AccountController{
		authService: authService,
	}
}

func formFile(c *gin.Context, name string) *multipart.FileHeader {
	file, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

func kycFiles(c *gin.Context) services.KYCFiles {
	return services.KYCFiles{
		ProfileImage:     formFile(c, "profileImage"),
		AadharFrontImage: formFile(c, "aadharFrontImage"),
		AadharBackImage:  formFile(c, "aadharBackImage"),
		PanFrontImage:    formFile(c, "panFrontImage"),
		PanBackImage:     formFile(c, "panBackImage"),
	}
}

// GenerateOtp godoc
// @Summary Request a login OTP
// @Description Creates the user on first contact and sends a one-time code by SMS
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.OtpRequest true "Phone number"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /user/auth/otp [post]
func (a *AccountController) GenerateOtp(c *gin.Context) {
	var req request_models.OtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := a.authService.GenerateOtp(c.Request.Context(), req.Phone)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "OTP sent successfully")
}

// ResendOtp godoc
// @Summary Resend the login OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.OtpRequest true "Phone number"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /user/auth/otp/resend [post]
func (a *AccountController) ResendOtp(c *gin.Context) {
	var req request_models.OtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := a.authService.ResendOtp(c.Request.Context(), req.Phone)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "OTP resent successfully")
}

// VerifyOtp godoc
// @Summary Verify the login OTP
// @Description Returns a token for approved, registered users
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.VerifyOtpRequest true "Phone and code"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /user/auth/otp/verify [post]
func (a *AccountController) VerifyOtp(c *gin.Context) {
	var req request_models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := a.authService.VerifyOtp(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "OTP verified successfully")
}

// Register godoc
// @Summary Complete registration
// @Description Multipart form with KYC details and document images
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /user/auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := a.authService.CompleteRegistration(c.Request.Context(), req, kycFiles(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	message := "Registration completed successfully"
	if out.AwaitingApproval {
		message = "Registration submitted, awaiting admin approval"
	}
	utils.RespondSuccess(c, out, message)
}

// AdminLogin godoc
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.AdminLoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/auth/login [post]
func (a *AccountController) AdminLogin(c *gin.Context) {
	var req request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := a.authService.AdminLogin(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Login successful")
}
