package controllers

import (
	"github.com/gin-gonic/gin"

	"seraphina/internal/models/request_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type BankController struct {
	bankService services.BankServiceInterface
}

func NewBankController(bankService services.BankServiceInterface) *BankController {
	return &BankController{bankService: bankService}
}

// ListBankNames godoc
// @Summary Supported banks
// @Tags Banks
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /user/banks [get]
func (b *BankController) ListBankNames(c *gin.Context) {
	banks, err := b.bankService.ListBankNames(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, banks, "Banks fetched successfully")
}

// LinkBankAccount godoc
// @Summary Link the caller's bank account
// @Tags Banks
// @Accept json
// @Produce json
// @Param request body request_models.BankAccountRequest true "Account"
// @Success 201 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/bank-account [post]
func (b *BankController) LinkBankAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	account, err := b.bankService.LinkBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, account, "Bank account linked successfully")
}

// GetBankAccount godoc
// @Summary The caller's bank account
// @Tags Banks
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/bank-account [get]
func (b *BankController) GetBankAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	account, err := b.bankService.GetBankAccount(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Bank account fetched successfully")
}

// UpdateBankAccount godoc
// @Summary Replace the caller's bank account details
// @Tags Banks
// @Accept json
// @Produce json
// @Param request body request_models.BankAccountRequest true "Account"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/bank-account [put]
func (b *BankController) UpdateBankAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.BankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	account, err := b.bankService.UpdateBankAccount(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, account, "Bank account updated successfully")
}

// CreateBankName godoc
// @Summary Add a bank
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.BankNameRequest true "Bank"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/banks [post]
func (b *BankController) CreateBankName(c *gin.Context) {
	var req request_models.BankNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bank, err := b.bankService.CreateBankName(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondCreated(c, bank, "Bank created successfully")
}

// UpdateBankName godoc
// @Summary Update a bank
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Bank ID"
// @Param request body request_models.BankNameRequest true "Bank"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/banks/{id} [put]
func (b *BankController) UpdateBankName(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.BankNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bank, err := b.bankService.UpdateBankName(c.Request.Context(), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, bank, "Bank updated successfully")
}

// DeleteBankName godoc
// @Summary Delete a bank
// @Tags Admin
// @Param id path string true "Bank ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/banks/{id} [delete]
func (b *BankController) DeleteBankName(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := b.bankService.DeleteBankName(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Bank deleted successfully")
}
