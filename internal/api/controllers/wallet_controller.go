package controllers

import (
	"github.com/gin-gonic/gin"

	"seraphina/internal/models/request_models"
	"seraphina/internal/services"
	"seraphina/pkg/utils"
)

type WalletController struct {
	walletService services.WalletServiceInterface
}

func NewWalletController(walletService services.WalletServiceInterface) *WalletController {
	return &WalletController{walletService: walletService}
}

// GetWallet godoc
// @Summary Wallet balance and full transaction list
// @Tags Wallet
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/wallet [get]
func (w *WalletController) GetWallet(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := w.walletService.GetWalletDetails(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, details, "Wallet fetched successfully")
}

// GetTransactions godoc
// @Summary Paged transaction history, newest first
// @Tags Wallet
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/wallet/transactions [get]
func (w *WalletController) GetTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}

	history, err := w.walletService.GetTransactionHistory(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "Transactions fetched successfully")
}

// AddMoney godoc
// @Summary Credit the wallet
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request_models.AmountRequest true "Amount"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/wallet/add [post]
func (w *WalletController) AddMoney(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := w.walletService.AddMoney(c.Request.Context(), userID, req.Amount)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Money added successfully")
}

// Withdraw godoc
// @Summary Debit the wallet
// @Description Fails with 400 when the balance is insufficient
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request_models.AmountRequest true "Amount"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/wallet/withdraw [post]
func (w *WalletController) Withdraw(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req request_models.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := w.walletService.Withdraw(c.Request.Context(), userID, req.Amount)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, out, "Withdrawal successful")
}
