package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"seraphina/internal/services"
	"seraphina/pkg/realtime"
	"seraphina/pkg/utils"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	hub                 *realtime.Hub
	log                 *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, hub *realtime.Hub, log *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, hub: hub, log: log}
}

// ListNotifications godoc
// @Summary The caller's notifications, newest first
// @Tags Notifications
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/notifications [get]
func (n *NotificationController) ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize, ok := pageParams(c, 20)
	if !ok {
		return
	}
	out, err := n.notificationService.ListForUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Notifications fetched successfully")
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/notifications/{id}/read [patch]
func (n *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := n.notificationService.MarkRead(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Notification marked as read")
}

// Stream upgrades to a websocket that receives new notifications.
// @Summary Live notifications
// @Tags Notifications
// @Param token query string false "JWT when the Authorization header cannot be set"
// @Security BearerAuth
// @Router /user/notifications/ws [get]
func (n *NotificationController) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	// the upgrader has already answered the request on failure
	if err := n.hub.Serve(c.Writer, c.Request, userID.String()); err != nil {
		n.log.Debug("websocket upgrade failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
