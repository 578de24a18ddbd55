package api

import (
	"net/http"

	"alcyxob/pt-crm/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service dependency.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications handles GET /notifications?unread=true. Users only ever
// see their own notifications.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor := actorFromContext(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), actor, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles POST /notifications/:notificationId/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseObjectID(c, "notificationId")
	if !ok {
		return
	}
	actor := actorFromContext(c)

	if err := h.notificationService.MarkRead(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor := actorFromContext(c)

	if err := h.notificationService.MarkAllRead(c.Request.Context(), actor); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
