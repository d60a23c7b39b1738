package handler

import (
	"hostelcare/backend/internal/config"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	h.listNotifications(c, false)
}

func (h *Handler) UnreadNotifications(c *gin.Context) {
	h.listNotifications(c, true)
}

func (h *Handler) listNotifications(c *gin.Context, unreadOnly bool) {
	userID, _ := currentUser(c)
	list, err := h.Inbox.ListNotifications(c.Request.Context(), userID, unreadOnly, config.NotificationListLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	userID, _ := currentUser(c)
	count, err := h.Inbox.CountUnreadNotifications(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"count": count})
}

// MarkRead removes the notification from the inbox; a read notification
// is not kept.
func (h *Handler) MarkRead(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.Inbox.DeleteNotification(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "Notification marked as read and deleted")
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.Inbox.MarkAllNotificationsRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "All notifications marked as read")
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.Inbox.DeleteNotification(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "Notification deleted successfully")
}
