package handler

import (
	"net/http"

	"hostelcare/backend/internal/announcement"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req announcement.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, _ := currentUser(c)
	created, err := h.Announcements.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (h *Handler) ActiveAnnouncements(c *gin.Context) {
	list, err := h.Announcements.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) AllAnnouncements(c *gin.Context) {
	list, err := h.Announcements.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	if err := h.Announcements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "Announcement deleted successfully")
}
