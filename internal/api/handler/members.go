package handler

import (
	"net/http"

	"hostelcare/backend/internal/roster"

	"github.com/gin-gonic/gin"
)

type memberActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h *Handler) AddMember(c *gin.Context) {
	var req roster.MemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	member, err := h.Roster.AddMember(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": member})
}

// ListMembers lists staff, optionally filtered by ?category=.
func (h *Handler) ListMembers(c *gin.Context) {
	list, err := h.Roster.ListMembers(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) SetMemberActive(c *gin.Context) {
	var req memberActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.Roster.SetMemberActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "Member updated")
}
