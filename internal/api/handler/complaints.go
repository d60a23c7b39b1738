package handler

import (
	"net/http"

	"hostelcare/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	Category    string `json:"category" binding:"required"`
	SubCategory string `json:"subCategory"`
	Description string `json:"description" binding:"required"`
}

// statusRequest names the assignee memberId; assignedTo is accepted too.
type statusRequest struct {
	Status     string `json:"status" binding:"required"`
	Note       string `json:"note"`
	MemberID   string `json:"memberId"`
	AssignedTo string `json:"assignedTo"`
}

func (r statusRequest) assignee() string {
	if r.MemberID != "" {
		return r.MemberID
	}
	return r.AssignedTo
}

type feedbackRequest struct {
	IsSatisfied *bool  `json:"isSatisfied" binding:"required"`
	Comment     string `json:"comment"`
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, _ := currentUser(c)
	created, err := h.Complaints.Create(c.Request.Context(), complaint.CreateInput{
		StudentID:   userID,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": h.Complaints.View(c.Request.Context(), created)})
}

func (h *Handler) MyComplaints(c *gin.Context) {
	userID, _ := currentUser(c)
	list, err := h.Complaints.ListForStudent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h.Complaints.Views(c.Request.Context(), list))
}

func (h *Handler) AllComplaints(c *gin.Context) {
	list, err := h.Complaints.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h.Complaints.Views(c.Request.Context(), list))
}

func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Get(c.Request.Context(), c.Param("id"), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h.Complaints.View(c.Request.Context(), found))
}

func (h *Handler) ComplaintTimeline(c *gin.Context) {
	entries, err := h.Complaints.Timeline(c.Request.Context(), c.Param("id"), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, entries)
}

func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, _ := currentUser(c)
	updated, err := h.Complaints.Transition(c.Request.Context(), complaint.TransitionInput{
		ComplaintID: c.Param("id"),
		Status:      req.Status,
		Note:        req.Note,
		AssigneeID:  req.assignee(),
		ActorID:     userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h.Complaints.View(c.Request.Context(), updated))
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	userID, _ := currentUser(c)
	updated, err := h.Complaints.RecordFeedback(c.Request.Context(), complaint.FeedbackInput{
		ComplaintID: c.Param("id"),
		ActorID:     userID,
		IsSatisfied: *req.IsSatisfied,
		Comment:     req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h.Complaints.View(c.Request.Context(), updated))
}

func viewer(c *gin.Context) complaint.Viewer {
	userID, role := currentUser(c)
	return complaint.Viewer{ID: userID, Role: role}
}
