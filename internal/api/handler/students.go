package handler

import (
	"net/http"

	"hostelcare/backend/internal/roster"
	"hostelcare/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// AddStudent creates a student account. The generated password is only
// ever shown in this response.
func (h *Handler) AddStudent(c *gin.Context) {
	var req roster.StudentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, password, err := h.Roster.AddStudent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"student": user, "password": password},
	})
}

// ListStudents lists students, optionally filtered by ?course=, ?branch=
// and ?roomNumber=.
func (h *Handler) ListStudents(c *gin.Context) {
	list, err := h.Roster.ListStudents(c.Request.Context(), storage.StudentFilter{
		Course:     c.Query("course"),
		Branch:     c.Query("branch"),
		RoomNumber: c.Query("roomNumber"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.Roster.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, student)
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	var req roster.StudentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	student, err := h.Roster.UpdateStudent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, student)
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	if err := h.Roster.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	okMessage(c, "Student deleted")
}

func (h *Handler) StudentsCount(c *gin.Context) {
	n, err := h.Roster.CountStudents(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"count": n})
}

func (h *Handler) CourseBranches(c *gin.Context) {
	branches, err := h.Roster.BranchesForCourse(c.Param("course"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, branches)
}
