// Package handler exposes the complaint service over HTTP (gin) and
// websocket.
package handler

import (
	"context"

	"hostelcare/backend/internal/announcement"
	"hostelcare/backend/internal/complaint"
	"hostelcare/backend/internal/hub"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/roster"
	"hostelcare/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type ComplaintService interface {
	Create(ctx context.Context, in complaint.CreateInput) (*models.Complaint, error)
	Transition(ctx context.Context, in complaint.TransitionInput) (*models.Complaint, error)
	RecordFeedback(ctx context.Context, in complaint.FeedbackInput) (*models.Complaint, error)
	Get(ctx context.Context, id string, viewer complaint.Viewer) (*models.Complaint, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error)
	ListAll(ctx context.Context) ([]models.Complaint, error)
	Timeline(ctx context.Context, id string, viewer complaint.Viewer) ([]complaint.TimelineEntry, error)

	// View and Views resolve people referenced by complaints before they
	// are written out.
	View(ctx context.Context, c *models.Complaint) *complaint.View
	Views(ctx context.Context, list []models.Complaint) []complaint.View
}

// Inbox is the notification storage behind the inbox endpoints.
type Inbox interface {
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error)
	DeleteNotification(ctx context.Context, recipientID, id string) error
	MarkAllNotificationsRead(ctx context.Context, recipientID string) error
}

type AnnouncementService interface {
	Create(ctx context.Context, adminID string, in announcement.CreateInput) (*models.Announcement, error)
	ListActive(ctx context.Context) ([]models.Announcement, error)
	ListAll(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type RosterService interface {
	Authenticate(ctx context.Context, rollNumber, password string) (*models.User, error)
	AddStudent(ctx context.Context, in roster.StudentInput) (*models.User, string, error)
	ListStudents(ctx context.Context, filter storage.StudentFilter) ([]models.User, error)
	GetStudent(ctx context.Context, id string) (*models.User, error)
	UpdateStudent(ctx context.Context, id string, in roster.StudentUpdate) (*models.User, error)
	DeleteStudent(ctx context.Context, id string) error
	CountStudents(ctx context.Context) (int64, error)
	BranchesForCourse(course string) ([]string, error)
	AddMember(ctx context.Context, in roster.MemberInput) (*models.Member, error)
	ListMembers(ctx context.Context, category string) ([]models.Member, error)
	SetMemberActive(ctx context.Context, id string, active bool) error
}

type Handler struct {
	Complaints    ComplaintService
	Inbox         Inbox
	Announcements AnnouncementService
	Roster        RosterService
	Auth          *Auth
	Hub           *hub.ManagerService
}

func NewHandler(complaints ComplaintService, inbox Inbox, announcements AnnouncementService, rosterSvc RosterService, auth *Auth, h *hub.ManagerService) *Handler {
	return &Handler{
		Complaints:    complaints,
		Inbox:         inbox,
		Announcements: announcements,
		Roster:        rosterSvc,
		Auth:          auth,
		Hub:           h,
	}
}

// RegisterRoutes mounts every endpoint on r.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/auth/login", h.Login)

	authed := api.Group("", h.Auth.RequireAuth())
	admin := authed.Group("", RequireRole(roleAdmin))
	student := authed.Group("", RequireRole(roleStudent))

	student.POST("/complaints", h.CreateComplaint)
	student.GET("/complaints/my", h.MyComplaints)
	student.POST("/complaints/:id/feedback", h.SubmitFeedback)
	authed.GET("/complaints/:id", h.GetComplaint)
	authed.GET("/complaints/:id/timeline", h.ComplaintTimeline)
	admin.GET("/complaints/admin/all", h.AllComplaints)
	admin.PUT("/complaints/admin/:id/status", h.UpdateComplaintStatus)
	admin.GET("/complaints/admin/:id/timeline", h.ComplaintTimeline)

	authed.GET("/notifications", h.ListNotifications)
	authed.GET("/notifications/unread", h.UnreadNotifications)
	authed.GET("/notifications/unread/count", h.UnreadCount)
	authed.PUT("/notifications/read-all", h.MarkAllRead)
	authed.PUT("/notifications/:id/read", h.MarkRead)
	authed.DELETE("/notifications/:id", h.DeleteNotification)

	admin.POST("/announcements", h.CreateAnnouncement)
	authed.GET("/announcements", h.ActiveAnnouncements)
	admin.GET("/announcements/admin/all", h.AllAnnouncements)
	admin.DELETE("/announcements/:id", h.DeleteAnnouncement)

	admin.POST("/admin/members", h.AddMember)
	admin.GET("/admin/members", h.ListMembers)
	admin.PUT("/admin/members/:id/active", h.SetMemberActive)
	admin.POST("/students/add", h.AddStudent)
	admin.GET("/students", h.ListStudents)
	admin.GET("/students/count", h.StudentsCount)
	admin.GET("/students/branches/:course", h.CourseBranches)
	admin.GET("/students/:id", h.GetStudent)
	admin.PUT("/students/:id", h.UpdateStudent)
	admin.DELETE("/students/:id", h.DeleteStudent)

	r.GET("/ws", h.Auth.RequireAuth(), h.ServeWebSocket)
}
