// Package complaint implements the complaint lifecycle: creation, status
// transitions with staff assignment, resident feedback with its lock and
// reopen rules, and read access to complaints and their timelines.
//
// Every state change is written through Store.SaveComplaintState under an
// optimistic version check. Notifications are handed to the Notifier only
// after the write committed and never influence the result.
package complaint

import (
	"context"
	"log"
	"slices"
	"strings"
	"time"

	"hostelcare/backend/internal/config"
	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/notification"
	"hostelcare/backend/internal/storage"
)

// Store is the complaint persistence used by the service.
type Store interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaints(ctx context.Context, filter storage.ComplaintFilter) ([]models.Complaint, error)
	SaveComplaintState(ctx context.Context, complaint *models.Complaint, expectedVersion int, entry *models.StatusHistoryEntry) error
}

type UserDirectory interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsersByRole(ctx context.Context, roles ...string) ([]models.User, error)
}

type MemberDirectory interface {
	FindMemberByID(ctx context.Context, id string) (*models.Member, error)
}

// Notifier schedules best-effort delivery; see notification.Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, kind string, recipients []string, p notification.Payload)
}

// MessageCatalog renders localized notification texts.
type MessageCatalog interface {
	Format(key string, args ...any) string
}

type CreateInput struct {
	StudentID   string
	Category    string
	SubCategory string
	Description string
}

type TransitionInput struct {
	ComplaintID string
	Status      string
	Note        string
	// AssigneeID is optional; when set the member is validated and assigned.
	AssigneeID string
	ActorID    string
}

type FeedbackInput struct {
	ComplaintID string
	ActorID     string
	IsSatisfied bool
	Comment     string
}

// Viewer identifies who is reading a complaint.
type Viewer struct {
	ID   string
	Role string
}

type Service struct {
	Store    Store
	Users    UserDirectory
	Members  MemberDirectory
	Notifier Notifier
	Messages MessageCatalog

	// Now is the clock; tests replace it.
	Now func() time.Time

	timeline *TimelineBuilder
}

func NewService(store Store, users UserDirectory, members MemberDirectory, notifier Notifier, messages MessageCatalog) *Service {
	return &Service{
		Store:    store,
		Users:    users,
		Members:  members,
		Notifier: notifier,
		Messages: messages,
		Now:      time.Now,
		timeline: &TimelineBuilder{Users: users, Members: members},
	}
}

// Create validates and stores a new complaint in status Received, then
// notifies every admin.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Complaint, error) {
	in, err := normalizeCreate(in)
	if err != nil {
		return nil, err
	}

	student, err := s.Users.FindUserByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != config.RoleStudent {
		return nil, apperr.NewForbidden("only students can raise complaints")
	}

	now := s.Now()
	studentID := student.ID
	c := &models.Complaint{
		StudentID:     student.ID,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		Description:   in.Description,
		CurrentStatus: models.StatusReceived,
		Version:       1,
		CreatedAt:     now,
		StatusHistory: []models.StatusHistoryEntry{{
			Seq:         1,
			Status:      models.StatusReceived,
			Note:        config.CreatedNote,
			UpdatedByID: &studentID,
			Timestamp:   now,
		}},
	}
	if err := s.Store.CreateComplaint(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s created by student %s (%s)", c.ID, student.ID, c.Category)

	s.notifyAdmins(ctx, notification.Payload{
		SenderID:    student.ID,
		Title:       s.Messages.Format(notification.MsgComplaintNewTitle),
		Message:     s.Messages.Format(notification.MsgComplaintNewMessage, c.Description),
		RelatedID:   c.ID,
		RelatedKind: models.RelatedComplaint,
	}, models.NotificationComplaint)

	return c, nil
}

// Transition moves a complaint to a new status on behalf of an admin,
// optionally assigning a member, and appends the matching history entry.
func (s *Service) Transition(ctx context.Context, in TransitionInput) (*models.Complaint, error) {
	actor, err := s.requireAdmin(ctx, in.ActorID)
	if err != nil {
		return nil, err
	}

	c, err := s.Store.GetComplaint(ctx, in.ComplaintID)
	if err != nil {
		return nil, err
	}
	if c.IsLockedForUpdates {
		return nil, apperr.NewLocked("complaint is locked after satisfied feedback")
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return nil, apperr.NewInvalidStatus("invalid status " + in.Status)
	}

	if in.AssigneeID != "" {
		member, err := s.Members.FindMemberByID(ctx, in.AssigneeID)
		if err != nil && !apperr.IsNotFound(err) {
			return nil, err
		}
		// member stays nil when not found
		if err := ValidateAssignment(member, c); err != nil {
			return nil, err
		}
		id := member.ID
		c.AssignedToID = &id
	}

	expected := c.Version
	previous := c.CurrentStatus
	entry := &models.StatusHistoryEntry{
		Seq:          len(c.StatusHistory) + 1,
		Status:       status,
		Note:         strings.TrimSpace(in.Note),
		AssignedToID: copyID(c.AssignedToID),
		UpdatedByID:  copyID(&actor.ID),
		Timestamp:    s.stamp(c),
	}

	c.CurrentStatus = status
	switch {
	case status == models.StatusResolved:
		c.Feedback = nil
		c.IsReopened = false
	case status == models.StatusReceived && previous == models.StatusResolved:
		c.IsReopened = true
	}

	if err := s.Store.SaveComplaintState(ctx, c, expected, entry); err != nil {
		return nil, err
	}
	log.Printf("INFO: Complaint %s moved %s -> %s by %s", c.ID, previous, status, actor.ID)

	s.Notifier.Notify(ctx, models.NotificationComplaintStatus, []string{c.StudentID}, notification.Payload{
		SenderID:    actor.ID,
		Title:       s.Messages.Format(notification.MsgComplaintStatusTitle),
		Message:     s.Messages.Format(notification.MsgComplaintStatusMessage, summary(c.Description), status),
		RelatedID:   c.ID,
		RelatedKind: models.RelatedComplaint,
	})

	return c, nil
}

// RecordFeedback stores the owner's verdict on a resolved complaint.
// Satisfied feedback locks the complaint for good. Dissatisfied feedback
// marks it reopened, leaves it Resolved and notifies every admin.
func (s *Service) RecordFeedback(ctx context.Context, in FeedbackInput) (*models.Complaint, error) {
	c, err := s.Store.GetComplaint(ctx, in.ComplaintID)
	if err != nil {
		return nil, err
	}
	if c.StudentID != in.ActorID {
		return nil, apperr.NewForbidden("only the reporting student can give feedback")
	}
	if c.CurrentStatus != models.StatusResolved {
		return nil, apperr.NewInvalidState("feedback is only accepted for resolved complaints")
	}
	if c.Feedback != nil {
		return nil, apperr.NewDuplicateFeedback("feedback already submitted for this complaint")
	}

	expected := c.Version
	c.Feedback = &models.Feedback{
		IsSatisfied: in.IsSatisfied,
		Comment:     strings.TrimSpace(in.Comment),
		Timestamp:   s.Now(),
	}
	if in.IsSatisfied {
		c.IsLockedForUpdates = true
	} else {
		c.IsReopened = true
	}

	if err := s.Store.SaveComplaintState(ctx, c, expected, nil); err != nil {
		return nil, err
	}

	if !in.IsSatisfied {
		name := in.ActorID
		if student, err := s.Users.FindUserByID(ctx, c.StudentID); err == nil {
			name = student.Name
		}
		s.notifyAdmins(ctx, notification.Payload{
			SenderID:    c.StudentID,
			Title:       s.Messages.Format(notification.MsgComplaintReopenedTitle),
			Message:     s.Messages.Format(notification.MsgComplaintReopenedMessage, name),
			RelatedID:   c.ID,
			RelatedKind: models.RelatedComplaint,
		}, models.NotificationComplaint)
	}

	return c, nil
}

// Get returns a complaint if viewer may see it.
func (s *Service) Get(ctx context.Context, id string, viewer Viewer) (*models.Complaint, error) {
	c, err := s.Store.GetComplaint(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewer.Role != config.RoleAdmin && c.StudentID != viewer.ID {
		return nil, apperr.NewForbidden("not your complaint")
	}
	return c, nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	return s.Store.ListComplaints(ctx, storage.ComplaintFilter{StudentID: studentID})
}

func (s *Service) ListAll(ctx context.Context) ([]models.Complaint, error) {
	return s.Store.ListComplaints(ctx, storage.ComplaintFilter{})
}

// Timeline returns the resolved history of a complaint visible to viewer.
func (s *Service) Timeline(ctx context.Context, id string, viewer Viewer) ([]TimelineEntry, error) {
	c, err := s.Get(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return slices.Collect(s.timeline.Build(ctx, c)), nil
}

func (s *Service) requireAdmin(ctx context.Context, actorID string) (*models.User, error) {
	if actorID == "" {
		return nil, apperr.NewForbidden("admin access required")
	}
	actor, err := s.Users.FindUserByID(ctx, actorID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NewForbidden("admin access required")
		}
		return nil, err
	}
	if actor.Role != config.RoleAdmin {
		return nil, apperr.NewForbidden("admin access required")
	}
	return actor, nil
}

func (s *Service) notifyAdmins(ctx context.Context, p notification.Payload, kind string) {
	admins, err := s.Users.ListUsersByRole(ctx, config.RoleAdmin)
	if err != nil {
		log.Printf("ERROR: Failed to list admins for %s notification on %s: %v", kind, p.RelatedID, err)
		return
	}
	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	s.Notifier.Notify(ctx, kind, ids, p)
}

// stamp returns the timestamp for the next history entry of c. It never
// precedes the last recorded entry.
func (s *Service) stamp(c *models.Complaint) time.Time {
	now := s.Now()
	if last := c.LastHistoryEntry(); last != nil && now.Before(last.Timestamp) {
		return last.Timestamp
	}
	return now
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// summary shortens a description for notification texts.
func summary(description string) string {
	const limit = 30
	r := []rune(description)
	if len(r) <= limit {
		return description
	}
	return string(r[:limit]) + "..."
}
