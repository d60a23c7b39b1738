package handler

import (
	"context"

	"hostelcare/backend/internal/announcement"
	"hostelcare/backend/internal/complaint"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/roster"
	"hostelcare/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockComplaints struct {
	mock.Mock

	// Students and Members back View; ids missing here resolve to null.
	Students map[string]*models.StudentView
	Members  map[string]*models.MemberView
}

func (m *MockComplaints) Create(ctx context.Context, in complaint.CreateInput) (*models.Complaint, error) {
	args := m.Called(ctx, in)
	return complaintArg(args)
}

func (m *MockComplaints) Transition(ctx context.Context, in complaint.TransitionInput) (*models.Complaint, error) {
	args := m.Called(ctx, in)
	return complaintArg(args)
}

func (m *MockComplaints) RecordFeedback(ctx context.Context, in complaint.FeedbackInput) (*models.Complaint, error) {
	args := m.Called(ctx, in)
	return complaintArg(args)
}

func (m *MockComplaints) Get(ctx context.Context, id string, v complaint.Viewer) (*models.Complaint, error) {
	args := m.Called(ctx, id, v)
	return complaintArg(args)
}

func (m *MockComplaints) ListForStudent(ctx context.Context, studentID string) ([]models.Complaint, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaints) ListAll(ctx context.Context) ([]models.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockComplaints) Timeline(ctx context.Context, id string, v complaint.Viewer) ([]complaint.TimelineEntry, error) {
	args := m.Called(ctx, id, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]complaint.TimelineEntry), args.Error(1)
}

func (m *MockComplaints) View(ctx context.Context, c *models.Complaint) *complaint.View {
	if c == nil {
		return nil
	}
	v := &complaint.View{Complaint: c, Student: m.Students[c.StudentID]}
	if c.AssignedToID != nil {
		v.AssignedTo = m.Members[*c.AssignedToID]
	}
	return v
}

func (m *MockComplaints) Views(ctx context.Context, list []models.Complaint) []complaint.View {
	out := make([]complaint.View, 0, len(list))
	for i := range list {
		out = append(out, *m.View(ctx, &list[i]))
	}
	return out
}

func complaintArg(args mock.Arguments) (*models.Complaint, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

type MockInbox struct {
	mock.Mock
}

func (m *MockInbox) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, unreadOnly, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockInbox) CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInbox) DeleteNotification(ctx context.Context, recipientID, id string) error {
	return m.Called(ctx, recipientID, id).Error(0)
}

func (m *MockInbox) MarkAllNotificationsRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

type MockAnnouncements struct {
	mock.Mock
}

func (m *MockAnnouncements) Create(ctx context.Context, adminID string, in announcement.CreateInput) (*models.Announcement, error) {
	args := m.Called(ctx, adminID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncements) ListActive(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *MockAnnouncements) ListAll(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Announcement), args.Error(1)
}

func (m *MockAnnouncements) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockRoster struct {
	mock.Mock
}

func (m *MockRoster) Authenticate(ctx context.Context, rollNumber, password string) (*models.User, error) {
	args := m.Called(ctx, rollNumber, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRoster) AddStudent(ctx context.Context, in roster.StudentInput) (*models.User, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockRoster) AddMember(ctx context.Context, in roster.MemberInput) (*models.Member, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockRoster) ListMembers(ctx context.Context, category string) ([]models.Member, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockRoster) SetMemberActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockRoster) ListStudents(ctx context.Context, filter storage.StudentFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockRoster) GetStudent(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRoster) UpdateStudent(ctx context.Context, id string, in roster.StudentUpdate) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRoster) DeleteStudent(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRoster) CountStudents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoster) BranchesForCourse(course string) ([]string, error) {
	args := m.Called(course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
